package repositories

import (
	"sync"
	"time"
	"warung/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders []models.Order
	carts  CartRepository
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
// When carts is non-nil, Create clears the user's cart alongside the insert,
// mirroring the transactional GORM implementation.
func NewMockOrderRepository(carts CartRepository) *MockOrderRepository {
	return &MockOrderRepository{
		carts: carts,
	}
}

// Create stores the order and clears the originating user's cart.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders = append(r.orders, *order)
	r.mu.Unlock()

	if r.carts != nil {
		return r.carts.Clear(order.UserID)
	}
	return nil
}

// GetByUserID returns the user's orders, oldest first.
func (r *MockOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			matched = append(matched, order)
		}
	}
	return matched, nil
}
