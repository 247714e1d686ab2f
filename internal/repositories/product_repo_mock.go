package repositories

import (
	"fmt"
	"sync"
	"warung/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string // insertion order for stable pagination
	carts    *MockCartRepository
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
// When carts is non-nil, Delete cascades the removal to it, mirroring the
// transactional GORM implementation.
func NewMockProductRepository(carts *MockCartRepository) *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
		carts:    carts,
	}
}

// List returns one page of products in insertion order.
func (r *MockProductRepository) List(offset, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.order) {
		return []models.Product{}, nil
	}
	end := offset + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	page := make([]models.Product, 0, end-offset)
	for _, id := range r.order[offset:end] {
		page = append(page, r.products[id])
	}
	return page, nil
}

// Count returns the total number of products.
func (r *MockProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// ListByOwner returns every product created by the given user.
func (r *MockProductRepository) ListByOwner(ownerID string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]models.Product, 0)
	for _, id := range r.order {
		if p := r.products[id]; p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, ok := r.products[product.ID]; !ok {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID and cascades to the cart repository.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	_, ok := r.products[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	if r.carts != nil {
		return r.carts.RemoveProductEverywhere(id)
	}
	return nil
}
