package repositories

import (
	"sync"
	"warung/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	// lines per user, in insertion order
	lines map[string][]models.CartItem
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		lines: make(map[string][]models.CartItem),
	}
}

// GetItems returns the user's cart lines in insertion order.
func (r *MockCartRepository) GetItems(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.CartItem, len(r.lines[userID]))
	copy(items, r.lines[userID])
	return items, nil
}

// AddItem increments the matching line or appends a fresh one with quantity 1.
func (r *MockCartRepository) AddItem(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.lines[userID] {
		if item.ProductID == productID {
			r.lines[userID][i].Quantity++
			return nil
		}
	}
	r.lines[userID] = append(r.lines[userID], models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	})
	return nil
}

// RemoveItem deletes the whole line for the product. A missing line is a no-op.
func (r *MockCartRepository) RemoveItem(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.lines[userID][:0]
	for _, item := range r.lines[userID] {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	r.lines[userID] = kept
	return nil
}

// Clear removes every line from the user's cart.
func (r *MockCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lines, userID)
	return nil
}

// RemoveProductEverywhere drops the product's line from every cart. It backs
// the cascade the GORM product repository performs inside its transaction.
func (r *MockCartRepository) RemoveProductEverywhere(productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, items := range r.lines {
		kept := items[:0]
		for _, item := range items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		r.lines[userID] = kept
	}
	return nil
}
