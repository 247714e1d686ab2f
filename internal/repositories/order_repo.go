package repositories

import "warung/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists the order and clears the originating user's cart as one
	// unit: either both happen or neither does.
	Create(order *models.Order) error
	// GetByUserID returns the user's orders in creation time ascending order.
	GetByUserID(userID string) ([]models.Order, error)
}
