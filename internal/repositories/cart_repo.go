package repositories

import "warung/internal/models"

// CartRepository defines the interface for cart line data access.
type CartRepository interface {
	// GetItems returns the user's cart lines in insertion order.
	GetItems(userID string) ([]models.CartItem, error)
	// AddItem increments the quantity of the matching line, or inserts a new
	// line with quantity 1 when the product is not yet in the cart.
	AddItem(userID, productID string) error
	// RemoveItem deletes the whole line for the product, regardless of its
	// quantity. Removing a product that is not in the cart is not an error.
	RemoveItem(userID, productID string) error
	// Clear removes every line from the user's cart.
	Clear(userID string) error
}
