package repositories

import (
	"warung/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns one page of the catalog in insertion order.
	List(offset, limit int) ([]models.Product, error)
	// Count returns the total number of products in the catalog.
	Count() (int64, error)
	// ListByOwner returns every product created by the given user.
	ListByOwner(ownerID string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	// Delete removes the product and every cart line referencing it in a
	// single transaction, so no cart is left with a dangling reference.
	Delete(id string) error
}
