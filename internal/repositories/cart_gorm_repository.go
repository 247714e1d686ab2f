package repositories

import (
	"errors"
	"fmt"
	"warung/internal/models"

	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository backed by a
// normalized cart_items table keyed by (user_id, product_id).
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetItems returns the user's cart lines in insertion order.
func (r *GORMCartRepository) GetItems(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("user_id = ?", userID).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart items for user %s: %w", userID, err)
	}
	return items, nil
}

// AddItem increments the matching line or inserts a fresh one with quantity 1.
func (r *GORMCartRepository) AddItem(userID, productID string) error {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
		if err := r.db.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to add product %s to cart: %w", productID, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up cart line for product %s: %w", productID, err)
	}
	item.Quantity++
	if err := r.db.Save(&item).Error; err != nil {
		return fmt.Errorf("failed to update cart line for product %s: %w", productID, err)
	}
	return nil
}

// RemoveItem deletes the whole line for the product. A missing line is a no-op.
func (r *GORMCartRepository) RemoveItem(userID, productID string) error {
	if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to remove product %s from cart: %w", productID, err)
	}
	return nil
}

// Clear removes every line from the user's cart.
func (r *GORMCartRepository) Clear(userID string) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
