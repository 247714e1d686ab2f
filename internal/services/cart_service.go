package services

import (
	"errors"
	"fmt"

	"warung/internal/models"
	"warung/internal/repositories"
)

// CartService handles the per-user cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart lines resolved against the catalog.
func (s *CartService) GetCart(userID string) ([]models.CartLine, error) {
	items, err := s.cartRepo.GetItems(userID)
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cart line %s: %w", item.ProductID, err)
		}
		lines = append(lines, models.CartLine{
			Product:  *product,
			Quantity: item.Quantity,
		})
	}
	return lines, nil
}

// AddToCart puts one unit of the product into the user's cart. If the product
// already has a line, its quantity goes up by one; matching is by exact
// product ID.
func (s *CartService) AddToCart(userID, productID string) error {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return err
	}
	return s.cartRepo.AddItem(userID, productID)
}

// RemoveFromCart drops the whole line for the product, whatever its quantity.
// Removing a product that is not in the cart is a no-op.
func (s *CartService) RemoveFromCart(userID, productID string) error {
	return s.cartRepo.RemoveItem(userID, productID)
}
