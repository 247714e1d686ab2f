package services

import (
	"fmt"
	"time"

	"warung/internal/models"
	"warung/internal/repositories"
)

// OrderService snapshots carts into immutable orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// PlaceOrder turns the user's cart into an immutable order. Every cart line
// is resolved against the catalog first; any failed read fails the whole
// operation, partial resolution is not a defined state. Order insert and cart
// clear happen as one unit in the repository. An order-confirmation email is
// enqueued best-effort after persistence.
func (s *OrderService) PlaceOrder(user *models.User) (*models.Order, error) {
	items, err := s.cartRepo.GetItems(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product %s for order: %w", item.ProductID, err)
		}
		orderItems = append(orderItems, models.SnapshotOf(*product, item.Quantity))
	}

	order := &models.Order{
		UserID:    user.ID,
		Email:     user.Email,
		Items:     orderItems,
		CreatedAt: time.Now(),
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	publishEmail(s.publisher, EmailEvent{
		To:      user.Email,
		Subject: "Order confirmation",
		Body:    fmt.Sprintf("<p>Thanks! Your order %s with %d item(s) was received.</p>", order.ID, len(order.Items)),
	})

	return order, nil
}

// ListOrders returns the user's orders, creation time ascending.
func (s *OrderService) ListOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}
