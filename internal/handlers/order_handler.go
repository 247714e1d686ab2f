package handlers

import (
	"errors"

	"warung/internal/middleware"
	"warung/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// RegisterRoutes registers the order routes; the router passed in must
// already sit behind the auth middleware.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Post("/", h.HandlePlaceOrder)
}

// HandleListOrders returns the caller's orders, oldest first.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	orders, err := h.orderService.ListOrders(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// HandlePlaceOrder checks out the caller's cart into an immutable order and
// leaves the cart empty.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	order, err := h.orderService.PlaceOrder(user)
	if err != nil {
		if errors.Is(err, services.ErrCartEmpty) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Your cart is empty",
			})
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}
