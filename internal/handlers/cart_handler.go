package handlers

import (
	"errors"

	"warung/internal/middleware"
	"warung/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart routes; the router passed in must
// already sit behind the auth middleware.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Delete("/:productId", h.HandleRemoveFromCart)
}

// HandleGetCart returns the cart lines resolved against the catalog.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	lines, err := h.cartService.GetCart(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"items": lines,
	})
}

// AddToCartRequest represents the request body for adding a product.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// HandleAddToCart puts one unit of a product into the caller's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, fieldErrors(err), req)
	}

	if err := h.cartService.AddToCart(user.ID, req.ProductID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product added to cart",
	})
}

// HandleRemoveFromCart drops the whole line for a product, regardless of its
// quantity. Removing a product that is not in the cart still answers 200.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if err := h.cartService.RemoveFromCart(user.ID, c.Params("productId")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product removed from cart",
	})
}
