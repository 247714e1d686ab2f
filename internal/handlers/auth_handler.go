package handlers

import (
	"errors"
	"log"

	"warung/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and password reset.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/reset", h.HandleRequestReset)
	authRoutes.Get("/reset/:token", h.HandleResolveReset)
	authRoutes.Post("/new-password", h.HandleNewPassword)
}

// RegisterRequest represents the request body for signup.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=4,alphanum"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, fieldErrors(err), fiber.Map{"email": req.Email})
	}

	user, err := h.authService.RegisterUser(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Email exists already, please use a different one!",
			})
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a session token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, fieldErrors(err), fiber.Map{"email": req.Email})
	}

	token, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid email or password!",
			})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// ResetRequest represents the request body for a password-reset request.
type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleRequestReset issues a reset token and mails the reset link. The
// response is sent without waiting for the email.
func (h *AuthHandler) HandleRequestReset(c *fiber.Ctx) error {
	var req ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, fieldErrors(err), fiber.Map{"email": req.Email})
	}

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return validationFailed(c,
				map[string]string{"email": "No account with that email found!"},
				fiber.Map{"email": req.Email})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": "A reset link has been sent to your email",
	})
}

// HandleResolveReset checks a reset link and returns the data the new-password
// form needs. An unknown or expired token is a 404.
func (h *AuthHandler) HandleResolveReset(c *fiber.Ctx) error {
	token := c.Params("token")
	user, err := h.authService.ResolveResetToken(token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Invalid or expired reset link",
			})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"userId": user.ID,
		"token":  token,
	})
}

// NewPasswordRequest represents the request body to finish a password reset.
type NewPasswordRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=4,alphanum"`
}

// HandleNewPassword sets a new password. The token is single-use: once this
// succeeds, the same link can never authorize another change.
func (h *AuthHandler) HandleNewPassword(c *fiber.Ctx) error {
	var req NewPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, fieldErrors(err), fiber.Map{"userId": req.UserID})
	}

	if err := h.authService.ResetPassword(req.UserID, req.Token, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Invalid or expired reset link",
			})
		}
		return err
	}

	log.Printf("Password updated for user %s", req.UserID)
	return c.JSON(fiber.Map{
		"message": "Password updated, you can log in now",
	})
}
