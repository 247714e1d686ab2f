package middleware

import (
	"log"
	"strings"

	"warung/internal/models"
	"warung/internal/repositories"
	"warung/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserKey is the Locals key under which the resolved user is stored.
const UserKey = "user"

// AuthRequired resolves the bearer token to a full user identity and stores
// it in the request context. Protected operations behind it are a binary
// allow/deny: no token, a bad token, or a token for a user that no longer
// exists all answer 401.
func AuthRequired(authService *services.AuthService, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		userID, ok := claims["user_id"].(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		// The token may outlive the account it was issued for.
		user, err := userRepo.GetByID(userID)
		if err != nil {
			log.Printf("Token resolved to unknown user %s: %v", userID, err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}
