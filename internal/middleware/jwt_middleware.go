package middleware

import (
	"log"
	"strings"

	"congreso/internal/models"
	"congreso/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	LocalOrganizerID       = "organizer_id"
	LocalOrganizerUsername = "organizer_username"
	LocalOrganizerRole     = "organizer_role"
)

// AuthRequired checks for a valid organizer session token and stores the
// organizer claims on the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("Organizer token rejected: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
			})
		}

		c.Locals(LocalOrganizerID, claims.OrganizerID)
		c.Locals(LocalOrganizerUsername, claims.Username)
		c.Locals(LocalOrganizerRole, claims.Role)

		return c.Next()
	}
}

// AdminRequired rejects organizers whose session role is not admin. It must
// run after AuthRequired, which stores the role on the context.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalOrganizerRole).(string)
		if role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Admin role required",
			})
		}
		return c.Next()
	}
}
