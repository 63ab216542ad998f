package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lexcase/lexcase-backend/internal/services"
)

const (
	// ContextUserID is the fiber locals key holding the authenticated user id
	ContextUserID = "user_id"
	// ContextIsStaff is the fiber locals key holding the staff flag
	ContextIsStaff = "is_staff"
)

// RequireAuth validates the bearer access token and stashes the caller's
// identity in the request locals.
func RequireAuth(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "authentication credentials were not provided",
			})
		}

		claims, err := tokens.ParseAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "token is invalid or expired",
			})
		}

		c.Locals(ContextUserID, claims.UserID)
		c.Locals(ContextIsStaff, claims.IsStaff)
		return c.Next()
	}
}

// RequireStaff rejects non-staff callers. Must run after RequireAuth.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isStaff, _ := c.Locals(ContextIsStaff).(bool)
		if !isStaff {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail": "you do not have permission to perform this action",
			})
		}
		return c.Next()
	}
}

// UserID returns the authenticated user id from the request locals
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(ContextUserID).(uint)
	return id
}

// IsStaff returns the staff flag from the request locals
func IsStaff(c *fiber.Ctx) bool {
	isStaff, _ := c.Locals(ContextIsStaff).(bool)
	return isStaff
}
