package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-jewelry-pos/internal/repository"
	"go-jewelry-pos/pkg/jwt"
)

// RequireAuth validates the bearer token and sets the operator identity
// in the request context.
func RequireAuth(operatorRepo repository.OperatorRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		tokenString := parts[1]

		// Validate token
		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// The operator must still exist; a stale token for a removed
		// account is rejected here.
		operator, err := operatorRepo.FindByID(claims.OperatorID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Operator not found"})
		}

		// Set operator info in context for downstream handlers
		c.Locals("operator_id", operator.ID.String())
		c.Locals("operator_username", operator.Username)
		c.Locals("operator_role", operator.Role)

		return c.Next()
	}
}
