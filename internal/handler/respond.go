package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-jewelry-pos/internal/apperror"
)

// fail renders an error with the status code its class maps to, so
// handlers never hand-pick codes per call site.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(apperror.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

// Helper to parse UUID path params
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// Helper to read the operator id set by the auth middleware
func operatorID(c *fiber.Ctx) uuid.UUID {
	raw, ok := c.Locals("operator_id").(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
