package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-jewelry-pos/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles operator authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(response)
}

// ChangePIN replaces the logged-in operator's PIN
// POST /api/v1/auth/change-pin
func (h *AuthHandler) ChangePIN(c *fiber.Ctx) error {
	var req service.ChangePINRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.authService.ChangePIN(operatorID(c), &req); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "PIN updated successfully"})
}
