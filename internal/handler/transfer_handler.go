package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-jewelry-pos/internal/service"
)

type TransferHandler struct {
	service service.TransferService
}

func NewTransferHandler(s service.TransferService) *TransferHandler {
	return &TransferHandler{service: s}
}

// CreateShop registers a sales point
// POST /api/v1/shops
func (h *TransferHandler) CreateShop(c *fiber.Ctx) error {
	var req service.CreateShopRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	shop, err := h.service.CreateShop(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Shop created", "data": shop})
}

// GetShops lists all sales points
// GET /api/v1/shops
func (h *TransferHandler) GetShops(c *fiber.Ctx) error {
	shops, err := h.service.ListShops()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(shops)
}

// GetShopStock lists a shop's assortment, zero-quantity rows included
// GET /api/v1/shops/:id/stock
func (h *TransferHandler) GetShopStock(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shop ID"})
	}

	rows, err := h.service.ShopStock(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// MoveToShop moves units warehouse -> shop
// POST /api/v1/transfers/to-shop
func (h *TransferHandler) MoveToShop(c *fiber.Ctx) error {
	var req service.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	row, err := h.service.MoveToShop(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Moved to shop", "data": row})
}

// ReturnToWarehouse moves units shop -> warehouse
// POST /api/v1/transfers/to-warehouse
func (h *TransferHandler) ReturnToWarehouse(c *fiber.Ctx) error {
	var req service.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	row, err := h.service.ReturnToWarehouse(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Returned to warehouse", "data": row})
}
