package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-jewelry-pos/internal/service"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// Sell registers a sale (undoable)
// POST /api/v1/sales
func (h *SaleHandler) Sell(c *fiber.Ctx) error {
	var req service.SellRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.Sell(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale registered", "data": sale})
}

// GetSales lists the sales log, newest first
// GET /api/v1/sales?from=2025-01-01&to=2025-01-31&shop_id=
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	var (
		from, to *time.Time
		shopID   *uuid.UUID
	)
	if raw := c.Query("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid from date"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid to date"})
		}
		// A bare date means the whole day.
		if len(raw) == len("2006-01-02") {
			t = t.AddDate(0, 0, 1)
		}
		to = &t
	}
	if raw := c.Query("shop_id"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid shop ID"})
		}
		shopID = &id
	}

	sales, err := h.service.ListSales(from, to, shopID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sales)
}

// GetSale returns one sale with item and shop
// GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetSale(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sale)
}

// parseDate accepts a bare date or a full RFC3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
