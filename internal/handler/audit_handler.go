package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-jewelry-pos/internal/service"
)

type AuditHandler struct {
	service service.AuditService
}

func NewAuditHandler(s service.AuditService) *AuditHandler {
	return &AuditHandler{service: s}
}

type startAuditRequest struct {
	ShopID string `json:"shop_id"`
}

type scanRequest struct {
	Barcode string `json:"barcode"`
}

type setQuantityRequest struct {
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
}

// Start opens an audit session against a shop's current stock
// POST /api/v1/audits
func (h *AuditHandler) Start(c *fiber.Ctx) error {
	var req startAuditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	shopID, err := parseUUID(req.ShopID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shop ID"})
	}

	state, err := h.service.Start(shopID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(state)
}

// Scan feeds one barcode into a session; the HTTP form of the scanner feed
// POST /api/v1/audits/:id/scan
func (h *AuditHandler) Scan(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}
	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Barcode == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Barcode is required"})
	}

	outcome, err := h.service.Scan(id, req.Barcode)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(outcome)
}

// SetQuantity overrides a line's scanned count
// PUT /api/v1/audits/:id/quantity
func (h *AuditHandler) SetQuantity(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}
	var req setQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Barcode == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Barcode is required"})
	}

	state, err := h.service.SetQuantity(id, req.Barcode, req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}

// Pause stops scan acceptance without losing progress
// POST /api/v1/audits/:id/pause
func (h *AuditHandler) Pause(c *fiber.Ctx) error {
	return h.toggle(c, h.service.Pause)
}

// Resume re-enables scanning
// POST /api/v1/audits/:id/resume
func (h *AuditHandler) Resume(c *fiber.Ctx) error {
	return h.toggle(c, h.service.Resume)
}

// Finish grades the session and persists the report
// POST /api/v1/audits/:id/finish
func (h *AuditHandler) Finish(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	report, err := h.service.Finish(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Audit finished", "data": report})
}

// Progress returns the live state of a running session
// GET /api/v1/audits/:id/progress
func (h *AuditHandler) Progress(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	state, err := h.service.Progress(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}

// List returns persisted audit reports, newest first
// GET /api/v1/audits
func (h *AuditHandler) List(c *fiber.Ctx) error {
	reports, err := h.service.ListReports()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reports)
}

// Get returns one persisted report with its lines
// GET /api/v1/audits/:id
func (h *AuditHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	report, err := h.service.GetReport(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

func (h *AuditHandler) toggle(c *fiber.Ctx, op func(id uuid.UUID) (*service.AuditState, error)) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	state, err := op(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}
