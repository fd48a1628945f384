package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"go-jewelry-pos/internal/service"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// Valuation totals the stock at retail and cost
// GET /api/v1/reports/valuation
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	report, err := h.service.Valuation()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// LowStock lists items about to run out
// GET /api/v1/reports/low-stock?threshold=5
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.service.LowStock(c.QueryInt("threshold", 0))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// SalesSummary aggregates sales over a date range, default last 30 days
// GET /api/v1/reports/sales?from=2025-01-01&to=2025-01-31
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid from date"})
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid to date"})
		}
		if len(raw) == len("2006-01-02") {
			t = t.AddDate(0, 0, 1)
		}
		to = t
	}

	summary, err := h.service.SalesSummary(from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
