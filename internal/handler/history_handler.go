package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-jewelry-pos/internal/service"
)

type HistoryHandler struct {
	history service.HistoryService
}

func NewHistoryHandler(history service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// GetState returns what the undo/redo buttons should show
// GET /api/v1/history
func (h *HistoryHandler) GetState(c *fiber.Ctx) error {
	return c.JSON(h.history.State())
}

// Undo reverses the most recent applied action
// POST /api/v1/history/undo
func (h *HistoryHandler) Undo(c *fiber.Ctx) error {
	if err := h.history.Undo(); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Undone", "state": h.history.State()})
}

// Redo re-applies the most recently undone action
// POST /api/v1/history/redo
func (h *HistoryHandler) Redo(c *fiber.Ctx) error {
	if err := h.history.Redo(); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Redone", "state": h.history.State()})
}
