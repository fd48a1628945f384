package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-jewelry-pos/internal/service"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// CreateItem adds a catalog item (undoable)
// POST /api/v1/items
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var req service.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.CreateItem(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Item created", "data": item})
}

// UpdateItem edits catalog fields (undoable); the barcode is immutable
// PUT /api/v1/items/:id
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req service.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.UpdateItem(id, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item updated", "data": item})
}

// DeleteItem removes an item that holds no shop stock and has no sales
// DELETE /api/v1/items/:id
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	if err := h.service.DeleteItem(id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item deleted"})
}

// GetItems lists the catalog with optional search and category filter
// GET /api/v1/items?search=&category=
func (h *InventoryHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.Query("search"), c.Query("category"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

// GetItem returns one item with its allocation across shops
// GET /api/v1/items/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	item, err := h.service.GetItem(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

// GetItemByBarcode resolves a scanned code
// GET /api/v1/items/barcode/:barcode
func (h *InventoryHandler) GetItemByBarcode(c *fiber.Ctx) error {
	item, err := h.service.GetItemByBarcode(c.Params("barcode"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

// GetBarcodeDigits returns what the label printer needs
// GET /api/v1/items/:id/barcode-digits
func (h *InventoryHandler) GetBarcodeDigits(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	digits, err := h.service.BarcodeDigits(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(digits)
}

// GetCustomValues lists select-list values of one kind
// GET /api/v1/custom-values/:kind
func (h *InventoryHandler) GetCustomValues(c *fiber.Ctx) error {
	values, err := h.service.ListCustomValues(c.Params("kind"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(values)
}

// AddCustomValue adds a select-list value
// POST /api/v1/custom-values
func (h *InventoryHandler) AddCustomValue(c *fiber.Ctx) error {
	var req service.CustomValueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	value, err := h.service.AddCustomValue(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Value added", "data": value})
}

// DeleteCustomValue removes a select-list value
// DELETE /api/v1/custom-values/:id
func (h *InventoryHandler) DeleteCustomValue(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid value ID"})
	}

	if err := h.service.DeleteCustomValue(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Value deleted"})
}
