package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/scentquiz/internal/catalog"
	"github.com/example/scentquiz/internal/models"
	"github.com/example/scentquiz/internal/utils"
)

// ProductHandler exposes the loaded catalog read-only.
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(c *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

// ListProducts returns paginated products with optional filters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	gender := models.Gender(strings.ToUpper(strings.TrimSpace(c.Query("gender"))))
	family := models.Family(strings.ToLower(strings.TrimSpace(c.Query("family"))))
	var available *bool
	if v := c.Query("available"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "available must be true or false")
		}
		available = &parsed
	}

	filtered := make([]models.Product, 0)
	for _, p := range h.catalog.Products() {
		if gender != "" && p.Gender != gender {
			continue
		}
		if family != "" && p.OlfactoryFamily != family {
			continue
		}
		if available != nil && p.Available != *available {
			continue
		}
		filtered = append(filtered, p)
	}

	start, end := pg.Window(len(filtered))
	return c.JSON(fiber.Map{
		"success": true,
		"data":    filtered[start:end],
		"pagination": fiber.Map{
			"page":  pg.Page,
			"limit": pg.Limit,
			"total": len(filtered),
		},
	})
}

// GetProduct returns a single product by id.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	p, ok := h.catalog.Get(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    p,
	})
}
