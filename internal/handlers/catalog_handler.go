package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"molove/internal/catalog"
	"molove/internal/repositories"
	"molove/internal/services"
)

// CatalogHandler handles the public storefront endpoints.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/catalog", h.HandleBrowse)
	router.Get("/catalog/:id", h.HandleProductByID)
	router.Get("/lookbook", h.HandleLookbook)
	router.Get("/sale", h.HandleActiveSale)
}

// HandleBrowse returns one page of the filtered catalog. Draft products are
// never visible here regardless of query parameters.
func (h *CatalogHandler) HandleBrowse(c *fiber.Ctx) error {
	query := c.Query("q")
	category := c.Query("category", catalog.CategoryAll)
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", catalog.DefaultPageSize)

	result, err := h.service.Browse(query, category, page, pageSize)
	if err != nil {
		log.Printf("Error browsing catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve catalog",
			"error":   err.Error(),
		})
	}
	return c.JSON(result)
}

// HandleProductByID returns a single product with its effective price.
func (h *CatalogHandler) HandleProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.ProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error getting product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleLookbook returns the lookbook entries ordered by position.
func (h *CatalogHandler) HandleLookbook(c *fiber.Ctx) error {
	entries, err := h.service.Lookbook()
	if err != nil {
		log.Printf("Error getting lookbook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve lookbook",
			"error":   err.Error(),
		})
	}
	return c.JSON(entries)
}

// HandleActiveSale returns the applying store-wide sale, or an inactive
// placeholder when there is none.
func (h *CatalogHandler) HandleActiveSale(c *fiber.Ctx) error {
	sale := h.service.ActiveSale()
	if sale == nil {
		return c.JSON(fiber.Map{"active": false})
	}
	return c.JSON(sale)
}
