package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"molove/internal/models"
	"molove/internal/repositories"
	"molove/internal/services"
)

// AdminHandler handles the authenticated management endpoints.
type AdminHandler struct {
	admin    *services.AdminService
	orders   repositories.OrderRepository
	promo    repositories.PromoRepository
	lookbook repositories.LookbookRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	admin *services.AdminService,
	orders repositories.OrderRepository,
	promo repositories.PromoRepository,
	lookbook repositories.LookbookRepository,
) *AdminHandler {
	return &AdminHandler{
		admin:    admin,
		orders:   orders,
		promo:    promo,
		lookbook: lookbook,
	}
}

// RegisterRoutes registers the admin routes. The caller is expected to pass a
// router already guarded by the JWT middleware.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)
	router.Post("/products", h.HandleSaveProduct)
	router.Put("/products/:id", h.HandleSaveProduct)
	router.Delete("/products/:id", h.HandleDeleteProduct)
	router.Patch("/products/:id/published", h.HandleTogglePublished)

	router.Get("/orders", h.HandleListOrders)

	router.Get("/sale", h.HandleGetSale)
	router.Put("/sale", h.HandleSaveSale)

	router.Post("/lookbook", h.HandleCreateLookbook)
	router.Put("/lookbook/:id", h.HandleUpdateLookbook)
	router.Delete("/lookbook/:id", h.HandleDeleteLookbook)
}

// adminError maps service and repository errors onto HTTP statuses. The
// permission and in-flight messages go to the client verbatim.
func adminError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrPermissionDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrOperationInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Record not found",
		})
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   verrs.Error(),
		})
	}

	log.Printf("Error during admin %s: %v", op, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Operation failed",
		"error":   err.Error(),
	})
}

// HandleListProducts returns the filtered, sorted product list including
// drafts.
func (h *AdminHandler) HandleListProducts(c *fiber.Ctx) error {
	opts := services.ListOptions{
		Search: c.Query("search"),
		Status: c.Query("status", services.StatusAll),
		Sort:   c.Query("sort"),
		Order:  c.Query("order", services.OrderAsc),
	}
	products, err := h.admin.List(opts)
	if err != nil {
		return adminError(c, "list products", err)
	}
	return c.JSON(products)
}

// HandleSaveProduct creates or updates a product. A request body with an ID
// updates, without one creates.
func (h *AdminHandler) HandleSaveProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if id := c.Params("id"); id != "" {
		product.ID = id
	}

	saved, err := h.admin.Save(&product)
	if err != nil {
		return adminError(c, "save product", err)
	}
	if c.Method() == fiber.MethodPost {
		return c.Status(fiber.StatusCreated).JSON(saved)
	}
	return c.JSON(saved)
}

// HandleDeleteProduct removes a product.
func (h *AdminHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.admin.Delete(c.Params("id")); err != nil {
		return adminError(c, "delete product", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleTogglePublished flips a product between published and draft.
func (h *AdminHandler) HandleTogglePublished(c *fiber.Ctx) error {
	product, err := h.admin.TogglePublished(c.Params("id"))
	if err != nil {
		return adminError(c, "toggle published", err)
	}
	return c.JSON(product)
}

// HandleListOrders returns every recorded order.
func (h *AdminHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetAll()
	if err != nil {
		return adminError(c, "list orders", err)
	}
	return c.JSON(orders)
}

// HandleGetSale returns the store-wide sale settings, active or not.
func (h *AdminHandler) HandleGetSale(c *fiber.Ctx) error {
	sale, err := h.promo.Get()
	if err != nil {
		return adminError(c, "get sale", err)
	}
	if sale == nil {
		return c.JSON(models.ActiveSale{})
	}
	return c.JSON(sale)
}

// HandleSaveSale replaces the store-wide sale settings.
func (h *AdminHandler) HandleSaveSale(c *fiber.Ctx) error {
	var sale models.ActiveSale
	if err := c.BodyParser(&sale); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if sale.Discount < 0 || sale.Discount > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Discount must be between 0 and 100",
		})
	}

	if err := h.promo.Save(&sale); err != nil {
		return adminError(c, "save sale", err)
	}
	return c.JSON(sale)
}

// HandleCreateLookbook adds a lookbook entry.
func (h *AdminHandler) HandleCreateLookbook(c *fiber.Ctx) error {
	var entry models.LookbookEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if entry.Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image is required",
		})
	}

	if err := h.lookbook.Create(&entry); err != nil {
		return adminError(c, "create lookbook entry", err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleUpdateLookbook updates a lookbook entry.
func (h *AdminHandler) HandleUpdateLookbook(c *fiber.Ctx) error {
	var entry models.LookbookEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	entry.ID = c.Params("id")

	if err := h.lookbook.Update(&entry); err != nil {
		return adminError(c, "update lookbook entry", err)
	}
	return c.JSON(entry)
}

// HandleDeleteLookbook removes a lookbook entry.
func (h *AdminHandler) HandleDeleteLookbook(c *fiber.Ctx) error {
	if err := h.lookbook.Delete(c.Params("id")); err != nil {
		return adminError(c, "delete lookbook entry", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
