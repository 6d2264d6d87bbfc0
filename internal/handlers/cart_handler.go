package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"molove/internal/repositories"
	"molove/internal/services"
)

// DeviceHeader carries the anonymous device identifier that keys carts and
// order history. No account is required to shop.
const DeviceHeader = "X-Device-ID"

// CartHandler handles the per-device cart endpoints.
type CartHandler struct {
	carts    *services.CartService
	products repositories.ProductRepository
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *services.CartService, products repositories.ProductRepository) *CartHandler {
	return &CartHandler{carts: carts, products: products}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:lineID", h.HandleSetQuantity)
	cartRoutes.Delete("/items/:lineID", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

func deviceID(c *fiber.Ctx) (string, error) {
	id := c.Get(DeviceHeader)
	if id == "" {
		return "", c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "X-Device-ID header is required",
		})
	}
	return id, nil
}

// HandleGetCart returns the device's current cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	device, err := deviceID(c)
	if device == "" {
		return err
	}
	return c.JSON(h.carts.Get(c.Context(), device))
}

// HandleAddItem adds a product in a chosen size to the cart. Every add
// creates its own line, even for a size already present.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	device, err := deviceID(c)
	if device == "" {
		return err
	}

	var req struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	product, err := h.products.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error loading product %s for cart: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}

	cart, err := h.carts.Add(c.Context(), device, *product, req.Size, req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrSizeRequired) || errors.Is(err, services.ErrInsufficientStock) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error adding item to cart for device %s: %v", device, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// HandleSetQuantity changes a line's quantity. The service clamps the value
// to the size's available stock.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	device, err := deviceID(c)
	if device == "" {
		return err
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart, err := h.carts.SetQuantity(c.Context(), device, c.Params("lineID"), req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrLineNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error updating cart line for device %s: %v", device, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// HandleRemoveItem removes one line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	device, err := deviceID(c)
	if device == "" {
		return err
	}

	cart, err := h.carts.Remove(c.Context(), device, c.Params("lineID"))
	if err != nil {
		if errors.Is(err, services.ErrLineNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error removing cart line for device %s: %v", device, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// HandleClearCart drops every line in the device's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	device, err := deviceID(c)
	if device == "" {
		return err
	}

	if err := h.carts.Clear(c.Context(), device); err != nil {
		log.Printf("Error clearing cart for device %s: %v", device, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
