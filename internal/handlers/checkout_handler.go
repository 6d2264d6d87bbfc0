package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"molove/internal/checkout"
	"molove/internal/services"
)

// CheckoutHandler handles the chat handoff and order history endpoints.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
	router.Get("/orders", h.HandleOrderHistory)
}

// HandleCheckout turns the device's cart into an order and returns the
// pre-filled chat message with its deep link.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	device, err := deviceID(c)
	if device == "" {
		return err
	}

	var req struct {
		Channel string `json:"channel"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	result, err := h.service.Checkout(c.Context(), device, checkout.Channel(req.Channel))
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) || errors.Is(err, services.ErrUnknownChannel) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error during checkout for device %s: %v", device, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not complete checkout",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleOrderHistory returns the device's past orders, newest first.
func (h *CheckoutHandler) HandleOrderHistory(c *fiber.Ctx) error {
	device, err := deviceID(c)
	if device == "" {
		return err
	}

	orders, err := h.service.History(c.Context(), device)
	if err != nil {
		log.Printf("Error getting order history for device %s: %v", device, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}
