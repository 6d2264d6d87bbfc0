package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"molove/internal/cartstore"
	"molove/internal/checkout"
	"molove/internal/models"
	"molove/internal/pricing"
	"molove/internal/repositories"
)

// ErrEmptyCart is returned when checkout is attempted on an empty cart.
var ErrEmptyCart = errors.New("Корзина пуста")

// ErrUnknownChannel is returned for a channel outside the supported set.
var ErrUnknownChannel = errors.New("неизвестный канал оформления заказа")

// EventPublisher publishes checkout events. Satisfied by *rabbitmq.Client.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CheckoutService builds the order snapshot, records it, clears the cart and
// produces the chat deep link. Both channels behave identically except for
// message heading and destination.
type CheckoutService struct {
	carts  *CartService
	orders repositories.OrderRepository
	promo  repositories.PromoRepository
	store  cartstore.Store
	cfg    checkout.Config
	events EventPublisher
}

// NewCheckoutService creates a new CheckoutService. events may be nil when no
// broker is configured.
func NewCheckoutService(
	carts *CartService,
	orders repositories.OrderRepository,
	promo repositories.PromoRepository,
	store cartstore.Store,
	cfg checkout.Config,
	events EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		carts:  carts,
		orders: orders,
		promo:  promo,
		store:  store,
		cfg:    cfg,
		events: events,
	}
}

// Result is everything the client needs to finish the handoff.
type Result struct {
	Order   models.Order `json:"order"`
	Message string       `json:"message"`
	URL     string       `json:"url"`
}

// Checkout performs the handoff for the device's current cart. The order row
// and history append are best effort; the cart clear and the deep link are
// the contract.
func (s *CheckoutService) Checkout(ctx context.Context, deviceID string, channel checkout.Channel) (*Result, error) {
	if !channel.Valid() {
		return nil, ErrUnknownChannel
	}

	cart := s.carts.Get(ctx, deviceID)
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	sale := s.activeSale()
	order := buildOrder(cart, sale)

	message := checkout.Summary(channel, order.ID, order.Items, order.Total)
	link, err := checkout.DeepLink(s.cfg, channel, message)
	if err != nil {
		return nil, err
	}

	// Side effects past this point never fail the handoff: the shopper is
	// already holding a complete message and destination.
	if err := s.orders.Create(&order); err != nil {
		log.Printf("checkout: order record failed: %v", err)
	}
	if err := s.store.AppendOrder(ctx, deviceID, order); err != nil {
		log.Printf("checkout: history append failed for device %s: %v", deviceID, err)
	}
	s.publishCreated(order, channel)
	if err := s.carts.Clear(ctx, deviceID); err != nil {
		log.Printf("checkout: cart clear failed for device %s: %v", deviceID, err)
	}

	return &Result{Order: order, Message: message, URL: link}, nil
}

// History returns the device's order history, newest first.
func (s *CheckoutService) History(ctx context.Context, deviceID string) ([]models.Order, error) {
	orders, err := s.store.Orders(ctx, deviceID)
	if err != nil {
		log.Printf("checkout: history read failed for device %s: %v", deviceID, err)
		return []models.Order{}, nil
	}
	return orders, nil
}

func (s *CheckoutService) activeSale() *models.ActiveSale {
	sale, err := s.promo.Get()
	if err != nil {
		log.Printf("checkout: promo settings unavailable: %v", err)
		return nil
	}
	return sale
}

func (s *CheckoutService) publishCreated(order models.Order, channel checkout.Channel) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"order_id": order.ID,
		"total":    order.Total,
		"items":    len(order.Items),
		"channel":  string(channel),
		"status":   order.Status,
	})
	if err != nil {
		log.Printf("checkout: marshal order event failed: %v", err)
		return
	}
	if err := s.events.Publish("shop", "order.created", body); err != nil {
		log.Printf("checkout: publish order event failed for order %s: %v", order.ID, err)
	}
}

func buildOrder(cart models.Cart, sale *models.ActiveSale) models.Order {
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			Name:     line.Product.Name,
			Article:  line.Product.Article,
			Size:     line.SelectedSize,
			Quantity: line.Quantity,
			Price:    pricing.UnitPrice(line, sale),
		})
	}
	return models.Order{
		ID:        uuid.New().String(),
		Items:     items,
		Total:     pricing.CartTotal(cart, sale),
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now(),
	}
}
