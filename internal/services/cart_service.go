package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"molove/internal/cartstore"
	"molove/internal/models"
)

// Validation failures surfaced to shoppers before any state changes.
var (
	// ErrSizeRequired is returned when add-to-cart is attempted without a size.
	ErrSizeRequired = errors.New("Пожалуйста, выберите размер")
	// ErrInsufficientStock is wrapped with the available count for display.
	ErrInsufficientStock = errors.New("недостаточно товара в наличии")
	// ErrLineNotFound is returned when a line identifier matches nothing.
	ErrLineNotFound = errors.New("строка корзины не найдена")
)

// CartService owns per-device cart state: every mutation is a pure function
// from the old cart to the new one, applied and then persisted whole.
type CartService struct {
	store cartstore.Store
}

// NewCartService creates a new CartService.
func NewCartService(store cartstore.Store) *CartService {
	return &CartService{store: store}
}

// Get loads the device's cart. Storage read failures are logged and degrade
// to an empty cart; the page never fails because of them.
func (s *CartService) Get(ctx context.Context, deviceID string) models.Cart {
	cart, err := s.store.LoadCart(ctx, deviceID)
	if err != nil {
		if !errors.Is(err, cartstore.ErrNotFound) {
			log.Printf("cart: load failed for device %s: %v", deviceID, err)
		}
		return models.Cart{}
	}
	return cart
}

// Add validates the size and quantity against the product's per-size stock
// and appends a new line. Lines are never merged: adding the same product and
// size twice produces two lines with distinct identifiers.
func (s *CartService) Add(ctx context.Context, deviceID string, product models.Product, size string, quantity int) (models.Cart, error) {
	if size == "" {
		return models.Cart{}, ErrSizeRequired
	}
	stock := product.StockFor(size)
	if stock <= 0 {
		return models.Cart{}, fmt.Errorf("размер %s: %w", size, ErrInsufficientStock)
	}
	if quantity > stock {
		return models.Cart{}, fmt.Errorf("Доступно только %d шт.: %w", stock, ErrInsufficientStock)
	}
	if quantity < 1 {
		quantity = 1
	}

	cart := s.Get(ctx, deviceID)
	cart = addLine(cart, models.CartItem{
		LineID:       uuid.New().String(),
		Product:      product,
		SelectedSize: size,
		Quantity:     quantity,
	})
	return cart, s.save(ctx, deviceID, cart)
}

// SetQuantity updates one line, clamping the quantity to [1, stock for the
// line's selected size].
func (s *CartService) SetQuantity(ctx context.Context, deviceID, lineID string, quantity int) (models.Cart, error) {
	cart := s.Get(ctx, deviceID)
	if !hasLine(cart, lineID) {
		return cart, ErrLineNotFound
	}
	cart = setQuantity(cart, lineID, quantity)
	return cart, s.save(ctx, deviceID, cart)
}

// Remove deletes exactly one line by its identifier, preserving the relative
// order of the remaining lines.
func (s *CartService) Remove(ctx context.Context, deviceID, lineID string) (models.Cart, error) {
	cart := s.Get(ctx, deviceID)
	if !hasLine(cart, lineID) {
		return cart, ErrLineNotFound
	}
	cart = removeLine(cart, lineID)
	return cart, s.save(ctx, deviceID, cart)
}

// Clear empties the device's cart.
func (s *CartService) Clear(ctx context.Context, deviceID string) error {
	if err := s.store.ClearCart(ctx, deviceID); err != nil {
		log.Printf("cart: clear failed for device %s: %v", deviceID, err)
		return err
	}
	return nil
}

func (s *CartService) save(ctx context.Context, deviceID string, cart models.Cart) error {
	if err := s.store.SaveCart(ctx, deviceID, cart); err != nil {
		log.Printf("cart: save failed for device %s: %v", deviceID, err)
		return err
	}
	return nil
}

// Pure cart transitions. Each returns a fresh cart value and never mutates
// lines other than the addressed one.

func addLine(cart models.Cart, item models.CartItem) models.Cart {
	items := make([]models.CartItem, 0, len(cart.Items)+1)
	items = append(items, cart.Items...)
	items = append(items, item)
	return models.Cart{Items: items}
}

func setQuantity(cart models.Cart, lineID string, quantity int) models.Cart {
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	for i, item := range items {
		if item.LineID != lineID {
			continue
		}
		limit := item.StockLimit()
		if quantity < 1 {
			quantity = 1
		}
		if quantity > limit {
			quantity = limit
		}
		items[i].Quantity = quantity
	}
	return models.Cart{Items: items}
}

func removeLine(cart models.Cart, lineID string) models.Cart {
	items := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.LineID != lineID {
			items = append(items, item)
		}
	}
	return models.Cart{Items: items}
}

func hasLine(cart models.Cart, lineID string) bool {
	for _, item := range cart.Items {
		if item.LineID == lineID {
			return true
		}
	}
	return false
}
