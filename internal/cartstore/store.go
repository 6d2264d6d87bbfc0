// Package cartstore persists per-device cart state and order history, the
// server-side stand-in for the browser's namespaced local storage keys.
package cartstore

import (
	"context"
	"errors"

	"molove/internal/models"
)

// ErrNotFound is returned when a device has no saved cart yet.
var ErrNotFound = errors.New("cartstore: not found")

// Store holds one cart and one append-only order history per device.
// SaveCart is whole-value last-write-wins; there is no merging. Order history
// is newest first and never pruned.
type Store interface {
	LoadCart(ctx context.Context, deviceID string) (models.Cart, error)
	SaveCart(ctx context.Context, deviceID string, cart models.Cart) error
	ClearCart(ctx context.Context, deviceID string) error

	AppendOrder(ctx context.Context, deviceID string, order models.Order) error
	Orders(ctx context.Context, deviceID string) ([]models.Order, error)
}
