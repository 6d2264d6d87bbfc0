package cartstore_test

import (
	"context"
	"testing"

	"molove/internal/cartstore"
	"molove/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_CartRoundTrip(t *testing.T) {
	store := cartstore.NewMemoryStore()
	ctx := context.Background()

	_, err := store.LoadCart(ctx, "dev-1")
	assert.ErrorIs(t, err, cartstore.ErrNotFound)

	cart := models.Cart{Items: []models.CartItem{{LineID: "a", Quantity: 1}}}
	assert.NoError(t, store.SaveCart(ctx, "dev-1", cart))

	got, err := store.LoadCart(ctx, "dev-1")
	assert.NoError(t, err)
	assert.Len(t, got.Items, 1)

	// Last write wins, no merge.
	assert.NoError(t, store.SaveCart(ctx, "dev-1", models.Cart{}))
	got, err = store.LoadCart(ctx, "dev-1")
	assert.NoError(t, err)
	assert.Empty(t, got.Items)

	assert.NoError(t, store.ClearCart(ctx, "dev-1"))
	_, err = store.LoadCart(ctx, "dev-1")
	assert.ErrorIs(t, err, cartstore.ErrNotFound)
}

func TestMemoryStore_OrderHistoryNewestFirst(t *testing.T) {
	store := cartstore.NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.AppendOrder(ctx, "dev-1", models.Order{ID: "first"}))
	assert.NoError(t, store.AppendOrder(ctx, "dev-1", models.Order{ID: "second"}))

	orders, err := store.Orders(ctx, "dev-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "second", orders[0].ID)
	assert.Equal(t, "first", orders[1].ID)

	// Histories are per device.
	others, err := store.Orders(ctx, "dev-2")
	assert.NoError(t, err)
	assert.Empty(t, others)
}
