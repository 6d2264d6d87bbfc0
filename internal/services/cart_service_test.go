package services_test

import (
	"context"
	"errors"
	"testing"

	"molove/internal/cartstore"
	"molove/internal/models"
	"molove/internal/services"

	"github.com/stretchr/testify/assert"
)

func dressProduct() models.Product {
	return models.Product{
		ID:      "prod-1",
		Name:    "Платье миди",
		Article: "DR-100",
		Price:   1000,
		Sizes:   models.SizeMap{"S": 3, "M": 5, "L": 0},
	}
}

func TestCartService_AddRequiresSize(t *testing.T) {
	svc := services.NewCartService(cartstore.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.Add(ctx, "dev-1", dressProduct(), "", 1)
	assert.ErrorIs(t, err, services.ErrSizeRequired)

	// No state change on rejection.
	assert.Empty(t, svc.Get(ctx, "dev-1").Items)
}

func TestCartService_AddRejectsExceedingStock(t *testing.T) {
	svc := services.NewCartService(cartstore.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.Add(ctx, "dev-1", dressProduct(), "S", 4)
	assert.ErrorIs(t, err, services.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Доступно только 3 шт.")

	// A size with zero stock cannot be added at all.
	_, err = svc.Add(ctx, "dev-1", dressProduct(), "L", 1)
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	assert.Empty(t, svc.Get(ctx, "dev-1").Items)
}

func TestCartService_AddDuplicateSizeCreatesNewLine(t *testing.T) {
	svc := services.NewCartService(cartstore.NewMemoryStore())
	ctx := context.Background()

	first, err := svc.Add(ctx, "dev-1", dressProduct(), "M", 1)
	assert.NoError(t, err)
	second, err := svc.Add(ctx, "dev-1", dressProduct(), "M", 2)
	assert.NoError(t, err)

	// Two lines, never merged, fresh identifiers, insertion order kept.
	assert.Len(t, second.Items, 2)
	assert.NotEqual(t, second.Items[0].LineID, second.Items[1].LineID)
	assert.Equal(t, first.Items[0].LineID, second.Items[0].LineID)
	assert.Equal(t, 1, second.Items[0].Quantity)
	assert.Equal(t, 2, second.Items[1].Quantity)
}

func TestCartService_SetQuantityClamps(t *testing.T) {
	svc := services.NewCartService(cartstore.NewMemoryStore())
	ctx := context.Background()

	cart, err := svc.Add(ctx, "dev-1", dressProduct(), "S", 2)
	assert.NoError(t, err)
	lineID := cart.Items[0].LineID

	// Below 1 clamps to 1; idempotent at the boundary.
	cart, err = svc.SetQuantity(ctx, "dev-1", lineID, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	cart, err = svc.SetQuantity(ctx, "dev-1", lineID, -5)
	assert.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// Above stock clamps to exactly the stock count.
	cart, err = svc.SetQuantity(ctx, "dev-1", lineID, 10)
	assert.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	_, err = svc.SetQuantity(ctx, "dev-1", "missing-line", 2)
	assert.ErrorIs(t, err, services.ErrLineNotFound)
}

func TestCartService_RemovePreservesOrder(t *testing.T) {
	svc := services.NewCartService(cartstore.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.Add(ctx, "dev-1", dressProduct(), "S", 1)
	assert.NoError(t, err)
	cart, err := svc.Add(ctx, "dev-1", dressProduct(), "M", 1)
	assert.NoError(t, err)
	cart, err = svc.Add(ctx, "dev-1", dressProduct(), "M", 2)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 3)

	first, middle, last := cart.Items[0], cart.Items[1], cart.Items[2]

	got, err := svc.Remove(ctx, "dev-1", middle.LineID)
	assert.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, first.LineID, got.Items[0].LineID)
	assert.Equal(t, last.LineID, got.Items[1].LineID)

	// The surviving lines are untouched.
	assert.Equal(t, first.Quantity, got.Items[0].Quantity)
	assert.Equal(t, last.Quantity, got.Items[1].Quantity)
}

// failingStore simulates broken device storage.
type failingStore struct{ cartstore.Store }

func (failingStore) LoadCart(context.Context, string) (models.Cart, error) {
	return models.Cart{}, errors.New("storage corrupted")
}

func TestCartService_ReadFailureDegradesToEmpty(t *testing.T) {
	svc := services.NewCartService(failingStore{})

	cart := svc.Get(context.Background(), "dev-1")
	assert.Empty(t, cart.Items)
}
