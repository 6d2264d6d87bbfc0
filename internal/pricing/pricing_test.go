package pricing_test

import (
	"testing"

	"molove/internal/models"
	"molove/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice_NoDiscount(t *testing.T) {
	assert.Equal(t, 1000, pricing.EffectivePrice(1000, 0, nil))
	assert.Equal(t, 0, pricing.EffectivePrice(0, 0, nil))
}

func TestEffectivePrice_ProductDiscount(t *testing.T) {
	assert.Equal(t, 900, pricing.EffectivePrice(1000, 10, nil))
	assert.Equal(t, 0, pricing.EffectivePrice(1000, 100, nil))
	assert.Equal(t, 1000, pricing.EffectivePrice(1000, -5, nil))
}

func TestEffectivePrice_RoundsHalfUp(t *testing.T) {
	// 999 * 0.95 = 949.05 -> 949
	assert.Equal(t, 949, pricing.EffectivePrice(999, 5, nil))
	// 150 * 0.67 = 100.5 -> 101
	assert.Equal(t, 101, pricing.EffectivePrice(150, 33, nil))
}

func TestEffectivePrice_ActiveSale(t *testing.T) {
	sale := &models.ActiveSale{Active: true, Discount: 10, Title: "Распродажа"}

	assert.Equal(t, 900, pricing.EffectivePrice(1000, 0, sale))

	// A product-level discount always wins over the sale, never stacked.
	assert.Equal(t, 750, pricing.EffectivePrice(1000, 25, sale))
	assert.Equal(t, 950, pricing.EffectivePrice(1000, 5, sale))

	inactive := &models.ActiveSale{Active: false, Discount: 50}
	assert.Equal(t, 1000, pricing.EffectivePrice(1000, 0, inactive))

	zeroed := &models.ActiveSale{Active: true, Discount: 0}
	assert.Equal(t, 1000, pricing.EffectivePrice(1000, 0, zeroed))
}

func TestCartTotal_Example(t *testing.T) {
	// One line {price 1000, discount 0, qty 2} with active 10% sale:
	// effective unit 900, total 1800.
	cart := models.Cart{Items: []models.CartItem{
		{
			LineID:       "line-1",
			Product:      models.Product{ID: "prod-1", Name: "Платье", Price: 1000},
			SelectedSize: "M",
			Quantity:     2,
		},
	}}
	sale := &models.ActiveSale{Active: true, Discount: 10}

	assert.Equal(t, 900, pricing.UnitPrice(cart.Items[0], sale))
	assert.Equal(t, 1800, pricing.CartTotal(cart, sale))
	assert.Equal(t, 2000, pricing.OriginalTotal(cart))
}
