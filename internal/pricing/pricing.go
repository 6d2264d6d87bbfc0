// Package pricing computes effective prices. A product-level discount always
// wins over the store-wide sale; the two are never combined.
package pricing

import (
	"math"

	"molove/internal/models"
)

// EffectivePrice returns the unit price after applying the applicable
// discount: the product's own discount when it is positive, otherwise the
// store-wide sale's discount when the sale is active, otherwise none.
// Rounding is half-up to the nearest whole ruble.
func EffectivePrice(price, productDiscount int, sale *models.ActiveSale) int {
	discount := productDiscount
	if discount <= 0 && sale.Applies() {
		discount = sale.Discount
	}
	if discount <= 0 {
		return price
	}
	return int(math.Round(float64(price) * (1 - float64(discount)/100)))
}

// UnitPrice returns the effective unit price for a cart line.
func UnitPrice(item models.CartItem, sale *models.ActiveSale) int {
	return EffectivePrice(item.Product.Price, item.Product.Discount, sale)
}

// LineTotal returns the effective price of a cart line times its quantity.
func LineTotal(item models.CartItem, sale *models.ActiveSale) int {
	return UnitPrice(item, sale) * item.Quantity
}

// CartTotal sums the effective line totals of the whole cart.
func CartTotal(cart models.Cart, sale *models.ActiveSale) int {
	total := 0
	for _, item := range cart.Items {
		total += LineTotal(item, sale)
	}
	return total
}

// OriginalTotal sums the undiscounted line totals, used to display savings.
func OriginalTotal(cart models.Cart) int {
	total := 0
	for _, item := range cart.Items {
		total += item.Product.Price * item.Quantity
	}
	return total
}
