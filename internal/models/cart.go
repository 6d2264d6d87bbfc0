package models

// CartItem is one line in a shopper's cart: a snapshot of the product at the
// moment it was added, plus the chosen size and quantity. LineID is generated
// locally; two adds of the same product and size produce two distinct lines.
type CartItem struct {
	LineID       string  `json:"line_id"`
	Product      Product `json:"product"`
	SelectedSize string  `json:"selected_size"`
	Quantity     int     `json:"quantity"`
}

// MaxQuantity is the cap applied when a snapshot carries no per-size stock.
const MaxQuantity = 99

// StockLimit returns the largest quantity this line may hold.
func (i CartItem) StockLimit() int {
	if stock := i.Product.StockFor(i.SelectedSize); stock > 0 {
		return stock
	}
	return MaxQuantity
}

// Cart is the ordered sequence of line items for one device. Insertion order
// is display order.
type Cart struct {
	Items []CartItem `json:"items"`
}

// ItemCount returns the total quantity across all lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }
