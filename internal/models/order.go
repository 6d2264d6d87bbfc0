package models

import "time"

// OrderStatusPending is the only status this system ever writes: orders are
// outbound snapshots handed to a chat channel, not managed entities.
const OrderStatusPending = "pending"

// OrderItem is the frozen summary of one cart line at checkout time.
// Price is the effective unit price after discounts.
type OrderItem struct {
	Name     string `json:"name"`
	Article  string `json:"article"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

// Order is the snapshot built at checkout: written once to the orders table
// and to the device's local history, then encoded into a chat message.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Items     []OrderItem `json:"items" gorm:"serializer:json"`
	Total     int         `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
