package models

import "gorm.io/gorm"

// ActiveSale is the store-wide discount descriptor. It lives in a single row
// of the promo_settings table; the storefront reads it, the admin panel edits
// it. The sale only applies to products without their own discount.
type ActiveSale struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Active     bool   `json:"active"`
	Discount   int    `json:"discount" validate:"gte=0,lte=100"`
	Title      string `json:"title" validate:"omitempty,max=100"`
	gorm.Model `json:"-"`
}

// TableName keeps the legacy table name.
func (ActiveSale) TableName() string { return "promo_settings" }

// Applies reports whether the sale contributes a discount at all.
func (s *ActiveSale) Applies() bool {
	return s != nil && s.Active && s.Discount > 0
}
