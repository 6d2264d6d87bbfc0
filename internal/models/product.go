package models

import "gorm.io/gorm"

// SizeMap maps a size label (XS, S, M, ...) to the stock available for it.
type SizeMap map[string]int

// ImageList is an ordered list of product image URLs; the first entry is the
// main image shown in catalog cards.
type ImageList []string

// Product represents one catalog item. Prices are whole rubles.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required,min=2,max=200"`
	Article     string    `json:"article" validate:"required,max=64"`
	Category    string    `json:"category" validate:"required,max=100"`
	Price       int       `json:"price" validate:"required,gt=0"`
	Discount    int       `json:"discount" validate:"gte=0,lte=100"`
	Images      ImageList `json:"images" gorm:"serializer:json" validate:"required,min=1,dive,url"`
	Sizes       SizeMap   `json:"sizes" gorm:"serializer:json" validate:"omitempty,dive,gte=0"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Published   bool      `json:"published"`
	TotalStock  int       `json:"total_stock" validate:"gte=0"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// TotalFromSizes returns the aggregate stock across all sizes.
func (p *Product) TotalFromSizes() int {
	total := 0
	for _, count := range p.Sizes {
		if count > 0 {
			total += count
		}
	}
	return total
}

// StockFor returns the available stock for a size label, 0 when the size is
// not offered.
func (p *Product) StockFor(size string) int {
	if p.Sizes == nil {
		return 0
	}
	return p.Sizes[size]
}

// MainImage returns the first image URL or empty when none is set.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
