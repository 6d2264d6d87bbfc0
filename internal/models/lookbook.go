package models

import "gorm.io/gorm"

// LookbookEntry is one image of the seasonal lookbook, ordered by Position.
type LookbookEntry struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Image      string `json:"image" validate:"required,url"`
	Caption    string `json:"caption" validate:"omitempty,max=300"`
	Position   int    `json:"position" validate:"gte=0"`
	gorm.Model `json:"-"`
}

// TableName keeps the legacy table name.
func (LookbookEntry) TableName() string { return "lookbook" }
