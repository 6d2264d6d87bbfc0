package models

import "gorm.io/gorm"

// User is an admin panel account. There is no shopper registration; accounts
// are seeded at startup from configuration.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, no json tag
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
