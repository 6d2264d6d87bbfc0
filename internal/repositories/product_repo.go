package repositories

import (
	"molove/internal/models"
)

// ProductRepository defines the interface for product data access.
// GetAll and GetPublished return products newest first by creation time.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetPublished() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
