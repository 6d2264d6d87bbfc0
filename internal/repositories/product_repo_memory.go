package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"molove/internal/models"
)

// MemoryProductRepository is an in-memory ProductRepository used in tests and
// local development. The backing slice is kept newest first so it honors the
// same ordering contract as the GORM implementation.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewMemoryProductRepository creates an empty MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{}
}

// GetAll returns all products, newest first.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetPublished returns only published products, newest first.
func (r *MemoryProductRepository) GetPublished() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// Create prepends a new product so the list stays newest first.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.Sizes != nil {
		product.TotalStock = product.TotalFromSizes()
	}
	product.CreatedAt = time.Now()
	r.products = append([]models.Product{*product}, r.products...)
	return nil
}

// Update modifies an existing product in place.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.Sizes != nil {
		product.TotalStock = product.TotalFromSizes()
	}
	for i, p := range r.products {
		if p.ID == product.ID {
			product.CreatedAt = p.CreatedAt
			r.products[i] = *product
			return nil
		}
	}
	return fmt.Errorf("update product %s: %w", product.ID, ErrNotFound)
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete product %s: %w", id, ErrNotFound)
}
