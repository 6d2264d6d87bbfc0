package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"molove/internal/models"
)

// The fallback repositories serve a degraded mode when no database backend is
// reachable: reads are always empty, writes echo their input with a generated
// identity and go nowhere. The UI keeps working instead of hard-crashing.

// FallbackProductRepository is the degraded no-op ProductRepository.
type FallbackProductRepository struct{}

// NewFallbackProductRepository creates the degraded product repository.
func NewFallbackProductRepository() *FallbackProductRepository {
	return &FallbackProductRepository{}
}

// GetAll always returns an empty list.
func (r *FallbackProductRepository) GetAll() ([]models.Product, error) {
	return []models.Product{}, nil
}

// GetPublished always returns an empty list.
func (r *FallbackProductRepository) GetPublished() ([]models.Product, error) {
	return []models.Product{}, nil
}

// GetByID never finds anything.
func (r *FallbackProductRepository) GetByID(id string) (*models.Product, error) {
	return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// Create echoes the product back with an identity, persisting nothing.
func (r *FallbackProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.Sizes != nil {
		product.TotalStock = product.TotalFromSizes()
	}
	return nil
}

// Update accepts and discards the change.
func (r *FallbackProductRepository) Update(product *models.Product) error {
	if product.Sizes != nil {
		product.TotalStock = product.TotalFromSizes()
	}
	return nil
}

// Delete accepts and discards the deletion.
func (r *FallbackProductRepository) Delete(string) error { return nil }

// FallbackOrderRepository is the degraded no-op OrderRepository.
type FallbackOrderRepository struct{}

// NewFallbackOrderRepository creates the degraded order repository.
func NewFallbackOrderRepository() *FallbackOrderRepository {
	return &FallbackOrderRepository{}
}

// Create echoes the order back with an identity, persisting nothing.
func (r *FallbackOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	return nil
}

// GetAll always returns an empty list.
func (r *FallbackOrderRepository) GetAll() ([]models.Order, error) {
	return []models.Order{}, nil
}

// FallbackPromoRepository is the degraded no-op PromoRepository.
type FallbackPromoRepository struct{}

// NewFallbackPromoRepository creates the degraded promo repository.
func NewFallbackPromoRepository() *FallbackPromoRepository {
	return &FallbackPromoRepository{}
}

// Get reports no configured sale.
func (r *FallbackPromoRepository) Get() (*models.ActiveSale, error) { return nil, nil }

// Save accepts and discards the settings.
func (r *FallbackPromoRepository) Save(sale *models.ActiveSale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	return nil
}

// FallbackLookbookRepository is the degraded no-op LookbookRepository.
type FallbackLookbookRepository struct{}

// NewFallbackLookbookRepository creates the degraded lookbook repository.
func NewFallbackLookbookRepository() *FallbackLookbookRepository {
	return &FallbackLookbookRepository{}
}

// GetAll always returns an empty list.
func (r *FallbackLookbookRepository) GetAll() ([]models.LookbookEntry, error) {
	return []models.LookbookEntry{}, nil
}

// Create echoes the entry back with an identity.
func (r *FallbackLookbookRepository) Create(entry *models.LookbookEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return nil
}

// Update accepts and discards the change.
func (r *FallbackLookbookRepository) Update(*models.LookbookEntry) error { return nil }

// Delete accepts and discards the deletion.
func (r *FallbackLookbookRepository) Delete(string) error { return nil }

// FallbackUserRepository is the degraded no-op UserRepository: admin login is
// unavailable without a backend.
type FallbackUserRepository struct{}

// NewFallbackUserRepository creates the degraded user repository.
func NewFallbackUserRepository() *FallbackUserRepository {
	return &FallbackUserRepository{}
}

// Create accepts and discards the account.
func (r *FallbackUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return nil
}

// Update accepts and discards the change.
func (r *FallbackUserRepository) Update(*models.User) error { return nil }

// GetByUsername never finds anything, so no login can succeed.
func (r *FallbackUserRepository) GetByUsername(username string) (*models.User, error) {
	return nil, fmt.Errorf("get user %s: %w", username, ErrNotFound)
}
