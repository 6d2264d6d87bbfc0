package repositories

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"molove/internal/models"
)

// PromoRepository reads and writes the single promo_settings row describing
// the store-wide sale. Get returns nil when no sale has ever been configured.
type PromoRepository interface {
	Get() (*models.ActiveSale, error)
	Save(sale *models.ActiveSale) error
}

// GORMPromoRepository is a GORM implementation of PromoRepository.
type GORMPromoRepository struct {
	db *gorm.DB
}

// NewGORMPromoRepository creates a new instance of GORMPromoRepository.
func NewGORMPromoRepository(db *gorm.DB) *GORMPromoRepository {
	return &GORMPromoRepository{db: db}
}

// Get returns the sale settings row, nil when absent.
func (r *GORMPromoRepository) Get() (*models.ActiveSale, error) {
	var sale models.ActiveSale
	if err := r.db.Order("created_at DESC").First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError("get promo settings", err)
	}
	return &sale, nil
}

// Save upserts the sale settings row.
func (r *GORMPromoRepository) Save(sale *models.ActiveSale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if err := r.db.Save(sale).Error; err != nil {
		return translateError("save promo settings", err)
	}
	return nil
}

// MemoryPromoRepository is an in-memory PromoRepository.
type MemoryPromoRepository struct {
	mu   sync.RWMutex
	sale *models.ActiveSale
}

// NewMemoryPromoRepository creates an empty MemoryPromoRepository.
func NewMemoryPromoRepository() *MemoryPromoRepository {
	return &MemoryPromoRepository{}
}

// Get returns the stored sale, nil when absent.
func (r *MemoryPromoRepository) Get() (*models.ActiveSale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.sale == nil {
		return nil, nil
	}
	sale := *r.sale
	return &sale, nil
}

// Save stores the sale.
func (r *MemoryPromoRepository) Save(sale *models.ActiveSale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	stored := *sale
	r.sale = &stored
	return nil
}
