package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"molove/internal/models"
)

// OrderRepository persists checkout order snapshots. Orders have no further
// lifecycle here, so creation is the only write and listing is newest first.
type OrderRepository interface {
	Create(order *models.Order) error
	GetAll() ([]models.Order, error)
}

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create writes one order snapshot.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if err := r.db.Create(order).Error; err != nil {
		return translateError("create order", err)
	}
	return nil
}

// GetAll returns all orders, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, translateError("get all orders", err)
	}
	return orders, nil
}

// MemoryOrderRepository is an in-memory OrderRepository, newest first.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
}

// NewMemoryOrderRepository creates an empty MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

// Create prepends one order snapshot.
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders = append([]models.Order{*order}, r.orders...)
	return nil
}

// GetAll returns all orders, newest first.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}
