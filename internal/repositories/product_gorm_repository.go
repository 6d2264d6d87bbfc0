package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"molove/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products, newest first.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, translateError("get all products", err)
	}
	return products, nil
}

// GetPublished retrieves only published products, newest first.
func (r *GORMProductRepository) GetPublished() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("published = ?", true).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, translateError("get published products", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, translateError("get product "+id, err)
	}
	return &product, nil
}

// Create creates a new product, assigning an ID when absent and recomputing
// the aggregate stock from the per-size map.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.Sizes != nil {
		product.TotalStock = product.TotalFromSizes()
	}
	if err := r.db.Create(product).Error; err != nil {
		return translateError("create product", err)
	}
	return nil
}

// Update updates an existing product, recomputing the aggregate stock when a
// sizes map is included.
func (r *GORMProductRepository) Update(product *models.Product) error {
	if product.Sizes != nil {
		product.TotalStock = product.TotalFromSizes()
	}
	res := r.db.Save(product) // Save updates all fields, including zero values
	if res.Error != nil {
		return translateError("update product "+product.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound for a missed update,
		// so RowsAffected is the only signal.
		return translateError("update product "+product.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete deletes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translateError("delete product "+id, res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("delete product "+id, gorm.ErrRecordNotFound)
	}
	return nil
}
