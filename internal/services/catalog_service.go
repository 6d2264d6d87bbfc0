package services

import (
	"log"

	"molove/internal/catalog"
	"molove/internal/models"
	"molove/internal/pricing"
	"molove/internal/repositories"
)

// CatalogService serves the public storefront: published products only, with
// filtering, pagination and effective prices.
type CatalogService struct {
	products repositories.ProductRepository
	promo    repositories.PromoRepository
	lookbook repositories.LookbookRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	products repositories.ProductRepository,
	promo repositories.PromoRepository,
	lookbook repositories.LookbookRepository,
) *CatalogService {
	return &CatalogService{
		products: products,
		promo:    promo,
		lookbook: lookbook,
	}
}

// BrowseResult is one page of the filtered catalog.
type BrowseResult struct {
	Products   []PricedProduct    `json:"products"`
	Total      int                `json:"total"`
	HasMore    bool               `json:"has_more"`
	Categories []string           `json:"categories"`
	Sale       *models.ActiveSale `json:"sale,omitempty"`
}

// PricedProduct decorates a product with its effective price so the client
// never recomputes discounts.
type PricedProduct struct {
	models.Product
	EffectivePrice int `json:"effective_price"`
}

// Browse returns the filtered, paginated view over the published list. The
// store's newest-first ordering flows through filtering untouched.
func (s *CatalogService) Browse(query, category string, page, pageSize int) (*BrowseResult, error) {
	products, err := s.products.GetPublished()
	if err != nil {
		return nil, err
	}
	sale := s.ActiveSale()

	filtered := catalog.Filter(products, query, category)
	paged := catalog.Page(filtered, page, pageSize)

	priced := make([]PricedProduct, 0, len(paged))
	for _, p := range paged {
		priced = append(priced, PricedProduct{
			Product:        p,
			EffectivePrice: pricing.EffectivePrice(p.Price, p.Discount, sale),
		})
	}

	return &BrowseResult{
		Products:   priced,
		Total:      len(filtered),
		HasMore:    len(paged) < len(filtered),
		Categories: catalog.Categories(products),
		Sale:       sale,
	}, nil
}

// ProductByID returns one product with its effective price.
func (s *CatalogService) ProductByID(id string) (*PricedProduct, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	sale := s.ActiveSale()
	return &PricedProduct{
		Product:        *product,
		EffectivePrice: pricing.EffectivePrice(product.Price, product.Discount, sale),
	}, nil
}

// ActiveSale returns the applying store-wide sale, nil when there is none or
// the settings are unreadable.
func (s *CatalogService) ActiveSale() *models.ActiveSale {
	sale, err := s.promo.Get()
	if err != nil {
		log.Printf("catalog: promo settings unavailable: %v", err)
		return nil
	}
	if !sale.Applies() {
		return nil
	}
	return sale
}

// Lookbook returns the lookbook entries ordered by position.
func (s *CatalogService) Lookbook() ([]models.LookbookEntry, error) {
	return s.lookbook.GetAll()
}
