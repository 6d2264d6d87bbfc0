package services_test

import (
	"testing"

	"molove/internal/models"
	"molove/internal/repositories"
	"molove/internal/services"

	"github.com/stretchr/testify/assert"
)

func catalogFixture(t *testing.T) (*services.CatalogService, *repositories.MemoryProductRepository, *repositories.MemoryPromoRepository) {
	t.Helper()
	products := repositories.NewMemoryProductRepository()
	promo := repositories.NewMemoryPromoRepository()
	lookbook := repositories.NewMemoryLookbookRepository()
	return services.NewCatalogService(products, promo, lookbook), products, promo
}

func TestCatalogService_BrowseShowsOnlyPublished(t *testing.T) {
	svc, products, _ := catalogFixture(t)

	assert.NoError(t, products.Create(&models.Product{
		Name: "Черновик", Article: "D-1", Category: "dresses", Price: 1000, Published: false,
	}))
	assert.NoError(t, products.Create(&models.Product{
		Name: "Платье миди", Article: "D-2", Category: "dresses", Price: 2000, Published: true,
	}))

	result, err := svc.Browse("", "all", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Len(t, result.Products, 1)
	assert.Equal(t, "Платье миди", result.Products[0].Name)
	assert.False(t, result.HasMore)
}

func TestCatalogService_BrowseAppliesSalePricing(t *testing.T) {
	svc, products, promo := catalogFixture(t)

	assert.NoError(t, products.Create(&models.Product{
		Name: "Платье", Article: "D-1", Category: "dresses", Price: 1000, Published: true,
	}))
	assert.NoError(t, products.Create(&models.Product{
		Name: "Рубашка", Article: "S-1", Category: "shirts", Price: 1000, Discount: 25, Published: true,
	}))
	assert.NoError(t, promo.Save(&models.ActiveSale{Active: true, Discount: 10, Title: "Распродажа"}))

	result, err := svc.Browse("", "all", 1, 20)
	assert.NoError(t, err)
	assert.NotNil(t, result.Sale)

	byName := map[string]int{}
	for _, p := range result.Products {
		byName[p.Name] = p.EffectivePrice
	}
	// Product discount wins over the sale; sale covers the rest.
	assert.Equal(t, 750, byName["Рубашка"])
	assert.Equal(t, 900, byName["Платье"])
}

func TestCatalogService_BrowsePagination(t *testing.T) {
	svc, products, _ := catalogFixture(t)

	for i := 0; i < 25; i++ {
		assert.NoError(t, products.Create(&models.Product{
			Name: "Товар", Article: "A", Category: "dresses", Price: 100, Published: true,
		}))
	}

	result, err := svc.Browse("", "all", 1, 20)
	assert.NoError(t, err)
	assert.Len(t, result.Products, 20)
	assert.Equal(t, 25, result.Total)
	assert.True(t, result.HasMore)

	result, err = svc.Browse("", "all", 2, 20)
	assert.NoError(t, err)
	assert.Len(t, result.Products, 25)
	assert.False(t, result.HasMore)
}
