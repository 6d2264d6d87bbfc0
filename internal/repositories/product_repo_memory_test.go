package repositories_test

import (
	"testing"

	"molove/internal/models"
	"molove/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestMemoryProductRepository_NewestFirst(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	older := &models.Product{Name: "Первый", Article: "A-1", Published: true}
	newer := &models.Product{Name: "Второй", Article: "A-2", Published: false}
	assert.NoError(t, repo.Create(older))
	assert.NoError(t, repo.Create(newer))

	all, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Второй", all[0].Name)
	assert.Equal(t, "Первый", all[1].Name)

	published, err := repo.GetPublished()
	assert.NoError(t, err)
	assert.Len(t, published, 1)
	assert.Equal(t, "Первый", published[0].Name)
}

func TestMemoryProductRepository_AggregateStock(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	// sizes={XS:2,S:0,M:5} with no explicit stock -> aggregate 7.
	p := &models.Product{
		Name:    "Рубашка",
		Article: "SH-1",
		Sizes:   models.SizeMap{"XS": 2, "S": 0, "M": 5},
	}
	assert.NoError(t, repo.Create(p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 7, p.TotalStock)

	// Update with a new sizes map recomputes the aggregate.
	p.Sizes = models.SizeMap{"XS": 1, "M": 1}
	assert.NoError(t, repo.Update(p))
	assert.Equal(t, 2, p.TotalStock)
}

func TestMemoryProductRepository_DeleteAndNotFound(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	p := &models.Product{Name: "Платье", Article: "D-1"}
	assert.NoError(t, repo.Create(p))

	assert.NoError(t, repo.Delete(p.ID))
	assert.ErrorIs(t, repo.Delete(p.ID), repositories.ErrNotFound)

	_, err := repo.GetByID(p.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
