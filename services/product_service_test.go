package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppit/models"
)

type mockProductStore struct {
	bySlug  map[string]*models.DetailedProduct
	created []*models.Product
}

func (m *mockProductStore) GetAll(_ context.Context) ([]models.Product, error) {
	products := []models.Product{}
	for _, p := range m.created {
		products = append(products, *p)
	}
	return products, nil
}

func (m *mockProductStore) GetBySlug(_ context.Context, slug string) (*models.DetailedProduct, error) {
	p, ok := m.bySlug[slug]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockProductStore) Create(_ context.Context, product *models.Product) error {
	product.ID = len(m.created) + 1
	m.created = append(m.created, product)
	return nil
}

func TestGetProductDetailNotFound(t *testing.T) {
	svc := NewProductService(&mockProductStore{bySlug: map[string]*models.DetailedProduct{}}, nil)

	_, err := svc.GetProductDetail(context.Background(), "no-such-slug")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestImportProductsReportsPerItemResults(t *testing.T) {
	store := &mockProductStore{bySlug: map[string]*models.DetailedProduct{}}
	svc := NewProductService(store, nil)

	results := svc.ImportProducts(context.Background(), []models.ImportProductRequest{
		{Title: "Blue Shirt", Price: "100.00", Category: models.CategoryClothing},
		{Title: "Bad Price", Price: "one hundred", Category: models.CategoryClothing},
		{Title: "Bad Category", Price: "10.00", Category: "Furniture"},
	})

	require.Len(t, results, 3)
	assert.Equal(t, "imported", results[0].Status)
	assert.NotEmpty(t, results[1].Error)
	assert.NotEmpty(t, results[2].Error)
	assert.Len(t, store.created, 1)
}
