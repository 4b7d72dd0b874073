package seed_test

import (
	"context"
	"testing"

	"catalog_service/internal/domain"
	"catalog_service/internal/seed"
	"catalog_service/internal/storetest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSeedsEmptyStoreOnce(t *testing.T) {
	db := storetest.Open(t, false)
	ctx := context.Background()

	inserted, err := seed.Catalog(ctx, db, storetest.Logger())
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = seed.Catalog(ctx, db, storetest.Logger())
	require.NoError(t, err)
	assert.False(t, inserted)

	var products, categories int64
	require.NoError(t, db.Model(&domain.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&domain.Category{}).Count(&categories).Error)
	assert.Equal(t, seed.ProductCount, products)
	assert.Equal(t, int64(25), products)
	assert.Equal(t, int64(3), categories)
}

func TestCatalogAssignsIDsInOrder(t *testing.T) {
	db := storetest.Open(t, true)

	var product domain.Product
	require.NoError(t, db.Preload("Categories").Take(&product, 2).Error)

	assert.Equal(t, "Smart TV", product.Name)
	assert.True(t, decimal.NewFromInt(2190).Equal(product.Price), product.Price.String())
	require.Len(t, product.Categories, 2)

	var first domain.Product
	require.NoError(t, db.Take(&first, 1).Error)
	assert.Equal(t, "The Lord of the Rings", first.Name)
	assert.Equal(t, "https://images.example.com/catalog/the-lord-of-the-rings.jpg", first.ImgURL)
}
