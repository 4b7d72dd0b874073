package repository

import (
	"context"
	"testing"

	"catalog_service/internal/domain"
	"catalog_service/internal/seed"
	"catalog_service/internal/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryRepository(t *testing.T) domain.CategoryRepository {
	t.Helper()
	return NewGormCategoryRepository(storetest.Open(t, true), storetest.Logger())
}

func TestCategoryRepository_FindByID(t *testing.T) {
	repo := newCategoryRepository(t)
	ctx := context.Background()

	found, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	category, ok := found.Get()
	require.True(t, ok)
	assert.Equal(t, seed.CategoryBooks, category.Name)

	missing, err := repo.FindByID(ctx, nonExistingID)
	require.NoError(t, err)
	assert.True(t, missing.IsEmpty())
}

func TestCategoryRepository_FindAllByIDs(t *testing.T) {
	repo := newCategoryRepository(t)

	categories, err := repo.FindAllByIDs(context.Background(), []int64{3, 1, 99})

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, int64(1), categories[0].ID)
	assert.Equal(t, int64(3), categories[1].ID)

	none, err := repo.FindAllByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCategoryRepository_FindAllSortedDescending(t *testing.T) {
	repo := newCategoryRepository(t)

	page, err := repo.FindAll(context.Background(),
		domain.PageOf(0, 2, domain.SortOrder{Property: "id", Direction: domain.Desc}))

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(3), page.Content[0].ID)
	assert.Equal(t, int64(2), page.Content[1].ID)
}

func TestCategoryRepository_SaveAndUpdate(t *testing.T) {
	repo := newCategoryRepository(t)
	ctx := context.Background()

	created, err := repo.Save(ctx, &domain.Category{Name: "Games"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	updated, err := repo.Save(ctx, &domain.Category{ID: created.ID, Name: "Board Games"})
	require.NoError(t, err)
	assert.Equal(t, "Board Games", updated.Name)
	assert.False(t, updated.CreatedAt.IsZero())

	_, err = repo.Save(ctx, &domain.Category{ID: nonExistingID, Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrEmptyResult)
}

func TestCategoryRepository_SaveDuplicateName(t *testing.T) {
	repo := newCategoryRepository(t)

	_, err := repo.Save(context.Background(), &domain.Category{Name: seed.CategoryBooks})

	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestCategoryRepository_DeleteByID(t *testing.T) {
	repo := newCategoryRepository(t)
	ctx := context.Background()

	err := repo.DeleteByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrReferenceViolation)

	err = repo.DeleteByID(ctx, nonExistingID)
	assert.ErrorIs(t, err, domain.ErrEmptyResult)

	created, err := repo.Save(ctx, &domain.Category{Name: "Games"})
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByID(ctx, created.ID))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
