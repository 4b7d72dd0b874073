package repository

import (
	"context"
	"errors"
	"testing"

	"catalog_service/internal/domain"
	"catalog_service/internal/seed"
	"catalog_service/internal/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormStore_WithinTransactionCommits(t *testing.T) {
	store := NewGormStore(storetest.Open(t, true), storetest.Logger())
	ctx := context.Background()

	err := store.WithinTransaction(ctx, func(tx domain.Store) error {
		return tx.Products().DeleteByID(ctx, existingID)
	})
	require.NoError(t, err)

	count, err := store.Products().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.ProductCount-1, count)
}

func TestGormStore_WithinTransactionRollsBackOnError(t *testing.T) {
	store := NewGormStore(storetest.Open(t, true), storetest.Logger())
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := store.WithinTransaction(ctx, func(tx domain.Store) error {
		if err := tx.Products().DeleteByID(ctx, existingID); err != nil {
			return err
		}
		if _, err := tx.Products().Save(ctx, newProduct()); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	count, err := store.Products().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.ProductCount, count)

	found, err := store.Products().FindByID(ctx, existingID)
	require.NoError(t, err)
	assert.True(t, found.IsPresent())
}

func TestGormStore_WithinTransactionRollsBackOnPanic(t *testing.T) {
	store := NewGormStore(storetest.Open(t, true), storetest.Logger())
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = store.WithinTransaction(ctx, func(tx domain.Store) error {
			_ = tx.Products().DeleteByID(ctx, existingID)
			panic("boom")
		})
	})

	count, err := store.Products().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.ProductCount, count)
}
