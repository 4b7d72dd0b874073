// Package storetest provides an in-memory catalog database for tests.
package storetest

import (
	"context"
	"fmt"
	"io"
	"testing"

	"catalog_service/internal/domain"
	"catalog_service/internal/seed"
	"catalog_service/pkg/db"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Logger returns a logger that discards its output.
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Open returns a fresh in-memory database with the catalog schema and, when seeded is true,
// the demo catalog. The database is closed when the test ends.
func Open(t *testing.T, seeded bool) *gorm.DB {
	t.Helper()
	log := Logger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: db.NewGormLogger(log)})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// a single connection keeps every statement on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gormDB.AutoMigrate(&domain.Category{}, &domain.Product{}))

	if seeded {
		inserted, err := seed.Catalog(context.Background(), gormDB, log)
		require.NoError(t, err)
		require.True(t, inserted)
	}
	return gormDB
}
