package db

import (
	"io/fs"
	"testing"

	"catalog_service/migrations"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestConnectRejectsEmptyURL(t *testing.T) {
	_, err := Connect("", PoolConfig{})
	assert.Error(t, err)
}

func TestNewGormLoggerFollowsLogrusLevel(t *testing.T) {
	log := logrus.New()
	assert.NotNil(t, NewGormLogger(log))

	log.SetLevel(logrus.DebugLevel)
	assert.Implements(t, (*logger.Interface)(nil), NewGormLogger(log))
}

func TestEmbeddedMigrationsAreReadable(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "000001_create_catalog_tables.up.sql")
	assert.Contains(t, files, "000001_create_catalog_tables.down.sql")

	source, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer source.Close()

	version, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}
