package repository

import (
	"context"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type gormStore struct {
	db         *gorm.DB
	log        *logrus.Logger
	products   domain.ProductRepository
	categories domain.CategoryRepository
}

// NewGormStore returns a Store whose repositories share db.
func NewGormStore(db *gorm.DB, logger *logrus.Logger) domain.Store {
	return &gormStore{
		db:         db,
		log:        logger,
		products:   NewGormProductRepository(db, logger),
		categories: NewGormCategoryRepository(db, logger),
	}
}

func (s *gormStore) Products() domain.ProductRepository {
	return s.products
}

func (s *gormStore) Categories() domain.CategoryRepository {
	return s.categories
}

func (s *gormStore) WithinTransaction(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx, s.log))
	})
}
