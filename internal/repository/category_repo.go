package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var categorySortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"createdAt": "created_at",
}

type gormCategoryRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewGormCategoryRepository(db *gorm.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &gormCategoryRepository{
		db:  db,
		log: logger,
	}
}

func (r *gormCategoryRepository) FindByID(ctx context.Context, id int64) (domain.Optional[domain.Category], error) {
	var category domain.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debugf("Repository: Category with ID %d not found", id)
			return domain.None[domain.Category](), nil
		}
		r.log.Errorf("Repository: Failed to get category by ID %d: %v", id, err)
		return domain.None[domain.Category](), fmt.Errorf("could not get category by id: %w", err)
	}
	return domain.Some(category), nil
}

func (r *gormCategoryRepository) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Category], error) {
	orders, err := orderColumns(page.Sort, categorySortColumns)
	if err != nil {
		return domain.Page[domain.Category]{}, err
	}

	query := r.db.WithContext(ctx).Model(&domain.Category{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.log.Errorf("Repository: Failed to count categories: %v", err)
		return domain.Page[domain.Category]{}, fmt.Errorf("could not count categories: %w", err)
	}

	categories := []domain.Category{}
	if !page.IsBeyond(total) {
		err = applyOrder(query, orders).
			Offset(page.Offset()).
			Limit(page.Size).
			Find(&categories).Error
		if err != nil {
			r.log.Errorf("Repository: Failed to list categories: %v", err)
			return domain.Page[domain.Category]{}, fmt.Errorf("could not list categories: %w", err)
		}
	}

	r.log.Debugf("Repository: Retrieved %d of %d categories", len(categories), total)
	return domain.NewPage(categories, page, total), nil
}

func (r *gormCategoryRepository) FindAllByIDs(ctx context.Context, ids []int64) ([]domain.Category, error) {
	categories := []domain.Category{}
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&categories).Error; err != nil {
		r.log.Errorf("Repository: Failed to get categories by IDs %v: %v", ids, err)
		return nil, fmt.Errorf("could not get categories by ids: %w", err)
	}
	return categories, nil
}

func (r *gormCategoryRepository) Save(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category.ID == 0 {
		if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
			r.log.Warnf("Repository: Failed to create category '%s': %v", category.Name, err)
			return nil, fmt.Errorf("could not create category: %w", translateError(err))
		}
		r.log.Infof("Repository: Category created with ID: %d, Name: %s", category.ID, category.Name)
		return category, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(category).Select("name", "updated_at").Updates(category)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: no category entity with id %d exists", domain.ErrEmptyResult, category.ID)
		}
		return tx.Where("id = ?", category.ID).Take(category).Error
	})
	if err != nil {
		r.log.Warnf("Repository: Failed to update category ID %d: %v", category.ID, err)
		return nil, fmt.Errorf("could not update category: %w", err)
	}

	r.log.Infof("Repository: Category updated with ID: %d", category.ID)
	return category, nil
}

// DeleteByID refuses to delete a category that products still reference.
func (r *gormCategoryRepository) DeleteByID(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var references int64
		if err := tx.Table(productCategoryTable).Where("category_id = ?", id).Count(&references).Error; err != nil {
			return err
		}
		if references > 0 {
			return fmt.Errorf("%w: category %d is referenced by %d products", domain.ErrReferenceViolation, id, references)
		}
		res := tx.Delete(&domain.Category{}, id)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: no category entity with id %d exists", domain.ErrEmptyResult, id)
		}
		return nil
	})
	if err != nil {
		r.log.Warnf("Repository: Failed to delete category ID %d: %v", id, err)
		return err
	}

	r.log.Infof("Repository: Category deleted with ID: %d", id)
	return nil
}

func (r *gormCategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Category{}).Count(&count).Error; err != nil {
		r.log.Errorf("Repository: Failed to count categories: %v", err)
		return 0, fmt.Errorf("could not count categories: %w", err)
	}
	return count, nil
}
