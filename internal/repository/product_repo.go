package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const productCategoryTable = "tb_product_category"

var productSortColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"price": "price",
	"date":  "date",
}

type gormProductRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewGormProductRepository(db *gorm.DB, logger *logrus.Logger) domain.ProductRepository {
	return &gormProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *gormProductRepository) FindByID(ctx context.Context, id int64) (domain.Optional[domain.Product], error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Preload("Categories", orderByID).
		Where("id = ?", id).
		Take(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debugf("Repository: Product with ID %d not found", id)
			return domain.None[domain.Product](), nil
		}
		r.log.Errorf("Repository: Failed to get product by ID %d: %v", id, err)
		return domain.None[domain.Product](), fmt.Errorf("could not get product by id: %w", err)
	}
	return domain.Some(product), nil
}

func (r *gormProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter, page domain.PageRequest) (domain.Page[domain.Product], error) {
	orders, err := orderColumns(page.Sort, productSortColumns)
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}

	query := r.db.WithContext(ctx).Model(&domain.Product{})
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(name))+"%")
	}
	if filter.CategoryID != 0 {
		members := r.db.Table(productCategoryTable).Select("product_id").Where("category_id = ?", filter.CategoryID)
		query = query.Where("id IN (?)", members)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.log.Errorf("Repository: Failed to count products: %v", err)
		return domain.Page[domain.Product]{}, fmt.Errorf("could not count products: %w", err)
	}

	products := []domain.Product{}
	if !page.IsBeyond(total) {
		err = applyOrder(query, orders).
			Preload("Categories", orderByID).
			Offset(page.Offset()).
			Limit(page.Size).
			Find(&products).Error
		if err != nil {
			r.log.Errorf("Repository: Failed to list products (page %d, size %d): %v", page.Page, page.Size, err)
			return domain.Page[domain.Product]{}, fmt.Errorf("could not list products: %w", err)
		}
	}

	r.log.Debugf("Repository: Retrieved %d of %d products (page %d, size %d)", len(products), total, page.Page, page.Size)
	return domain.NewPage(products, page, total), nil
}

func (r *gormProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.ID == 0 {
		// Categories are referenced, never created, through a product.
		if err := r.db.WithContext(ctx).Omit("Categories.*").Create(product).Error; err != nil {
			r.log.Errorf("Repository: Failed to create product '%s': %v", product.Name, err)
			return nil, fmt.Errorf("could not create product: %w", translateError(err))
		}
		r.log.Infof("Repository: Product created with ID: %d, Name: %s", product.ID, product.Name)
		return product, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(product).
			Select("name", "description", "price", "img_url", "date").
			Updates(product)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: no product entity with id %d exists", domain.ErrEmptyResult, product.ID)
		}
		categories := product.Categories
		if categories == nil {
			categories = []domain.Category{}
		}
		if err := tx.Model(product).Association("Categories").Replace(categories); err != nil {
			return translateError(err)
		}
		return nil
	})
	if err != nil {
		r.log.Warnf("Repository: Failed to update product ID %d: %v", product.ID, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}

	r.log.Infof("Repository: Product updated with ID: %d", product.ID)
	return product, nil
}

func (r *gormProductRepository) DeleteByID(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+productCategoryTable+" WHERE product_id = ?", id).Error; err != nil {
			return translateError(err)
		}
		res := tx.Delete(&domain.Product{}, id)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: no product entity with id %d exists", domain.ErrEmptyResult, id)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyResult) {
			r.log.Warnf("Repository: Attempted to delete non-existent product ID %d", id)
		} else {
			r.log.Errorf("Repository: Failed to delete product ID %d: %v", id, err)
		}
		return err
	}

	r.log.Infof("Repository: Product deleted with ID: %d", id)
	return nil
}

func (r *gormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		r.log.Errorf("Repository: Failed to count products: %v", err)
		return 0, fmt.Errorf("could not count products: %w", err)
	}
	return count, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes s match literally inside a LIKE pattern with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
