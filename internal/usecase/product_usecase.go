package usecase

import (
	"context"
	"fmt"

	"catalog_service/internal/domain"
	"catalog_service/internal/dto"
	"catalog_service/internal/validation"

	"github.com/sirupsen/logrus"
)

type ProductUseCase interface {
	FindAllPaged(ctx context.Context, filter domain.ProductFilter, page domain.PageRequest) (domain.Page[dto.ProductDTO], error)
	FindByID(ctx context.Context, id int64) (dto.ProductDTO, error)
	Insert(ctx context.Context, req dto.ProductRequest) (dto.ProductDTO, error)
	Update(ctx context.Context, id int64, req dto.ProductRequest) (dto.ProductDTO, error)
	Delete(ctx context.Context, id int64) error
}

type productUseCase struct {
	store domain.Store
	log   *logrus.Logger
}

func NewProductUseCase(store domain.Store, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		store: store,
		log:   logger,
	}
}

func (uc *productUseCase) FindAllPaged(ctx context.Context, filter domain.ProductFilter, page domain.PageRequest) (domain.Page[dto.ProductDTO], error) {
	if err := page.Validate(); err != nil {
		uc.log.Warnf("Use Case: Invalid page request (page: %d, size: %d): %v", page.Page, page.Size, err)
		return domain.Page[dto.ProductDTO]{}, err
	}

	uc.log.Infof("Use Case: Attempting to list products (page: %d, size: %d)", page.Page, page.Size)
	var result domain.Page[domain.Product]
	err := uc.store.WithinTransaction(ctx, func(tx domain.Store) error {
		var err error
		result, err = tx.Products().FindAll(ctx, filter, page)
		return err
	})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return domain.Page[dto.ProductDTO]{}, fmt.Errorf("could not retrieve products: %w", err)
	}

	uc.log.Infof("Use Case: Retrieved %d of %d products", result.NumberOfElements, result.TotalElements)
	return domain.MapPage(result, dto.NewProductDTO), nil
}

func (uc *productUseCase) FindByID(ctx context.Context, id int64) (dto.ProductDTO, error) {
	if err := validateID(id); err != nil {
		uc.log.Warnf("Use Case: Attempted to get product with invalid ID: %d", id)
		return dto.ProductDTO{}, err
	}

	found, err := uc.store.Products().FindByID(ctx, id)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to get product ID %d: %v", id, err)
		return dto.ProductDTO{}, err
	}
	product, ok := found.Get()
	if !ok {
		uc.log.Warnf("Use Case: Product ID %d not found", id)
		return dto.ProductDTO{}, notFound(id)
	}
	return dto.NewProductDTO(product), nil
}

func (uc *productUseCase) Insert(ctx context.Context, req dto.ProductRequest) (dto.ProductDTO, error) {
	if err := validation.Struct(req); err != nil {
		uc.log.Warnf("Use Case: Rejected product payload: %v", err)
		return dto.ProductDTO{}, err
	}

	uc.log.Infof("Use Case: Attempting to create product '%s'", req.Name)
	var product domain.Product
	err := uc.store.WithinTransaction(ctx, func(tx domain.Store) error {
		if err := uc.copyRequest(ctx, tx, req, &product); err != nil {
			return err
		}
		_, err := tx.Products().Save(ctx, &product)
		return translateStorageError(err, "product", product.ID)
	})
	if err != nil {
		uc.log.Errorf("Use Case: Failed to create product '%s': %v", req.Name, err)
		return dto.ProductDTO{}, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %d", product.Name, product.ID)
	return dto.NewProductDTO(product), nil
}

func (uc *productUseCase) Update(ctx context.Context, id int64, req dto.ProductRequest) (dto.ProductDTO, error) {
	if err := validateID(id); err != nil {
		uc.log.Warnf("Use Case: Attempted update with invalid product ID: %d", id)
		return dto.ProductDTO{}, err
	}
	if err := validation.Struct(req); err != nil {
		uc.log.Warnf("Use Case: Rejected product payload for ID %d: %v", id, err)
		return dto.ProductDTO{}, err
	}

	uc.log.Infof("Use Case: Attempting to update product ID %d", id)
	var product domain.Product
	err := uc.store.WithinTransaction(ctx, func(tx domain.Store) error {
		found, err := tx.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		var ok bool
		if product, ok = found.Get(); !ok {
			return notFound(id)
		}
		if err := uc.copyRequest(ctx, tx, req, &product); err != nil {
			return err
		}
		_, err = tx.Products().Save(ctx, &product)
		return translateStorageError(err, "product", id)
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to update product ID %d: %v", id, err)
		return dto.ProductDTO{}, err
	}

	uc.log.Infof("Use Case: Product updated successfully for ID %d", id)
	return dto.NewProductDTO(product), nil
}

// Delete removes the product with the given id. A missing id is reported as
// domain.ErrResourceNotFound.
func (uc *productUseCase) Delete(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		uc.log.Warnf("Use Case: Attempted delete with invalid product ID: %d", id)
		return err
	}

	uc.log.Infof("Use Case: Attempting to delete product ID %d", id)
	err := uc.store.WithinTransaction(ctx, func(tx domain.Store) error {
		return tx.Products().DeleteByID(ctx, id)
	})
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %d: %v", id, err)
		return translateStorageError(err, "product", id)
	}

	uc.log.Infof("Use Case: Product deleted successfully for ID %d", id)
	return nil
}

// copyRequest copies req onto product, resolving category references through tx.
func (uc *productUseCase) copyRequest(ctx context.Context, tx domain.Store, req dto.ProductRequest, product *domain.Product) error {
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.ImgURL = req.ImgURL
	product.Date = req.Date.UTC()

	ids := req.CategoryIDs()
	categories, err := tx.Categories().FindAllByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(categories) != len(ids) {
		known := make(map[int64]bool, len(categories))
		for _, c := range categories {
			known[c.ID] = true
		}
		for _, id := range ids {
			if !known[id] {
				uc.log.Warnf("Use Case: Category ID %d not found for product '%s'", id, req.Name)
				return fmt.Errorf("%w: category Id not found %d", domain.ErrResourceNotFound, id)
			}
		}
	}

	product.Categories = nil
	for _, c := range categories {
		product.AddCategory(c)
	}
	return nil
}
