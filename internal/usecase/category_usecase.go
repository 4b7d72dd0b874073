package usecase

import (
	"context"
	"fmt"

	"catalog_service/internal/domain"
	"catalog_service/internal/dto"
	"catalog_service/internal/validation"

	"github.com/sirupsen/logrus"
)

type CategoryUseCase interface {
	FindAllPaged(ctx context.Context, page domain.PageRequest) (domain.Page[dto.CategoryDTO], error)
	FindByID(ctx context.Context, id int64) (dto.CategoryDTO, error)
	Insert(ctx context.Context, req dto.CategoryRequest) (dto.CategoryDTO, error)
	Update(ctx context.Context, id int64, req dto.CategoryRequest) (dto.CategoryDTO, error)
	Delete(ctx context.Context, id int64) error
}

type categoryUseCase struct {
	store domain.Store
	log   *logrus.Logger
}

func NewCategoryUseCase(store domain.Store, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		store: store,
		log:   logger,
	}
}

func (uc *categoryUseCase) FindAllPaged(ctx context.Context, page domain.PageRequest) (domain.Page[dto.CategoryDTO], error) {
	if err := page.Validate(); err != nil {
		uc.log.Warnf("Use Case: Invalid page request (page: %d, size: %d): %v", page.Page, page.Size, err)
		return domain.Page[dto.CategoryDTO]{}, err
	}

	var result domain.Page[domain.Category]
	err := uc.store.WithinTransaction(ctx, func(tx domain.Store) error {
		var err error
		result, err = tx.Categories().FindAll(ctx, page)
		return err
	})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return domain.Page[dto.CategoryDTO]{}, fmt.Errorf("could not retrieve categories: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d categories", result.NumberOfElements)
	return domain.MapPage(result, dto.NewCategoryDTO), nil
}

func (uc *categoryUseCase) FindByID(ctx context.Context, id int64) (dto.CategoryDTO, error) {
	if err := validateID(id); err != nil {
		uc.log.Warnf("Use Case: Attempted to get category with invalid ID: %d", id)
		return dto.CategoryDTO{}, err
	}

	found, err := uc.store.Categories().FindByID(ctx, id)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to get category ID %d: %v", id, err)
		return dto.CategoryDTO{}, err
	}
	category, ok := found.Get()
	if !ok {
		uc.log.Warnf("Use Case: Category ID %d not found", id)
		return dto.CategoryDTO{}, notFound(id)
	}
	return dto.NewCategoryDTO(category), nil
}

func (uc *categoryUseCase) Insert(ctx context.Context, req dto.CategoryRequest) (dto.CategoryDTO, error) {
	if err := validation.Struct(req); err != nil {
		uc.log.Warnf("Use Case: Rejected category payload: %v", err)
		return dto.CategoryDTO{}, err
	}

	uc.log.Infof("Use Case: Attempting to create category with name '%s'", req.Name)
	category := domain.Category{Name: req.Name}
	err := uc.store.WithinTransaction(ctx, func(tx domain.Store) error {
		_, err := tx.Categories().Save(ctx, &category)
		return err
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to create category '%s': %v", req.Name, err)
		return dto.CategoryDTO{}, translateStorageError(err, "category", category.ID)
	}

	uc.log.Infof("Use Case: Category '%s' created successfully with ID %d", category.Name, category.ID)
	return dto.NewCategoryDTO(category), nil
}

func (uc *categoryUseCase) Update(ctx context.Context, id int64, req dto.CategoryRequest) (dto.CategoryDTO, error) {
	if err := validateID(id); err != nil {
		uc.log.Warnf("Use Case: Attempted update with invalid category ID: %d", id)
		return dto.CategoryDTO{}, err
	}
	if err := validation.Struct(req); err != nil {
		uc.log.Warnf("Use Case: Rejected category payload for ID %d: %v", id, err)
		return dto.CategoryDTO{}, err
	}

	uc.log.Infof("Use Case: Attempting to update category ID %d", id)
	category := domain.Category{ID: id, Name: req.Name}
	err := uc.store.WithinTransaction(ctx, func(tx domain.Store) error {
		_, err := tx.Categories().Save(ctx, &category)
		return err
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to update category ID %d: %v", id, err)
		return dto.CategoryDTO{}, translateStorageError(err, "category", id)
	}

	uc.log.Infof("Use Case: Category updated successfully for ID %d", id)
	return dto.NewCategoryDTO(category), nil
}

// Delete removes a category. Categories still referenced by products are kept and
// domain.ErrIntegrityViolation is returned.
func (uc *categoryUseCase) Delete(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		uc.log.Warnf("Use Case: Attempted delete with invalid category ID: %d", id)
		return err
	}

	uc.log.Infof("Use Case: Attempting to delete category ID %d", id)
	err := uc.store.WithinTransaction(ctx, func(tx domain.Store) error {
		return tx.Categories().DeleteByID(ctx, id)
	})
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete category ID %d: %v", id, err)
		return translateStorageError(err, "category", id)
	}

	uc.log.Infof("Use Case: Category deleted successfully for ID %d", id)
	return nil
}
