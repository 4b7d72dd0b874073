package usecase

import (
	"errors"
	"fmt"

	"catalog_service/internal/domain"
)

// translateStorageError turns the storage-level kinds a repository returns into domain-level
// kinds. The storage error is not wrapped, so errors.Is against a storage kind fails on the result.
func translateStorageError(err error, entity string, id int64) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrEmptyResult):
		return fmt.Errorf("%w: Id not found %d", domain.ErrResourceNotFound, id)
	case errors.Is(err, domain.ErrReferenceViolation):
		return fmt.Errorf("%w: %s %d is still referenced", domain.ErrIntegrityViolation, entity, id)
	case errors.Is(err, domain.ErrDuplicateKey):
		return fmt.Errorf("%w: %s with the same name", domain.ErrConflict, entity)
	}
	return err
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", domain.ErrInvalidArgument, id)
	}
	return nil
}

func notFound(id int64) error {
	return fmt.Errorf("%w: Id not found %d", domain.ErrResourceNotFound, id)
}
