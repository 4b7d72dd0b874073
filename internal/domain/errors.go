package domain

import (
	"errors"
	"strings"
)

// Storage-level error kinds, returned by repositories.
var (
	// ErrEmptyResult reports that a statement expected to affect a row affected none.
	ErrEmptyResult        = errors.New("incorrect result size: expected 1, actual 0")
	ErrReferenceViolation = errors.New("foreign key constraint violation")
	ErrDuplicateKey       = errors.New("unique constraint violation")
)

// Domain-level error kinds, returned by use cases. Callers of a use case never see the
// storage-level kinds above.
var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrIntegrityViolation = errors.New("integrity violation")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidSort        = errors.New("invalid sort")
)

type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError carries the field errors of a rejected payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+" "+f.Error)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
