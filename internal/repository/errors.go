package repository

import (
	"errors"
	"fmt"
	"strings"

	"catalog_service/internal/domain"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// translateError maps driver errors onto the storage-level kinds of the domain package.
// Errors it does not recognise are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrReferenceViolation, pqErr.Message)
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, pqErr.Message)
		}
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", domain.ErrReferenceViolation, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrDuplicateKey, err)
	}

	// SQLite reports constraint failures only through the message text.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %s", domain.ErrReferenceViolation, msg)
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, msg)
	}
	return err
}

func orderColumns(sort []domain.SortOrder, columns map[string]string) ([]orderColumn, error) {
	orders := make([]orderColumn, 0, len(sort)+1)
	hasID := false
	for _, s := range sort {
		column, ok := columns[s.Property]
		if !ok {
			return nil, fmt.Errorf("%w: no property %q found", domain.ErrInvalidSort, s.Property)
		}
		if column == "id" {
			hasID = true
		}
		orders = append(orders, orderColumn{name: column, desc: s.Direction == domain.Desc})
	}
	// id breaks ties so that paging over equal keys stays stable.
	if !hasID {
		orders = append(orders, orderColumn{name: "id"})
	}
	return orders, nil
}

type orderColumn struct {
	name string
	desc bool
}

func applyOrder(query *gorm.DB, orders []orderColumn) *gorm.DB {
	for _, o := range orders {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: o.name}, Desc: o.desc})
	}
	return query
}
