package domain

import "context"

// Store groups the repositories that share one database session.
type Store interface {
	Products() ProductRepository
	Categories() CategoryRepository

	// WithinTransaction runs fn with a Store bound to a single transaction. The transaction
	// commits when fn returns nil and rolls back when fn returns an error or panics.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}
