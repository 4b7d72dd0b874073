// domain/product.go
package domain

import "context"

// ProductFilter narrows a product listing. Zero values disable the filter.
type ProductFilter struct {
	Name       string
	CategoryID int64
}

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (Optional[Product], error)
	FindAll(ctx context.Context, filter ProductFilter, page PageRequest) (Page[Product], error)

	// Save inserts the product when its ID is zero and updates it otherwise.
	Save(ctx context.Context, product *Product) (*Product, error)

	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
