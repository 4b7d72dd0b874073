package domain

import "context"

type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (Optional[Category], error)
	FindAll(ctx context.Context, page PageRequest) (Page[Category], error)
	FindAllByIDs(ctx context.Context, ids []int64) ([]Category, error)
	Save(ctx context.Context, category *Category) (*Category, error)
	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
