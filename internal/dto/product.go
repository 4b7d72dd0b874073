package dto

import (
	"time"

	"catalog_service/internal/domain"

	"github.com/shopspring/decimal"
)

// ProductDTO is the external view of a product.
type ProductDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImgURL      string          `json:"imgUrl"`
	Date        time.Time       `json:"date"`
	Categories  []CategoryDTO   `json:"categories"`
}

func NewProductDTO(p domain.Product) ProductDTO {
	categories := make([]CategoryDTO, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, NewCategoryDTO(c))
	}
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImgURL:      p.ImgURL,
		Date:        p.Date,
		Categories:  categories,
	}
}

type CategoryRef struct {
	ID int64 `json:"id" validate:"gt=0"`
}

// ProductRequest is the body of product insert and update calls.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,min=5,max=60"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	ImgURL      string          `json:"imgUrl" validate:"omitempty,url"`
	Date        time.Time       `json:"date" validate:"required,pastorpresent"`
	Categories  []CategoryRef   `json:"categories" validate:"dive"`
}

// CategoryIDs returns the referenced category ids without duplicates, in request order.
func (r ProductRequest) CategoryIDs() []int64 {
	seen := make(map[int64]struct{}, len(r.Categories))
	ids := make([]int64, 0, len(r.Categories))
	for _, c := range r.Categories {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		ids = append(ids, c.ID)
	}
	return ids
}
