package dto

import "catalog_service/internal/domain"

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewCategoryDTO(c domain.Category) CategoryDTO {
	return CategoryDTO{
		ID:   c.ID,
		Name: c.Name,
	}
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=3,max=60"`
}
