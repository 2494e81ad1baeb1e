package dto

import (
	"time"

	"github.com/yukikurage/onestep-api/internal/models"
)

// CreateCategoryRequest is the body of POST /api/categories
type CreateCategoryRequest struct {
	Title *string `json:"title"`
	Color int16   `json:"color"`
}

// UpdateCategoryRequest is the body of PATCH /api/categories/:id
type UpdateCategoryRequest struct {
	Title Optional[string] `json:"title"`
	Color *int16           `json:"color"`
	Rank  *RankMoveRequest `json:"rank"`
}

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Title     *string   `json:"title"`
	Color     int16     `json:"color"`
	Rank      string    `json:"rank"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		UserID:    category.UserID,
		Title:     category.Title,
		Color:     category.Color,
		Rank:      category.Rank,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToCategoryDTOs converts a slice of categories
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		out[i] = ToCategoryDTO(category)
	}
	return out
}
