package dto

import (
	"time"

	"inkwell/internal/blog/domain/entities"
)

// CategoryRequest содержит данные для создания категории.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// ToEntity преобразует запрос в сущность категории.
func (r *CategoryRequest) ToEntity() *entities.Category {
	return &entities.Category{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Color:       r.Color,
	}
}

// CategoryResponse содержит данные категории в ответах API.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCategoryResponse собирает ответ из сущности категории.
func NewCategoryResponse(category *entities.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Color:       category.Color,
		CreatedAt:   category.CreatedAt,
	}
}

// NewCategoryListResponse собирает список категорий.
func NewCategoryListResponse(categories []*entities.Category) []*CategoryResponse {
	items := make([]*CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, NewCategoryResponse(category))
	}
	return items
}

// TagRequest содержит данные для создания тега.
type TagRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

// ToEntity преобразует запрос в сущность тега.
func (r *TagRequest) ToEntity() *entities.Tag {
	return &entities.Tag{
		Name: r.Name,
		Slug: r.Slug,
	}
}

// TagResponse содержит данные тега в ответах API.
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTagResponse собирает ответ из сущности тега.
func NewTagResponse(tag *entities.Tag) *TagResponse {
	return &TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		Slug:      tag.Slug,
		CreatedAt: tag.CreatedAt,
	}
}

// NewTagListResponse собирает список тегов.
func NewTagListResponse(tags []*entities.Tag) []*TagResponse {
	items := make([]*TagResponse, 0, len(tags))
	for _, tag := range tags {
		items = append(items, NewTagResponse(tag))
	}
	return items
}
