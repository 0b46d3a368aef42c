package entities

import (
	"errors"
	"time"
)

// Ошибки домена категорий.
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategorySlugTaken = errors.New("category with this slug already exists")
	ErrInvalidSlug       = errors.New("slug may contain only lowercase letters, digits and hyphens")
	ErrInvalidColor      = errors.New("color must be a Tailwind background class")
)

// Category представляет рубрику блога.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
