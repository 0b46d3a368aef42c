package repositories

import (
	"context"

	"inkwell/internal/blog/domain/entities"
)

// PostFilter задает параметры выборки списка постов.
type PostFilter struct {
	Page     int
	Limit    int
	Search   string
	SortBy   string
	SortDesc bool
}

// PostRepository определяет интерфейс для операций с постами.
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) (*entities.Post, error)

	FindBySlug(ctx context.Context, slug string) (*entities.Post, error)

	// ListPublished возвращает страницу опубликованных постов и общее
	// количество подходящих записей.
	ListPublished(ctx context.Context, filter PostFilter) ([]*entities.Post, int, error)

	Update(ctx context.Context, post *entities.Post) (*entities.Post, error)

	Delete(ctx context.Context, slug string) error
}
