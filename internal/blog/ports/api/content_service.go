package api

import (
	"context"

	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/ports/repositories"
)

// PostUseCase определяет порт для операций с постами.
type PostUseCase interface {
	CreatePost(ctx context.Context, post *entities.Post) (*entities.Post, error)

	GetPost(ctx context.Context, slug string) (*entities.Post, error)

	ListPosts(ctx context.Context, filter repositories.PostFilter) ([]*entities.Post, int, error)

	UpdatePost(ctx context.Context, slug string, post *entities.Post) (*entities.Post, error)

	DeletePost(ctx context.Context, slug string) error
}

// CategoryUseCase определяет порт для операций с категориями.
type CategoryUseCase interface {
	CreateCategory(ctx context.Context, category *entities.Category) (*entities.Category, error)

	ListCategories(ctx context.Context) ([]*entities.Category, error)

	DeleteCategory(ctx context.Context, slug string) error
}

// TagUseCase определяет порт для операций с тегами.
type TagUseCase interface {
	CreateTag(ctx context.Context, tag *entities.Tag) (*entities.Tag, error)

	ListTags(ctx context.Context) ([]*entities.Tag, error)

	DeleteTag(ctx context.Context, slug string) error
}
