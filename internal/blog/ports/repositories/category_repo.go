package repositories

import (
	"context"

	"inkwell/internal/blog/domain/entities"
)

// CategoryRepository определяет интерфейс для операций с категориями.
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) (*entities.Category, error)

	FindBySlug(ctx context.Context, slug string) (*entities.Category, error)

	List(ctx context.Context) ([]*entities.Category, error)

	Delete(ctx context.Context, slug string) error
}
