package repositories

import (
	"context"

	"inkwell/internal/blog/domain/entities"
)

// TagRepository определяет интерфейс для операций с тегами.
type TagRepository interface {
	Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error)

	List(ctx context.Context) ([]*entities.Tag, error)

	Delete(ctx context.Context, slug string) error
}
