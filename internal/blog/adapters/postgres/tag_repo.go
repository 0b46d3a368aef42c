package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/ports/repositories"
	"inkwell/pkg/logger"
)

// TagRepository реализует интерфейс repositories.TagRepository для работы с Postgres.
type TagRepository struct {
	pool PgxPoolInterface
}

// NewTagRepository создает новый экземпляр репозитория тегов.
func NewTagRepository(pool PgxPoolInterface) repositories.TagRepository {
	return &TagRepository{pool: pool}
}

// Create создает новый тег.
func (r *TagRepository) Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("repository", "tag"), zap.String("method", "Create"))

	query := `
        INSERT INTO tags (name, slug)
        VALUES ($1, $2)
        RETURNING id, name, slug, created_at
    `

	var created entities.Tag
	err := r.pool.QueryRow(ctx, query, tag.Name, tag.Slug).Scan(
		&created.ID,
		&created.Name,
		&created.Slug,
		&created.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "tag slug already exists", zap.String("slug", tag.Slug))
			return nil, entities.ErrTagSlugTaken
		}
		log.Error(ctx, "error creating tag", zap.Error(err))
		return nil, fmt.Errorf("error creating tag: %w", err)
	}

	return &created, nil
}

// List возвращает все теги в алфавитном порядке.
func (r *TagRepository) List(ctx context.Context) ([]*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("repository", "tag"), zap.String("method", "List"))

	query := `
        SELECT id, name, slug, created_at
        FROM tags
        ORDER BY name
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing tags", zap.Error(err))
		return nil, fmt.Errorf("error listing tags: %w", err)
	}
	defer rows.Close()

	var tags []*entities.Tag
	for rows.Next() {
		var tag entities.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
			log.Error(ctx, "error scanning tag", zap.Error(err))
			return nil, fmt.Errorf("error scanning tag: %w", err)
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating tags", zap.Error(err))
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

// Delete удаляет тег по slug вместе со связями в post_tags.
func (r *TagRepository) Delete(ctx context.Context, slug string) error {
	log := logger.Log(ctx).With(zap.String("repository", "tag"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, "DELETE FROM tags WHERE slug = $1", slug)
	if err != nil {
		log.Error(ctx, "error deleting tag", zap.Error(err))
		return fmt.Errorf("error deleting tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "tag not found for deletion", zap.String("slug", slug))
		return entities.ErrTagNotFound
	}

	return nil
}
