package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/ports/repositories"
	"inkwell/pkg/logger"
)

// CategoryRepository реализует интерфейс repositories.CategoryRepository для работы с Postgres.
type CategoryRepository struct {
	pool PgxPoolInterface
}

// NewCategoryRepository создает новый экземпляр репозитория категорий.
func NewCategoryRepository(pool PgxPoolInterface) repositories.CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create создает новую категорию.
func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("repository", "category"), zap.String("method", "Create"))

	query := `
        INSERT INTO categories (name, slug, description, color)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, slug, description, color, created_at, updated_at
    `

	var created entities.Category
	err := r.pool.QueryRow(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.Color,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Slug,
		&created.Description,
		&created.Color,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "category slug already exists", zap.String("slug", category.Slug))
			return nil, entities.ErrCategorySlugTaken
		}
		log.Error(ctx, "error creating category", zap.Error(err))
		return nil, fmt.Errorf("error creating category: %w", err)
	}

	return &created, nil
}

// FindBySlug находит категорию по slug.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("repository", "category"), zap.String("method", "FindBySlug"))

	query := `
        SELECT id, name, slug, description, color, created_at, updated_at
        FROM categories
        WHERE slug = $1
    `

	var category entities.Category
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.Color,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "category not found", zap.String("slug", slug))
			return nil, entities.ErrCategoryNotFound
		}
		log.Error(ctx, "error finding category by slug", zap.Error(err))
		return nil, fmt.Errorf("error querying category by slug: %w", err)
	}

	return &category, nil
}

// List возвращает все категории в алфавитном порядке.
func (r *CategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("repository", "category"), zap.String("method", "List"))

	query := `
        SELECT id, name, slug, description, color, created_at, updated_at
        FROM categories
        ORDER BY name
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing categories", zap.Error(err))
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*entities.Category
	for rows.Next() {
		var category entities.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.Color,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			log.Error(ctx, "error scanning category", zap.Error(err))
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating categories", zap.Error(err))
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Delete удаляет категорию по slug. Посты категории остаются без рубрики.
func (r *CategoryRepository) Delete(ctx context.Context, slug string) error {
	log := logger.Log(ctx).With(zap.String("repository", "category"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE slug = $1", slug)
	if err != nil {
		log.Error(ctx, "error deleting category", zap.Error(err))
		return fmt.Errorf("error deleting category: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "category not found for deletion", zap.String("slug", slug))
		return entities.ErrCategoryNotFound
	}

	return nil
}
