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

// Колонки, разрешенные для сортировки списка постов. Значение карты -
// выражение, подставляемое в ORDER BY вместо пользовательского ввода.
var postSortColumns = map[string]string{
	"published_at": "p.published_at",
	"created_at":   "p.created_at",
	"views":        "p.views",
	"likes":        "p.likes",
	"title":        "p.title",
}

const defaultPostSort = "p.published_at"

// Общий SELECT поста со связями: автор, категория и агрегированные теги.
const postSelect = `
        SELECT p.id, p.title, p.slug, p.excerpt, p.content,
               p.author_id, COALESCE(p.category_id::text, ''), p.featured_image, p.featured,
               p.status, p.reading_time, p.views, p.likes,
               p.published_at, p.created_at, p.updated_at,
               u.name,
               COALESCE(c.name, ''), COALESCE(c.slug, ''), COALESCE(c.color, ''),
               COALESCE(tags.slugs, '{}')
        FROM posts p
        JOIN users u ON u.id = p.author_id
        LEFT JOIN categories c ON c.id = p.category_id
        LEFT JOIN LATERAL (
            SELECT array_agg(t.slug ORDER BY t.slug) AS slugs
            FROM post_tags pt
            JOIN tags t ON t.id = pt.tag_id
            WHERE pt.post_id = p.id
        ) tags ON true
    `

// PostRepository реализует интерфейс repositories.PostRepository для работы с Postgres.
type PostRepository struct {
	pool PgxPoolInterface
}

// NewPostRepository создает новый экземпляр репозитория постов.
func NewPostRepository(pool PgxPoolInterface) repositories.PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row pgx.Row) (*entities.Post, error) {
	var post entities.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Content,
		&post.AuthorID,
		&post.CategoryID,
		&post.FeaturedImage,
		&post.Featured,
		&post.Status,
		&post.ReadingTime,
		&post.Views,
		&post.Likes,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.AuthorName,
		&post.CategoryName,
		&post.CategorySlug,
		&post.CategoryColor,
		&post.Tags,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create создает новый пост и привязывает теги по их slug в одной транзакции.
func (r *PostRepository) Create(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "Create"))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "error starting transaction", zap.Error(err))
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
        INSERT INTO posts (title, slug, excerpt, content, author_id, category_id,
                           featured_image, featured, status, reading_time, published_at)
        VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8, $9, $10, $11)
        RETURNING id
    `

	var id string
	err = tx.QueryRow(ctx, query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.AuthorID,
		post.CategoryID,
		post.FeaturedImage,
		post.Featured,
		post.Status,
		post.ReadingTime,
		post.PublishedAt,
	).Scan(&id)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "post slug already exists", zap.String("slug", post.Slug))
			return nil, entities.ErrPostSlugTaken
		}
		log.Error(ctx, "error creating post", zap.Error(err))
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	if err := attachTags(ctx, tx, id, post.Tags); err != nil {
		log.Error(ctx, "error attaching tags", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "error committing transaction", zap.Error(err))
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return r.findByID(ctx, id)
}

// FindBySlug находит пост по slug вместе со связями.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "FindBySlug"))

	post, err := scanPost(r.pool.QueryRow(ctx, postSelect+" WHERE p.slug = $1", slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "post not found", zap.String("slug", slug))
			return nil, entities.ErrPostNotFound
		}
		log.Error(ctx, "error finding post by slug", zap.Error(err))
		return nil, fmt.Errorf("error querying post by slug: %w", err)
	}

	return post, nil
}

// ListPublished возвращает страницу опубликованных постов и общее число
// подходящих записей. Поиск сопоставляет подстроку с заголовком и анонсом.
func (r *PostRepository) ListPublished(ctx context.Context, filter repositories.PostFilter) ([]*entities.Post, int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "ListPublished"))

	where := " WHERE p.status = 'published'"
	args := []interface{}{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.excerpt ILIKE $%d)", len(args), len(args))
	}

	var total int
	countQuery := "SELECT count(*) FROM posts p" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error(ctx, "error counting posts", zap.Error(err))
		return nil, 0, fmt.Errorf("error counting posts: %w", err)
	}

	sortColumn, ok := postSortColumns[filter.SortBy]
	if !ok {
		sortColumn = defaultPostSort
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := postSelect + where +
		fmt.Sprintf(" ORDER BY %s %s NULLS LAST LIMIT $%d OFFSET $%d",
			sortColumn, direction, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error listing posts", zap.Error(err))
		return nil, 0, fmt.Errorf("error listing posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*entities.Post, 0, filter.Limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			log.Error(ctx, "error scanning post", zap.Error(err))
			return nil, 0, fmt.Errorf("error scanning post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating posts", zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, total, nil
}

// Update обновляет пост и заново привязывает теги.
func (r *PostRepository) Update(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "Update"))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "error starting transaction", zap.Error(err))
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
        UPDATE posts
        SET title = $2, excerpt = $3, content = $4,
            category_id = NULLIF($5, '')::uuid, featured_image = $6, featured = $7,
            status = $8, reading_time = $9, published_at = $10, updated_at = now()
        WHERE slug = $1
        RETURNING id
    `

	var id string
	err = tx.QueryRow(ctx, query,
		post.Slug,
		post.Title,
		post.Excerpt,
		post.Content,
		post.CategoryID,
		post.FeaturedImage,
		post.Featured,
		post.Status,
		post.ReadingTime,
		post.PublishedAt,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "post not found for update", zap.String("slug", post.Slug))
			return nil, entities.ErrPostNotFound
		}
		log.Error(ctx, "error updating post", zap.Error(err))
		return nil, fmt.Errorf("error updating post: %w", err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM post_tags WHERE post_id = $1", id); err != nil {
		log.Error(ctx, "error detaching tags", zap.Error(err))
		return nil, fmt.Errorf("error detaching tags: %w", err)
	}
	if err := attachTags(ctx, tx, id, post.Tags); err != nil {
		log.Error(ctx, "error attaching tags", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "error committing transaction", zap.Error(err))
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return r.findByID(ctx, id)
}

// Delete удаляет пост по slug.
func (r *PostRepository) Delete(ctx context.Context, slug string) error {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, "DELETE FROM posts WHERE slug = $1", slug)
	if err != nil {
		log.Error(ctx, "error deleting post", zap.Error(err))
		return fmt.Errorf("error deleting post: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "post not found for deletion", zap.String("slug", slug))
		return entities.ErrPostNotFound
	}

	return nil
}

func (r *PostRepository) findByID(ctx context.Context, id string) (*entities.Post, error) {
	post, err := scanPost(r.pool.QueryRow(ctx, postSelect+" WHERE p.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrPostNotFound
		}
		return nil, fmt.Errorf("error querying post by id: %w", err)
	}
	return post, nil
}

// attachTags привязывает к посту теги по их slug. Неизвестные slug
// молча пропускаются.
func attachTags(ctx context.Context, tx pgx.Tx, postID string, tagSlugs []string) error {
	if len(tagSlugs) == 0 {
		return nil
	}

	query := `
        INSERT INTO post_tags (post_id, tag_id)
        SELECT $1, id FROM tags WHERE slug = ANY($2)
        ON CONFLICT DO NOTHING
    `
	if _, err := tx.Exec(ctx, query, postID, tagSlugs); err != nil {
		return fmt.Errorf("error attaching tags: %w", err)
	}
	return nil
}
