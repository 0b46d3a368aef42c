package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/ports/api"
	"inkwell/internal/blog/ports/repositories"
	"inkwell/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodCreatePost = "CreatePost"
	methodGetPost    = "GetPost"
	methodListPosts  = "ListPosts"
	methodUpdatePost = "UpdatePost"
	methodDeletePost = "DeletePost"

	msgCreatingPost   = "creating post"
	msgPostCreated    = "post created successfully"
	msgRequestingPost = "requesting post"
	msgListingPosts   = "listing published posts"
	msgUpdatingPost   = "updating post"
	msgPostUpdated    = "post updated successfully"
	msgDeletingPost   = "deleting post"
	msgPostDeleted    = "post deleted successfully"

	msgErrInvalidPost  = "invalid post payload"
	msgErrCreatingPost = "failed to create post"
	msgErrFindingPost  = "failed to find post"
	msgErrListingPosts = "failed to list posts"
	msgErrUpdatingPost = "failed to update post"
	msgErrDeletingPost = "failed to delete post"

	errCtxValidatingPost = "validating post"
	errCtxCreatingPost   = "creating post"
	errCtxFindingPost    = "finding post"
	errCtxListingPosts   = "listing posts"
	errCtxUpdatingPost   = "updating post"
	errCtxDeletingPost   = "deleting post"
)

// Параметры списка постов по умолчанию и предел размера страницы.
const (
	defaultPostPage  = 1
	defaultPostLimit = 10
	maxPostLimit     = 100

	minSlugLength = 3

	// Скорость чтения для расчета reading_time, слов в минуту.
	wordsPerMinute = 200
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var slugCleanup = regexp.MustCompile(`[^a-z0-9]+`)

// PostUseCaseImpl реализует интерфейс PostUseCase.
type PostUseCaseImpl struct {
	postRepo repositories.PostRepository
}

// NewPostUseCase создает новый экземпляр сервиса постов.
func NewPostUseCase(postRepo repositories.PostRepository) api.PostUseCase {
	return &PostUseCaseImpl{postRepo: postRepo}
}

// CreatePost создает пост. Пустой slug выводится из заголовка, reading_time
// пересчитывается из содержимого, публикация проставляет published_at.
func (p *PostUseCaseImpl) CreatePost(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreatePost), zap.String("slug", post.Slug))
	log.Debug(ctx, msgCreatingPost)

	if err := preparePost(post); err != nil {
		log.Debug(ctx, msgErrInvalidPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPost, err)
	}

	created, err := p.postRepo.Create(ctx, post)
	if err != nil {
		log.Error(ctx, msgErrCreatingPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingPost, err)
	}

	log.Info(ctx, msgPostCreated, zap.String("postID", created.ID))
	return created, nil
}

// GetPost возвращает пост по slug.
func (p *PostUseCaseImpl) GetPost(ctx context.Context, slug string) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetPost), zap.String("slug", slug))
	log.Debug(ctx, msgRequestingPost)

	post, err := p.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		log.Debug(ctx, msgErrFindingPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingPost, err)
	}

	return post, nil
}

// ListPosts возвращает страницу опубликованных постов.
// Некорректные параметры страницы приводятся к значениям по умолчанию.
func (p *PostUseCaseImpl) ListPosts(ctx context.Context, filter repositories.PostFilter) ([]*entities.Post, int, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListPosts))
	log.Debug(ctx, msgListingPosts,
		zap.Int("page", filter.Page),
		zap.Int("limit", filter.Limit),
		zap.String("search", filter.Search),
	)

	if filter.Page < 1 {
		filter.Page = defaultPostPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPostLimit
	}
	if filter.Limit > maxPostLimit {
		filter.Limit = maxPostLimit
	}

	posts, total, err := p.postRepo.ListPublished(ctx, filter)
	if err != nil {
		log.Error(ctx, msgErrListingPosts, zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", errCtxListingPosts, err)
	}

	return posts, total, nil
}

// UpdatePost обновляет пост, найденный по slug. Сам slug не меняется.
func (p *PostUseCaseImpl) UpdatePost(ctx context.Context, slug string, post *entities.Post) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdatePost), zap.String("slug", slug))
	log.Debug(ctx, msgUpdatingPost)

	existing, err := p.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		log.Debug(ctx, msgErrFindingPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingPost, err)
	}

	post.Slug = slug
	post.AuthorID = existing.AuthorID
	post.PublishedAt = existing.PublishedAt

	if err := preparePost(post); err != nil {
		log.Debug(ctx, msgErrInvalidPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPost, err)
	}

	updated, err := p.postRepo.Update(ctx, post)
	if err != nil {
		log.Error(ctx, msgErrUpdatingPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingPost, err)
	}

	log.Info(ctx, msgPostUpdated, zap.String("postID", updated.ID))
	return updated, nil
}

// DeletePost удаляет пост по slug.
func (p *PostUseCaseImpl) DeletePost(ctx context.Context, slug string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeletePost), zap.String("slug", slug))
	log.Debug(ctx, msgDeletingPost)

	if err := p.postRepo.Delete(ctx, slug); err != nil {
		log.Error(ctx, msgErrDeletingPost, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingPost, err)
	}

	log.Info(ctx, msgPostDeleted)
	return nil
}

// preparePost валидирует пост и заполняет вычисляемые поля.
func preparePost(post *entities.Post) error {
	if strings.TrimSpace(post.Title) == "" {
		return entities.ErrEmptyTitle
	}
	if strings.TrimSpace(post.Content) == "" {
		return entities.ErrEmptyContent
	}

	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	if len(post.Slug) < minSlugLength {
		return entities.ErrSlugTooShort
	}
	if !slugPattern.MatchString(post.Slug) {
		return entities.ErrInvalidSlug
	}

	if post.Status == "" {
		post.Status = entities.PostStatusDraft
	}
	if !post.Status.IsValid() {
		return entities.ErrInvalidPostStatus
	}

	post.ReadingTime = readingTime(post.Content)

	if post.Status == entities.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	if post.Status == entities.PostStatusDraft {
		post.PublishedAt = nil
	}

	return nil
}

// readingTime оценивает время чтения в минутах, округляя вверх.
func readingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// Slugify приводит произвольный заголовок к виду slug: строчные латинские
// буквы, цифры и дефисы между словами.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugCleanup.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
