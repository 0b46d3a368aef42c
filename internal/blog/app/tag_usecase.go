package app

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/ports/api"
	"inkwell/internal/blog/ports/repositories"
	"inkwell/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodCreateTag = "CreateTag"
	methodListTags  = "ListTags"
	methodDeleteTag = "DeleteTag"

	msgCreatingTag   = "creating tag"
	msgTagCreated    = "tag created successfully"
	msgListingTags   = "listing tags"
	msgDeletingTag   = "deleting tag"
	msgTagDeleted    = "tag deleted successfully"
	msgErrInvalidTag = "invalid tag payload"

	msgErrCreatingTag = "failed to create tag"
	msgErrListingTags = "failed to list tags"
	msgErrDeletingTag = "failed to delete tag"

	errCtxValidatingTag = "validating tag"
	errCtxCreatingTag   = "creating tag"
	errCtxListingTags   = "listing tags"
	errCtxDeletingTag   = "deleting tag"
)

// TagUseCaseImpl реализует интерфейс TagUseCase.
type TagUseCaseImpl struct {
	tagRepo repositories.TagRepository
}

// NewTagUseCase создает новый экземпляр сервиса тегов.
func NewTagUseCase(tagRepo repositories.TagRepository) api.TagUseCase {
	return &TagUseCaseImpl{tagRepo: tagRepo}
}

// CreateTag создает тег. Пустой slug выводится из имени.
func (t *TagUseCaseImpl) CreateTag(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateTag), zap.String("slug", tag.Slug))
	log.Debug(ctx, msgCreatingTag)

	if strings.TrimSpace(tag.Name) == "" {
		log.Debug(ctx, msgErrInvalidTag)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTag, entities.ErrEmptyName)
	}
	if tag.Slug == "" {
		tag.Slug = Slugify(tag.Name)
	}
	if !slugPattern.MatchString(tag.Slug) {
		log.Debug(ctx, msgErrInvalidTag)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTag, entities.ErrInvalidSlug)
	}

	created, err := t.tagRepo.Create(ctx, tag)
	if err != nil {
		log.Error(ctx, msgErrCreatingTag, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingTag, err)
	}

	log.Info(ctx, msgTagCreated, zap.String("tagID", created.ID))
	return created, nil
}

// ListTags возвращает все теги.
func (t *TagUseCaseImpl) ListTags(ctx context.Context) ([]*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListTags))
	log.Debug(ctx, msgListingTags)

	tags, err := t.tagRepo.List(ctx)
	if err != nil {
		log.Error(ctx, msgErrListingTags, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingTags, err)
	}

	return tags, nil
}

// DeleteTag удаляет тег по slug.
func (t *TagUseCaseImpl) DeleteTag(ctx context.Context, slug string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteTag), zap.String("slug", slug))
	log.Debug(ctx, msgDeletingTag)

	if err := t.tagRepo.Delete(ctx, slug); err != nil {
		log.Error(ctx, msgErrDeletingTag, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingTag, err)
	}

	log.Info(ctx, msgTagDeleted)
	return nil
}
