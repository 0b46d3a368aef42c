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
	methodCreateCategory = "CreateCategory"
	methodListCategories = "ListCategories"
	methodDeleteCategory = "DeleteCategory"

	msgCreatingCategory   = "creating category"
	msgCategoryCreated    = "category created successfully"
	msgListingCategories  = "listing categories"
	msgDeletingCategory   = "deleting category"
	msgCategoryDeleted    = "category deleted successfully"
	msgErrInvalidCategory = "invalid category payload"

	msgErrCreatingCategory  = "failed to create category"
	msgErrListingCategories = "failed to list categories"
	msgErrDeletingCategory  = "failed to delete category"

	errCtxValidatingCategory = "validating category"
	errCtxCreatingCategory   = "creating category"
	errCtxListingCategories  = "listing categories"
	errCtxDeletingCategory   = "deleting category"
)

// Цвет категории хранится как класс фона Tailwind.
const colorClassPrefix = "bg-"

const defaultCategoryColor = "bg-gray-500"

// CategoryUseCaseImpl реализует интерфейс CategoryUseCase.
type CategoryUseCaseImpl struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryUseCase создает новый экземпляр сервиса категорий.
func NewCategoryUseCase(categoryRepo repositories.CategoryRepository) api.CategoryUseCase {
	return &CategoryUseCaseImpl{categoryRepo: categoryRepo}
}

// CreateCategory создает категорию. Пустой slug выводится из имени.
func (c *CategoryUseCaseImpl) CreateCategory(ctx context.Context, category *entities.Category) (*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateCategory), zap.String("slug", category.Slug))
	log.Debug(ctx, msgCreatingCategory)

	if err := prepareCategory(category); err != nil {
		log.Debug(ctx, msgErrInvalidCategory, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingCategory, err)
	}

	created, err := c.categoryRepo.Create(ctx, category)
	if err != nil {
		log.Error(ctx, msgErrCreatingCategory, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingCategory, err)
	}

	log.Info(ctx, msgCategoryCreated, zap.String("categoryID", created.ID))
	return created, nil
}

// ListCategories возвращает все категории.
func (c *CategoryUseCaseImpl) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListCategories))
	log.Debug(ctx, msgListingCategories)

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		log.Error(ctx, msgErrListingCategories, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingCategories, err)
	}

	return categories, nil
}

// DeleteCategory удаляет категорию по slug.
func (c *CategoryUseCaseImpl) DeleteCategory(ctx context.Context, slug string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteCategory), zap.String("slug", slug))
	log.Debug(ctx, msgDeletingCategory)

	if err := c.categoryRepo.Delete(ctx, slug); err != nil {
		log.Error(ctx, msgErrDeletingCategory, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingCategory, err)
	}

	log.Info(ctx, msgCategoryDeleted)
	return nil
}

// prepareCategory валидирует категорию и заполняет значения по умолчанию.
func prepareCategory(category *entities.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return entities.ErrEmptyName
	}

	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	if !slugPattern.MatchString(category.Slug) {
		return entities.ErrInvalidSlug
	}

	if category.Color == "" {
		category.Color = defaultCategoryColor
	}
	if !strings.HasPrefix(category.Color, colorClassPrefix) || strings.ContainsAny(category.Color, " \t<>\"'") {
		return entities.ErrInvalidColor
	}

	return nil
}
