// Package taxonomy содержит HTTP обработчики категорий и тегов.
package taxonomy

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkwell/internal/blog/adapters/http/response"
	"inkwell/internal/blog/app/dto"
	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/ports/api"
	"inkwell/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreateCategory = "taxonomy handler: create category"
	LogHandlerListCategories = "taxonomy handler: list categories"
	LogHandlerDeleteCategory = "taxonomy handler: delete category"
	LogHandlerCreateTag      = "taxonomy handler: create tag"
	LogHandlerListTags       = "taxonomy handler: list tags"
	LogHandlerDeleteTag      = "taxonomy handler: delete tag"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"

	MsgCategoryDeleted = "category deleted successfully"
	MsgTagDeleted      = "tag deleted successfully"
)

// Handler содержит HTTP обработчики категорий и тегов.
type Handler struct {
	categoryUseCase api.CategoryUseCase
	tagUseCase      api.TagUseCase
}

// NewHandler создает новый экземпляр обработчика категорий и тегов.
func NewHandler(categoryUseCase api.CategoryUseCase, tagUseCase api.TagUseCase) *Handler {
	return &Handler{
		categoryUseCase: categoryUseCase,
		tagUseCase:      tagUseCase,
	}
}

// CreateCategory обрабатывает запрос на создание категории.
func (h *Handler) CreateCategory(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateCategory)

	var req dto.CategoryRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	created, err := h.categoryUseCase.CreateCategory(requestCtx, req.ToEntity())
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrEmptyName),
			errors.Is(err, entities.ErrInvalidSlug),
			errors.Is(err, entities.ErrInvalidColor):
			log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
			return response.Error(ctx, http.StatusBadRequest, errors.Unwrap(err).Error())
		case errors.Is(err, entities.ErrCategorySlugTaken):
			log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return response.Error(ctx, http.StatusConflict, entities.ErrCategorySlugTaken.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusCreated, dto.NewCategoryResponse(created))
}

// ListCategories обрабатывает запрос на список категорий.
func (h *Handler) ListCategories(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListCategories)

	categories, err := h.categoryUseCase.ListCategories(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusOK, dto.NewCategoryListResponse(categories))
}

// DeleteCategory обрабатывает запрос на удаление категории.
func (h *Handler) DeleteCategory(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteCategory)

	slug := ctx.Params("slug")

	if err := h.categoryUseCase.DeleteCategory(requestCtx, slug); err != nil {
		if errors.Is(err, entities.ErrCategoryNotFound) {
			log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return response.Error(ctx, http.StatusNotFound, entities.ErrCategoryNotFound.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Message(ctx, http.StatusOK, MsgCategoryDeleted)
}

// CreateTag обрабатывает запрос на создание тега.
func (h *Handler) CreateTag(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateTag)

	var req dto.TagRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	created, err := h.tagUseCase.CreateTag(requestCtx, req.ToEntity())
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrEmptyName), errors.Is(err, entities.ErrInvalidSlug):
			log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
			return response.Error(ctx, http.StatusBadRequest, errors.Unwrap(err).Error())
		case errors.Is(err, entities.ErrTagSlugTaken):
			log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return response.Error(ctx, http.StatusConflict, entities.ErrTagSlugTaken.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusCreated, dto.NewTagResponse(created))
}

// ListTags обрабатывает запрос на список тегов.
func (h *Handler) ListTags(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListTags)

	tags, err := h.tagUseCase.ListTags(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusOK, dto.NewTagListResponse(tags))
}

// DeleteTag обрабатывает запрос на удаление тега.
func (h *Handler) DeleteTag(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteTag)

	slug := ctx.Params("slug")

	if err := h.tagUseCase.DeleteTag(requestCtx, slug); err != nil {
		if errors.Is(err, entities.ErrTagNotFound) {
			log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return response.Error(ctx, http.StatusNotFound, entities.ErrTagNotFound.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Message(ctx, http.StatusOK, MsgTagDeleted)
}
