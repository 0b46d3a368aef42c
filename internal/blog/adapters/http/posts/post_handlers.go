// Package posts содержит HTTP обработчики постов блога.
package posts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkwell/internal/blog/adapters/http/response"
	"inkwell/internal/blog/app/dto"
	"inkwell/internal/blog/app/http/middleware"
	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/ports/api"
	"inkwell/internal/blog/ports/repositories"
	"inkwell/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreatePost = "post handler: create"
	LogHandlerGetPost    = "post handler: get"
	LogHandlerListPosts  = "post handler: list"
	LogHandlerUpdatePost = "post handler: update"
	LogHandlerDeletePost = "post handler: delete"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"

	MsgPostDeleted = "post deleted successfully"
)

// Handler содержит HTTP обработчики постов.
type Handler struct {
	postUseCase api.PostUseCase
}

// NewHandler создает новый экземпляр обработчика постов.
func NewHandler(postUseCase api.PostUseCase) *Handler {
	return &Handler{postUseCase: postUseCase}
}

// validationError сопоставляет доменные ошибки валидации поста коду 400.
func validationError(err error) bool {
	return errors.Is(err, entities.ErrEmptyTitle) ||
		errors.Is(err, entities.ErrEmptyContent) ||
		errors.Is(err, entities.ErrSlugTooShort) ||
		errors.Is(err, entities.ErrInvalidSlug) ||
		errors.Is(err, entities.ErrInvalidPostStatus)
}

// CreatePost обрабатывает запрос на создание поста.
func (h *Handler) CreatePost(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreatePost)

	principal, ok := ctx.Locals(middleware.PrincipalKey).(*entities.Principal)
	if !ok || principal == nil {
		return response.Error(ctx, http.StatusUnauthorized, middleware.MsgAuthenticationRequired)
	}

	var req dto.PostRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	post := req.ToEntity()
	post.AuthorID = principal.ID

	created, err := h.postUseCase.CreatePost(requestCtx, post)
	if err != nil {
		switch {
		case validationError(err):
			log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
			return response.Error(ctx, http.StatusBadRequest, errors.Unwrap(err).Error())
		case errors.Is(err, entities.ErrPostSlugTaken):
			log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return response.Error(ctx, http.StatusConflict, entities.ErrPostSlugTaken.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusCreated, dto.NewPostResponse(created))
}

// GetPost обрабатывает запрос на получение поста по slug.
func (h *Handler) GetPost(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetPost)

	slug := ctx.Params("slug")

	post, err := h.postUseCase.GetPost(requestCtx, slug)
	if err != nil {
		if errors.Is(err, entities.ErrPostNotFound) {
			log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return response.Error(ctx, http.StatusNotFound, entities.ErrPostNotFound.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusOK, dto.NewPostResponse(post))
}

// ListPosts обрабатывает запрос на список опубликованных постов.
func (h *Handler) ListPosts(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListPosts)

	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))

	filter := repositories.PostFilter{
		Page:     page,
		Limit:    limit,
		Search:   ctx.Query("search"),
		SortBy:   ctx.Query("sort_by", "published_at"),
		SortDesc: ctx.Query("order", "desc") != "asc",
	}

	posts, total, err := h.postUseCase.ListPosts(requestCtx, filter)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusOK,
		dto.NewPostListResponse(posts, total, filter.Page, filter.Limit))
}

// UpdatePost обрабатывает запрос на обновление поста.
func (h *Handler) UpdatePost(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdatePost)

	slug := ctx.Params("slug")

	var req dto.PostRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	updated, err := h.postUseCase.UpdatePost(requestCtx, slug, req.ToEntity())
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrPostNotFound):
			log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return response.Error(ctx, http.StatusNotFound, entities.ErrPostNotFound.Error())
		case validationError(err):
			log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
			return response.Error(ctx, http.StatusBadRequest, errors.Unwrap(err).Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusOK, dto.NewPostResponse(updated))
}

// DeletePost обрабатывает запрос на удаление поста.
func (h *Handler) DeletePost(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeletePost)

	slug := ctx.Params("slug")

	if err := h.postUseCase.DeletePost(requestCtx, slug); err != nil {
		if errors.Is(err, entities.ErrPostNotFound) {
			log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return response.Error(ctx, http.StatusNotFound, entities.ErrPostNotFound.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Message(ctx, http.StatusOK, MsgPostDeleted)
}
