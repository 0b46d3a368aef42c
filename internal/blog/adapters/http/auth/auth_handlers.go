// Package auth содержит HTTP обработчики аутентификации.
package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkwell/internal/blog/adapters/http/response"
	"inkwell/internal/blog/app/dto"
	"inkwell/internal/blog/app/http/middleware"
	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/domain/services"
	"inkwell/internal/blog/ports/api"
	"inkwell/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister      = "auth handler: register"
	LogHandlerLogin         = "auth handler: login"
	LogHandlerRefreshTokens = "auth handler: refresh tokens" // #nosec G101 - not a credential
	LogHandlerLogout        = "auth handler: logout"
	LogHandlerGetProfile    = "auth handler: get profile"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"

	MsgFieldsRequired       = "email, name and password are required"
	MsgLoginFieldsRequired  = "email and password are required"
	MsgRefreshTokenRequired = "refresh token is required"
	MsgLoggedOut            = "logged out successfully"
)

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Name == "" || req.Password == "" {
		return response.Error(ctx, http.StatusBadRequest, MsgFieldsRequired)
	}

	pair, err := h.authUseCase.Register(requestCtx, req.Email, req.Name, req.Password)
	if err != nil {
		log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		switch {
		case errors.Is(err, entities.ErrEmailTaken):
			return response.Error(ctx, http.StatusConflict, entities.ErrEmailTaken.Error())
		case errors.Is(err, entities.ErrInvalidEmail),
			errors.Is(err, entities.ErrEmptyName),
			errors.Is(err, entities.ErrNameTooShort),
			errors.Is(err, entities.ErrPasswordTooShort),
			errors.Is(err, entities.ErrPasswordTooWeak):
			return response.Error(ctx, http.StatusBadRequest, errors.Unwrap(err).Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusCreated, dto.NewTokenResponse(pair))
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" {
		return response.Error(ctx, http.StatusBadRequest, MsgLoginFieldsRequired)
	}

	pair, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return response.Error(ctx, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusOK, dto.NewTokenResponse(pair))
}

// RefreshTokens обрабатывает запрос на обновление токенов.
func (h *Handler) RefreshTokens(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefreshTokens)

	var req dto.RefreshRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.RefreshToken == "" {
		return response.Error(ctx, http.StatusBadRequest, MsgRefreshTokenRequired)
	}

	pair, err := h.authUseCase.RefreshTokens(requestCtx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefreshToken) ||
			errors.Is(err, services.ErrTokenRevoked) ||
			errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return response.Error(ctx, http.StatusUnauthorized, services.ErrInvalidRefreshToken.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusOK, dto.NewTokenResponse(pair))
}

// Logout обрабатывает запрос на выход пользователя. Access токен берется
// из результата аутентификации, refresh токен - из тела, если передан.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	accessToken, ok := ctx.Locals(middleware.AccessTokenKey).(string)
	if !ok || accessToken == "" {
		return response.Error(ctx, http.StatusUnauthorized, middleware.MsgAuthenticationRequired)
	}

	// Тело не обязательно: без refresh токена отзывается только access.
	var req dto.LogoutRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.Bind().JSON(&req); err != nil {
			log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
			return response.Error(ctx, http.StatusBadRequest, ErrorInvalidRequest)
		}
	}

	if err := h.authUseCase.Logout(requestCtx, accessToken, req.RefreshToken); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Message(ctx, http.StatusOK, MsgLoggedOut)
}

// GetProfile обрабатывает запрос на получение профиля пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	principal, ok := ctx.Locals(middleware.PrincipalKey).(*entities.Principal)
	if !ok || principal == nil {
		return response.Error(ctx, http.StatusUnauthorized, middleware.MsgAuthenticationRequired)
	}

	user, err := h.userUseCase.GetUserProfile(requestCtx, principal.ID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return response.Error(ctx, http.StatusNotFound, entities.ErrUserNotFound.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, http.StatusInternalServerError, ErrorFailedToServeRequest)
	}

	return response.Success(ctx, http.StatusOK, dto.NewUserProfileResponse(user))
}
