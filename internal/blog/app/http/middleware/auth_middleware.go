// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkwell/internal/blog/adapters/http/response"
	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/ports/services"
	"inkwell/internal/blog/ports/stores"
	"inkwell/pkg/logger"
)

// Ключи Locals, через которые обработчики получают результат аутентификации.
const (
	PrincipalKey   = "principal"
	AccessTokenKey = "accessToken"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorTokenRejected      = "access token rejected"
	ErrorTokenRevoked       = "revoked token presented"
	ErrorRevocationCheck    = "failed to check token revocation"
	ErrorInsufficientRole   = "insufficient role for operation"

	// Тексты ошибок клиенту: 401 за отсутствие личности, 403 за
	// недостаток прав уже установленной личности.
	MsgAuthenticationRequired = "authentication required"
	MsgPermissionDenied       = "permission denied"
)

// bearerToken извлекает токен из заголовка Authorization.
func bearerToken(ctx fiber.Ctx) (string, string) {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return "", ErrorNoAuthHeader
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", ErrorInvalidTokenFormat
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", ErrorInvalidTokenFormat
	}
	return token, ""
}

// NewAuthMiddleware создает промежуточное ПО аутентификации: проверяет
// подпись и срок действия access токена и кладет личность в Locals.
// Любая ошибка проверки означает отказ с кодом 401.
func NewAuthMiddleware(tokenSvc services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		token, errMsg := bearerToken(ctx)
		if errMsg != "" {
			log.Debug(requestCtx, errMsg)
			return response.Error(ctx, fiber.StatusUnauthorized, MsgAuthenticationRequired)
		}

		principal, err := tokenSvc.VerifyAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorTokenRejected, zap.Error(err))
			return response.Error(ctx, fiber.StatusUnauthorized, MsgAuthenticationRequired)
		}

		ctx.Locals(PrincipalKey, principal)
		ctx.Locals(AccessTokenKey, token)

		return ctx.Next()
	}
}

// NewSecureAuthMiddleware дополняет аутентификацию проверкой отзыва:
// токен, попавший в хранилище отозванных после logout, отклоняется,
// даже если подпись и срок действия в порядке. Ошибка самого хранилища
// тоже означает отказ, проверка закрыта по умолчанию.
func NewSecureAuthMiddleware(tokenSvc services.TokenService, revocations stores.RevocationStore) fiber.Handler {
	authenticate := NewAuthMiddleware(tokenSvc)

	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth_secure"))

		token, errMsg := bearerToken(ctx)
		if errMsg != "" {
			log.Debug(requestCtx, errMsg)
			return response.Error(ctx, fiber.StatusUnauthorized, MsgAuthenticationRequired)
		}

		revoked, err := revocations.IsRevoked(requestCtx, token)
		if err != nil {
			log.Error(requestCtx, ErrorRevocationCheck, zap.Error(err))
			return response.Error(ctx, fiber.StatusUnauthorized, MsgAuthenticationRequired)
		}
		if revoked {
			log.Debug(requestCtx, ErrorTokenRevoked)
			return response.Error(ctx, fiber.StatusUnauthorized, MsgAuthenticationRequired)
		}

		return authenticate(ctx)
	}
}

// NewRoleMiddleware пропускает только пользователей с одной из перечисленных
// ролей. Ставится после аутентификации: без личности в Locals отвечает 401,
// с личностью без нужной роли - 403.
func NewRoleMiddleware(roles ...entities.Role) fiber.Handler {
	allowed := make(map[entities.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "role"))

		principal, ok := ctx.Locals(PrincipalKey).(*entities.Principal)
		if !ok || principal == nil {
			log.Debug(requestCtx, MsgAuthenticationRequired)
			return response.Error(ctx, fiber.StatusUnauthorized, MsgAuthenticationRequired)
		}

		if _, ok := allowed[principal.Role]; !ok {
			log.Debug(requestCtx, ErrorInsufficientRole,
				zap.String("userID", principal.ID),
				zap.String("role", string(principal.Role)),
			)
			return response.Error(ctx, fiber.StatusForbidden, MsgPermissionDenied)
		}

		return ctx.Next()
	}
}
