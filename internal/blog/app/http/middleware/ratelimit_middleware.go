package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkwell/internal/blog/adapters/http/response"
	"inkwell/internal/blog/ports/stores"
	"inkwell/pkg/logger"
)

// Константы для логирования.
const (
	LogRateLimitMiddleware = "rate limit middleware"

	ErrorRateLimitStore = "rate limit store failure"
	MsgRateLimited      = "rate limit exceeded"

	MsgTooManyRequests = "too many requests, please try again later"
)

// clientIdentifier возвращает ключ rate limiter для запроса: первый адрес
// из X-Forwarded-For, иначе адрес сокета. Заголовок подделываем без
// доверенного прокси, границы лимита это осознанно не усиливает.
func clientIdentifier(ctx fiber.Ctx) string {
	if forwarded := ctx.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if identifier := strings.TrimSpace(first); identifier != "" {
			return identifier
		}
	}
	return ctx.IP()
}

// NewRateLimitMiddleware создает промежуточное ПО лимита запросов с
// фиксированным окном. Ключ окна - идентификатор клиента, без
// разделения по маршрутам. Отказ хранилища пропускает запрос:
// деградация лимитера не должна ронять трафик.
func NewRateLimitMiddleware(store stores.RateLimitStore, limit int, window time.Duration) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "rate_limit"))
		log.Debug(requestCtx, LogRateLimitMiddleware)

		identifier := clientIdentifier(ctx)

		allowed, err := store.Allow(requestCtx, identifier, limit, window)
		if err != nil {
			log.Error(requestCtx, ErrorRateLimitStore, zap.Error(err))
			return ctx.Next()
		}

		if !allowed {
			log.Warn(requestCtx, MsgRateLimited,
				zap.String("identifier", identifier),
				zap.String("path", ctx.Path()),
			)
			return response.Error(ctx, fiber.StatusTooManyRequests, MsgTooManyRequests)
		}

		return ctx.Next()
	}
}
