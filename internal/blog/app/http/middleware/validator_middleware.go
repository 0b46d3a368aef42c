package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkwell/internal/blog/adapters/http/response"
	"inkwell/pkg/logger"
)

// Пороговые значения валидатора запросов.
const (
	// Минимальная длина осмысленного User-Agent.
	minUserAgentLength = 5

	// Максимальный размер тела запроса, 10 МиБ.
	maxBodyBytes = 10 << 20
)

// Константы для логирования.
const (
	LogValidatorMiddleware = "request validator middleware"

	WarnMissingUserAgent    = "request without user agent"
	WarnSuspiciousUserAgent = "suspicious user agent on read request"

	MsgInvalidUserAgent = "invalid user agent"
	MsgBodyTooLarge     = "request body too large"
	MsgJSONRequired     = "content-type must be application/json"
)

// mutatingMethod сообщает, меняет ли метод состояние сервера.
func mutatingMethod(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	}
	return false
}

// bodyMethod сообщает, несет ли метод тело с полезной нагрузкой.
func bodyMethod(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
		return true
	}
	return false
}

// NewValidatorMiddleware создает промежуточное ПО гигиены запросов.
// Чтения проверяются мягко: подозрительный User-Agent только
// логируется. Мутации проверяются жестко: короткий User-Agent,
// Content-Type без application/json (даже при пустом теле) или тело
// больше лимита блокируют запрос.
func NewValidatorMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		method := ctx.Method()
		log := logger.Log(requestCtx).With(
			zap.String("middleware", "validator"),
			zap.String("method", method),
			zap.String("path", ctx.Path()),
		)
		log.Debug(requestCtx, LogValidatorMiddleware)

		userAgent := ctx.Get("User-Agent")
		switch {
		case userAgent == "":
			// Отсутствие заголовка допустимо, но попадает в журнал.
			log.Warn(requestCtx, WarnMissingUserAgent, zap.String("ip", ctx.IP()))
		case len(userAgent) < minUserAgentLength:
			if mutatingMethod(method) {
				log.Warn(requestCtx, MsgInvalidUserAgent, zap.String("userAgent", userAgent))
				return response.Error(ctx, fiber.StatusBadRequest, MsgInvalidUserAgent)
			}
			log.Warn(requestCtx, WarnSuspiciousUserAgent, zap.String("userAgent", userAgent))
		}

		if bodyMethod(method) {
			if len(ctx.Body()) > maxBodyBytes {
				return response.Error(ctx, fiber.StatusRequestEntityTooLarge, MsgBodyTooLarge)
			}

			contentType := ctx.Get("Content-Type")
			if !strings.Contains(contentType, fiber.MIMEApplicationJSON) {
				log.Warn(requestCtx, MsgJSONRequired, zap.String("contentType", contentType))
				return response.Error(ctx, fiber.StatusBadRequest, MsgJSONRequired)
			}
		}

		return ctx.Next()
	}
}
