package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/blog/app/http/middleware"
)

func newValidatorApp() *fiber.App {
	app := fiber.New(fiber.Config{BodyLimit: 12 << 20})
	app.Use(middleware.NewValidatorMiddleware())
	app.Get("/posts", okHandler)
	app.Post("/posts", okHandler)
	return app
}

func TestValidatorMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		userAgent      string
		contentType    string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "чтение с нормальным User-Agent",
			method:         http.MethodGet,
			userAgent:      "Mozilla/5.0",
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "чтение без User-Agent проходит с предупреждением",
			method:         http.MethodGet,
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "чтение с коротким User-Agent проходит",
			method:         http.MethodGet,
			userAgent:      "curl",
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "мутация с коротким User-Agent блокируется",
			method:         http.MethodPost,
			userAgent:      "bot",
			contentType:    fiber.MIMEApplicationJSON,
			body:           `{"title":"x"}`,
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  middleware.MsgInvalidUserAgent,
		},
		{
			name:           "мутация без User-Agent проходит",
			method:         http.MethodPost,
			contentType:    fiber.MIMEApplicationJSON,
			body:           `{"title":"x"}`,
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "мутация с телом без JSON блокируется",
			method:         http.MethodPost,
			userAgent:      "Mozilla/5.0",
			contentType:    fiber.MIMETextPlain,
			body:           "title=x",
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  middleware.MsgJSONRequired,
		},
		{
			name:           "мутация с JSON телом проходит",
			method:         http.MethodPost,
			userAgent:      "Mozilla/5.0",
			contentType:    fiber.MIMEApplicationJSON,
			body:           `{"title":"x"}`,
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "мутация без тела все равно требует Content-Type",
			method:         http.MethodPost,
			userAgent:      "Mozilla/5.0",
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  middleware.MsgJSONRequired,
		},
		{
			name:           "мутация без тела с JSON Content-Type проходит",
			method:         http.MethodPost,
			userAgent:      "Mozilla/5.0",
			contentType:    fiber.MIMEApplicationJSON,
			expectedStatus: fiber.StatusOK,
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			app := newValidatorApp()

			var body *strings.Reader
			if ttt.body != "" {
				body = strings.NewReader(ttt.body)
			} else {
				body = strings.NewReader("")
			}

			req := httptest.NewRequest(ttt.method, "/posts", body)
			if ttt.userAgent != "" {
				req.Header.Set("User-Agent", ttt.userAgent)
			}
			if ttt.contentType != "" {
				req.Header.Set("Content-Type", ttt.contentType)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, ttt.expectedStatus, resp.StatusCode)

			if ttt.expectedError != "" {
				envelope := decodeEnvelope(t, resp)
				assert.Equal(t, ttt.expectedError, envelope.Error)
			}
		})
	}
}

func TestValidatorMiddlewareRejectsHugeBody(t *testing.T) {
	app := newValidatorApp()

	huge := strings.Repeat("a", (10<<20)+1)
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"pad":"`+huge+`"}`))
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

// Для чтений лимит тела не применяется: проверка остается мягкой.
func TestValidatorMiddlewareIgnoresHugeBodyOnRead(t *testing.T) {
	app := newValidatorApp()

	huge := strings.Repeat("a", (10<<20)+1)
	req := httptest.NewRequest(http.MethodGet, "/posts", strings.NewReader(huge))
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
