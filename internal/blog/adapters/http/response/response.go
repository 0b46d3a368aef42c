// Package response реализует единый конверт ответов HTTP API.
// Каждый ответ несет признак успеха и отметку времени; данные, сообщение
// и текст ошибки присутствуют по ситуации.
package response

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
)

// Envelope - формат всех ответов API.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Success отправляет успешный ответ с данными.
func Success(ctx fiber.Ctx, statusCode int, data interface{}) error {
	if err := ctx.Status(statusCode).JSON(Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Message отправляет успешный ответ с текстовым сообщением без данных.
func Message(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(Envelope{
		Success:   true,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Error отправляет ответ с ошибкой.
func Error(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(Envelope{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
