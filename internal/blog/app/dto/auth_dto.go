// Package dto содержит объекты передачи данных HTTP API блога.
package dto

import (
	"time"

	"inkwell/internal/blog/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest содержит данные для обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest содержит данные для выхода пользователя.
// Refresh токен не обязателен: без него отзывается только access токен.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthUser содержит публичные данные пользователя в ответах аутентификации.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// TokenResponse содержит данные о токенах.
type TokenResponse struct {
	User         AuthUser  `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// NewTokenResponse собирает ответ из пары токенов.
func NewTokenResponse(pair *services.TokenPair) *TokenResponse {
	return &TokenResponse{
		User: AuthUser{
			ID:    pair.Principal.ID,
			Email: pair.Principal.Email,
			Name:  pair.Principal.Name,
			Role:  string(pair.Principal.Role),
		},
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
}
