package api

import (
	"context"

	"inkwell/internal/blog/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, email, name, password string) (*services.TokenPair, error)

	Login(ctx context.Context, email, password string) (*services.TokenPair, error)

	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)

	// Logout отзывает предъявленный access токен и, если передан,
	// сопутствующий refresh токен.
	Logout(ctx context.Context, accessToken, refreshToken string) error
}
