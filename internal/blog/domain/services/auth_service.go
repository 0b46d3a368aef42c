package services

import (
	"errors"
	"time"

	"inkwell/internal/blog/domain/entities"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication tokens")
	ErrTokenRevoked          = errors.New("token has been revoked")
)

// TokenPair представляет пару токенов аутентификации.
type TokenPair struct {
	Principal    entities.Principal
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
