package services

import (
	"errors"
	"time"

	"inkwell/internal/blog/domain/entities"
)

// JWTErrors содержит ошибки, связанные с JWT токенами.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
	ErrNotRefreshToken    = errors.New("token is not a refresh token")
)

// RefreshTokenType - значение claim "type" для refresh токенов.
// Access токены этого claim не несут и не принимаются на refresh операциях.
const RefreshTokenType = "refresh"

// JWTConfig содержит настройки для JWT сервиса.
type JWTConfig struct {
	SecretKey       []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// AccessTokenClaims определяет данные access токена: подмножество
// Principal плюс сроки действия.
type AccessTokenClaims struct {
	Principal entities.Principal
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RefreshTokenClaims определяет данные refresh токена.
// Набор claims уже: роли и имени нет, токен нельзя использовать
// для авторизации напрямую.
type RefreshTokenClaims struct {
	UserID    string
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// UncheckedClaims - данные токена, прочитанные без проверки подписи.
// Используются только для интроспекции срока действия, никогда
// для решений об авторизации.
type UncheckedClaims struct {
	UserID    string
	TokenType string
	ExpiresAt time.Time
}

// Expired сообщает, истек ли срок действия токена.
func (c *UncheckedClaims) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(c.ExpiresAt)
}
