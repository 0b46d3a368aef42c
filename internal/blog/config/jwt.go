package config

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"inkwell/pkg/logger"
)

// PlaceholderSecret - известный секрет-заглушка из примеров развертывания.
// Его использование допускается, но сопровождается громким предупреждением.
const PlaceholderSecret = "your-secret-key-change-in-production"

// Значения TTL по умолчанию.
const (
	DefaultAccessTokenTTL  = 7 * 24 * time.Hour
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// ErrEmptyJWTSecret возвращается при отсутствии секрета: сервис не стартует.
var ErrEmptyJWTSecret = errors.New("JWT_SECRET environment variable is required")

// MsgPlaceholderSecret - предупреждение об использовании секрета-заглушки.
const MsgPlaceholderSecret = "using default JWT secret, set JWT_SECRET environment variable in production"

// JWTConfig содержит настройки для JWT токенов.
type JWTConfig struct {
	Secret          string `yaml:"secret" env:"JWT_SECRET"`
	AccessTokenTTL  string `yaml:"access_token_ttl" env:"JWT_EXPIRES_IN" env-default:"7d"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl" env:"JWT_REFRESH_EXPIRES_IN" env-default:"30d"`
	BCryptCost      int    `yaml:"bcrypt_cost" env:"BLOG_BCRYPT_COST" env-default:"12"`
}

// Validate проверяет секрет: пустой секрет блокирует запуск,
// заглушка разрешена с предупреждением.
func (c *JWTConfig) Validate(ctx context.Context) error {
	if c.Secret == "" {
		return ErrEmptyJWTSecret
	}
	if c.Secret == PlaceholderSecret {
		logger.Log(ctx).Warn(ctx, MsgPlaceholderSecret)
	}
	return nil
}

// GetAccessTokenTTL возвращает продолжительность времени жизни access токена.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	return parseExpiry(c.AccessTokenTTL, DefaultAccessTokenTTL)
}

// GetRefreshTokenTTL возвращает продолжительность времени жизни refresh токена.
func (c *JWTConfig) GetRefreshTokenTTL() time.Duration {
	return parseExpiry(c.RefreshTokenTTL, DefaultRefreshTokenTTL)
}

// parseExpiry разбирает длительность с поддержкой суффикса дней ("7d"),
// иначе использует стандартный синтаксис time.ParseDuration.
func parseExpiry(value string, fallback time.Duration) time.Duration {
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return fallback
		}
		return time.Duration(n) * 24 * time.Hour
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}
