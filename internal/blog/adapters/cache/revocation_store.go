// Package cache содержит реализации хранилищ на Redis: множество
// отозванных токенов и счетчики rate limiter, переживающие перезапуск
// процесса и разделяемые между экземплярами.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"inkwell/internal/blog/ports/stores"
	"inkwell/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodRevoke    = "revoke"
	LogMethodIsRevoked = "is_revoked"

	ErrorFailedToRevoke = "failed to store revoked token in redis"
	ErrorFailedToCheck  = "failed to check revoked token in redis"
)

// Префикс ключей отозванных токенов.
const revokedKeyPrefix = "revoked:"

// TTL по умолчанию, когда срок действия токена прочитать не удалось.
const fallbackRevocationTTL = 24 * time.Hour

// RevocationStore реализует stores.RevocationStore поверх Redis.
// Запись живет до истечения срока действия самого токена: дольше
// хранить ее незачем, просроченный токен отклоняет сервис токенов.
type RevocationStore struct {
	client *redis.Client
	// expiryOf возвращает срок действия токена, прочитанный без
	// проверки подписи.
	expiryOf func(token string) time.Time
}

// NewRevocationStore создает хранилище отозванных токенов на Redis.
func NewRevocationStore(client *redis.Client, expiryOf func(token string) time.Time) stores.RevocationStore {
	return &RevocationStore{
		client:   client,
		expiryOf: expiryOf,
	}
}

// Revoke помещает токен в множество отозванных. Идемпотентна.
func (s *RevocationStore) Revoke(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRevoke))

	ttl := fallbackRevocationTTL
	if expiresAt := s.expiryOf(token); !expiresAt.IsZero() {
		if remaining := time.Until(expiresAt); remaining > 0 {
			ttl = remaining
		}
	}

	if err := s.client.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRevoke, err)
	}

	return nil
}

// IsRevoked сообщает, был ли токен отозван.
func (s *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodIsRevoked))

	_, err := s.client.Get(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		log.Error(ctx, ErrorFailedToCheck, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToCheck, err)
	}

	return true, nil
}
