package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"inkwell/internal/blog/ports/stores"
	"inkwell/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodAllow = "allow"

	ErrorFailedToCount = "failed to count request in redis"
)

// Префикс ключей счетчиков запросов.
const ratelimitKeyPrefix = "ratelimit:"

// RateLimitStore реализует stores.RateLimitStore поверх Redis.
// Ключ - только идентификатор клиента, как и в памяти: окна разных
// call-site с разными лимитами не разделяются.
type RateLimitStore struct {
	client *redis.Client
}

// NewRateLimitStore создает хранилище счетчиков на Redis.
func NewRateLimitStore(client *redis.Client) stores.RateLimitStore {
	return &RateLimitStore{client: client}
}

// Allow атомарно учитывает запрос идентификатора в текущем окне.
// Первый INCR ключа открывает окно и выставляет его время жизни.
func (s *RateLimitStore) Allow(ctx context.Context, identifier string, limit int, window time.Duration) (bool, error) {
	log := logger.Log(ctx).With(
		zap.String("method", LogMethodAllow),
		zap.String("identifier", identifier),
	)

	key := ratelimitKeyPrefix + identifier

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToCount, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToCount, err)
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			log.Error(ctx, ErrorFailedToCount, zap.Error(err))
			return false, fmt.Errorf("%s: %w", ErrorFailedToCount, err)
		}
	}

	return count <= int64(limit), nil
}
