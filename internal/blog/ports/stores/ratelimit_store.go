package stores

import (
	"context"
	"time"
)

// RateLimitStore считает запросы по идентификатору клиента в фиксированных
// окнах. Лимит и окно передаются на каждом вызове и не привязаны к ключу:
// два call-site с одним идентификатором, но разными лимитами разделяют одно
// логическое окно, и результат зависит от порядка вызовов. Это унаследованное
// поведение, ключи намеренно не разделяются по маршруту.
type RateLimitStore interface {
	// Allow возвращает true, если запрос укладывается в лимит окна.
	// Первый запрос (или запрос после истечения окна) сбрасывает счетчик
	// в 1 и открывает новое окно; при достигнутом лимите счетчик не растет.
	Allow(ctx context.Context, identifier string, limit int, window time.Duration) (bool, error)
}
