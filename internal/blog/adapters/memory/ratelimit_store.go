package memory

import (
	"context"
	"sync"
	"time"

	"inkwell/internal/blog/ports/stores"
)

// rateWindow - счетчик запросов одного идентификатора в текущем окне.
type rateWindow struct {
	count   int
	resetAt time.Time
}

// RateLimitStore считает запросы в фиксированных окнах в памяти процесса.
// Ключи не вытесняются и накапливаются до перезапуска. Состояние
// процесс-локально: горизонтальное масштабирование умножает эффективный
// лимит на число экземпляров.
type RateLimitStore struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	now     func() time.Time
}

// NewRateLimitStore создает новое хранилище счетчиков.
func NewRateLimitStore() stores.RateLimitStore {
	return &RateLimitStore{
		windows: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

// Allow проверяет и учитывает запрос идентификатора.
// Первый запрос или запрос после resetAt открывает новое окно со
// счетчиком 1. При достигнутом лимите счетчик не увеличивается.
// Мутация сериализована мьютексом: параллельные запросы одного
// ключа не теряют инкременты.
func (s *RateLimitStore) Allow(_ context.Context, identifier string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	win, ok := s.windows[identifier]
	if !ok || now.After(win.resetAt) {
		s.windows[identifier] = &rateWindow{
			count:   1,
			resetAt: now.Add(window),
		}
		return true, nil
	}

	if win.count >= limit {
		return false, nil
	}

	win.count++
	return true, nil
}
