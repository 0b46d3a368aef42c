// Package memory содержит процесс-локальные реализации хранилищ
// отозванных токенов и счетчиков rate limiter.
package memory

import (
	"context"
	"sync"

	"inkwell/internal/blog/ports/stores"
)

// RevocationStore хранит отозванные токены в памяти процесса.
// Множество живет до перезапуска: рестарт снимает все отзывы, записи
// не вытесняются и растут неограниченно. Это известное ограничение:
// отозванный токен все равно рано или поздно отсеивается проверкой
// срока действия в сервисе токенов.
type RevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

// NewRevocationStore создает новое пустое хранилище отозванных токенов.
func NewRevocationStore() stores.RevocationStore {
	return &RevocationStore{
		revoked: make(map[string]struct{}),
	}
}

// Revoke помещает токен в множество отозванных. Идемпотентна.
func (s *RevocationStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[token] = struct{}{}
	return nil
}

// IsRevoked сообщает, был ли токен отозван.
func (s *RevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.revoked[token]
	return ok, nil
}
