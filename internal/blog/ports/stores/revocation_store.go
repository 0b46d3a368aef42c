package stores

import "context"

// RevocationStore отслеживает явно отозванные токены (logout).
// Принятый токен обязан пройти три проверки: подпись, срок действия
// и отсутствие в этом хранилище.
type RevocationStore interface {
	// Revoke помещает токен в множество отозванных. Идемпотентна.
	Revoke(ctx context.Context, token string) error

	// IsRevoked сообщает, был ли токен отозван.
	IsRevoked(ctx context.Context, token string) (bool, error)
}
