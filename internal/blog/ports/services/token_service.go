package services

import (
	"context"
	"time"

	"inkwell/internal/blog/domain/entities"
	domain "inkwell/internal/blog/domain/services"
)

// TokenService определяет интерфейс для операций с токенами JWT.
type TokenService interface {
	// IssueAccessToken подписывает claims {id, email, name, role}.
	IssueAccessToken(ctx context.Context, principal entities.Principal) (string, time.Time, error)

	// IssueRefreshToken подписывает узкий набор claims {user_id, type:"refresh"}.
	IssueRefreshToken(ctx context.Context, userID string) (string, time.Time, error)

	// VerifyAccessToken проверяет подпись и срок действия; любая ошибка
	// означает отказ, principal при этом не возвращается.
	VerifyAccessToken(ctx context.Context, token string) (*entities.Principal, error)

	// VerifyRefreshToken дополнительно требует claim type == "refresh".
	VerifyRefreshToken(ctx context.Context, token string) (string, error)

	// DecodeUnchecked читает claims без проверки подписи. Только для
	// интроспекции срока действия, не для авторизации.
	DecodeUnchecked(token string) (*domain.UncheckedClaims, error)
}
