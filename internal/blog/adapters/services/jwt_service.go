package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/domain/services"
	svc "inkwell/internal/blog/ports/services"
	"inkwell/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssueAccessToken   = "IssueAccessToken"
	methodIssueRefreshToken  = "IssueRefreshToken"
	methodVerifyAccessToken  = "VerifyAccessToken"
	methodVerifyRefreshToken = "VerifyRefreshToken"

	msgIssuingAccessToken  = "issuing access token"
	msgIssuingRefreshToken = "issuing refresh token"
	msgVerifyingToken      = "verifying token"
	msgTokenIssued         = "token issued successfully"
	msgTokenVerified       = "token verified successfully"
	msgInvalidToken        = "invalid token format"
	msgTokenExpired        = "token has expired"
	msgMissingRole         = "role claim is empty"
	msgWrongTokenType      = "token type claim is not refresh"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken      = "error parsing token"
	errCtxIssuingToken   = "issuing token"
	errCtxParsingToken   = "parsing token"
	errCtxVerifyingToken = "verifying token"
	errCtxDecodingToken  = "decoding token"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// accessClaims адаптирует claims access токена к библиотеке JWT.
// Имена полей повторяют формат {id, email, name, role}.
type accessClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// refreshClaims адаптирует claims refresh токена: узкий набор без роли и имени.
type refreshClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// uncheckedClaims объединяет поля обоих видов токенов для чтения без проверки подписи.
type uncheckedClaims struct {
	UserID        string `json:"id"`
	RefreshUserID string `json:"user_id"`
	TokenType     string `json:"type"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	config services.JWTConfig
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, accessTokenTTL, refreshTokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey:       []byte(secretKey),
			AccessTokenTTL:  accessTokenTTL,
			RefreshTokenTTL: refreshTokenTTL,
		},
	}
}

// IssueAccessToken подписывает access токен с claims {id, email, name, role}.
func (s *ServiceJWT) IssueAccessToken(ctx context.Context, principal entities.Principal) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssueAccessToken),
		zap.String("userID", principal.ID),
	)
	log.Debug(ctx, msgIssuingAccessToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxIssuingToken, services.ErrGeneratingJWTToken)
	}

	now := time.Now()
	expiresAt := now.Add(s.config.AccessTokenTTL)

	claims := accessClaims{
		UserID: principal.ID,
		Email:  principal.Email,
		Name:   principal.Name,
		Role:   string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			// jti делает каждый выпуск уникальным: повторный выпуск в ту же
			// секунду не совпадает с уже отозванным токеном.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   principal.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// IssueRefreshToken подписывает refresh токен с claims {user_id, type:"refresh"}.
func (s *ServiceJWT) IssueRefreshToken(ctx context.Context, userID string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssueRefreshToken),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgIssuingRefreshToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxIssuingToken, services.ErrGeneratingJWTToken)
	}

	now := time.Now()
	expiresAt := now.Add(s.config.RefreshTokenTTL)

	claims := refreshClaims{
		UserID:    userID,
		TokenType: services.RefreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// VerifyAccessToken проверяет access токен и возвращает Principal.
// Любая ошибка означает отказ: неверная подпись, истекший срок,
// отсутствующая роль (refresh токен, предъявленный как access).
func (s *ServiceJWT) VerifyAccessToken(ctx context.Context, tokenString string) (*entities.Principal, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerifyAccessToken))
	log.Debug(ctx, msgVerifyingToken)

	claims := &accessClaims{}
	token, err := s.parse(tokenString, claims)
	if err != nil {
		if strings.Contains(err.Error(), "token is expired") {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	if !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrInvalidJWTToken)
	}

	if claims.UserID == "" {
		log.Debug(ctx, "id claim is empty")
		return nil, fmt.Errorf("%s: %w: empty id", errCtxVerifyingToken, services.ErrInvalidJWTToken)
	}

	role := entities.Role(claims.Role)
	if !role.IsValid() {
		log.Debug(ctx, msgMissingRole)
		return nil, fmt.Errorf("%s: %w: missing role", errCtxVerifyingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenVerified, zap.String("userID", claims.UserID))
	return &entities.Principal{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  role,
	}, nil
}

// VerifyRefreshToken проверяет refresh токен и возвращает ID пользователя.
// Access токен, предъявленный как refresh, отклоняется по claim type.
func (s *ServiceJWT) VerifyRefreshToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerifyRefreshToken))
	log.Debug(ctx, msgVerifyingToken)

	claims := &refreshClaims{}
	token, err := s.parse(tokenString, claims)
	if err != nil {
		if strings.Contains(err.Error(), "token is expired") {
			log.Debug(ctx, msgTokenExpired)
			return "", fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	if !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return "", fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrInvalidJWTToken)
	}

	// Тип проверяется раньше user_id: access токен без claim user_id
	// отклоняется именно как не-refresh.
	if claims.TokenType != services.RefreshTokenType {
		log.Debug(ctx, msgWrongTokenType)
		return "", fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrNotRefreshToken)
	}

	if claims.UserID == "" {
		log.Debug(ctx, msgInvalidToken)
		return "", fmt.Errorf("%s: %w: empty user_id", errCtxVerifyingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenVerified, zap.String("userID", claims.UserID))
	return claims.UserID, nil
}

// DecodeUnchecked читает claims без проверки подписи.
// Используется только для интроспекции срока действия.
func (s *ServiceJWT) DecodeUnchecked(tokenString string) (*services.UncheckedClaims, error) {
	claims := &uncheckedClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", errCtxDecodingToken, services.ErrInvalidJWTToken, err)
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.RefreshUserID
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &services.UncheckedClaims{
		UserID:    userID,
		TokenType: claims.TokenType,
		ExpiresAt: expiresAt,
	}, nil
}

// parse разбирает токен, допуская только семейство алгоритмов HMAC.
func (s *ServiceJWT) parse(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	})
}
