// Package app содержит реализацию сценариев использования блога.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/domain/services"
	"inkwell/internal/blog/ports/api"
	"inkwell/internal/blog/ports/repositories"
	svc "inkwell/internal/blog/ports/services"
	"inkwell/internal/blog/ports/stores"
	"inkwell/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodRegister       = "Register"
	methodLogin          = "Login"
	methodRefreshTokens  = "RefreshTokens"
	methodLogout         = "Logout"
	methodGenerateTokens = "generateTokenPair"

	msgStartRegistration    = "starting user registration"
	msgInvalidEmailFormat   = "invalid email format"
	msgInvalidName          = "invalid name provided"
	msgInvalidPassword      = "invalid password"
	msgEmailExists          = "user with this email already exists"
	msgUserRegistered       = "user registered successfully"
	msgTokensGenerated      = "authentication tokens generated for new user"
	msgLoginAttempt         = "login attempt"
	msgLoginNonExistent     = "login attempt with non-existent email"
	msgInvalidPasswordAuth  = "invalid password provided"
	msgUserLoggedIn         = "user logged in successfully"
	msgTokensGeneratedLogin = "authentication tokens generated for user"
	msgRefreshingTokens     = "refreshing tokens"
	msgRevokedTokenAttempt  = "attempt to use revoked token"
	msgOldTokenRevoked      = "old refresh token revoked"
	msgTokensRefreshed      = "tokens refreshed successfully"
	msgProcessingLogout     = "processing logout request"
	msgUserLoggedOut        = "user logged out successfully"
	msgTokenPairGenerated   = "token pair generated successfully"

	msgErrCheckExistingUser     = "failed to check existing user"
	msgErrHashPassword          = "failed to hash password"
	msgErrCreateUser            = "failed to create user"
	msgErrGenerateTokens        = "failed to generate tokens for new user"
	msgErrFindingUser           = "error finding user by email"
	msgErrVerifyingPassword     = "error verifying password"
	msgErrGenerateLoginTokens   = "failed to generate tokens on login"
	msgErrInvalidRefreshToken   = "invalid refresh token"
	msgErrCheckingRevocation    = "failed to check token revocation"
	msgErrFindingUserForToken   = "failed to find user for refresh token"
	msgErrRevokingOldToken      = "failed to revoke old refresh token"
	msgErrGenerateRefreshTokens = "failed to generate new tokens during refresh"
	msgErrRevokingAccessToken   = "failed to revoke access token"
	msgErrRevokingRefreshToken  = "failed to revoke refresh token"
	msgErrGenerateAccessToken   = "failed to generate access token"
	msgErrGenerateRefreshToken  = "failed to generate refresh token"

	errCtxValidatingEmail        = "validating email"
	errCtxValidatingName         = "validating name"
	errCtxValidatingPassword     = "validating password"
	errCtxCheckingUser           = "checking existing user"
	errCtxEmailRegistered        = "email already registered"
	errCtxHashingPassword        = "hashing password"
	errCtxCreatingUser           = "creating user"
	errCtxGeneratingTokens       = "generating tokens"
	errCtxInvalidCredentials     = "invalid credentials"
	errCtxFindingUser            = "finding user"
	errCtxVerifyingPassword      = "verifying password"
	errCtxVerifyingRefreshToken  = "verifying refresh token"
	errCtxCheckingRevocation     = "checking token revocation"
	errCtxTokenRevoked           = "token revoked"
	errCtxRevokingOldToken       = "revoking old refresh token"
	errCtxGeneratingNewTokens    = "generating new tokens"
	errCtxRevokingAccessToken    = "revoking access token"
	errCtxRevokingRefreshToken   = "revoking refresh token"
	errCtxGeneratingAccessToken  = "generating access token"
	errCtxGeneratingRefreshToken = "generating refresh token"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	revocations stores.RevocationStore
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	revocations stores.RevocationStore,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		revocations: revocations,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового пользователя с предоставленными учетными данными.
// Новые пользователи всегда получают роль user, повысить ее через
// регистрацию нельзя.
func (a *AuthUseCaseImpl) Register(ctx context.Context, email, name, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if err := validateEmail(email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}
	if err := validateName(name); err != nil {
		log.Debug(ctx, msgInvalidName, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingName, err)
	}
	if err := validatePassword(password); err != nil {
		log.Debug(ctx, msgInvalidPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
	}

	existingUser, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrEmailTaken)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
		Role:         entities.RoleUser,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			log.Debug(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrEmailTaken)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	tokenPair, err := a.generateTokenPair(ctx, createdUser)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.String("userID", createdUser.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgTokensGenerated, zap.String("userID", createdUser.ID))
	return tokenPair, nil
}

// Login аутентифицирует пользователя по email и паролю.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	tokenPair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateLoginTokens, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgTokensGeneratedLogin, zap.String("userID", user.ID))
	return tokenPair, nil
}

// RefreshTokens обновляет пару токенов. Старый refresh токен отзывается,
// каждый токен обновления одноразовый.
func (a *AuthUseCaseImpl) RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefreshTokens))
	log.Debug(ctx, msgRefreshingTokens)

	userID, err := a.tokenSvc.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		log.Debug(ctx, msgErrInvalidRefreshToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingRefreshToken, services.ErrInvalidRefreshToken)
	}

	log = log.With(zap.String("userID", userID))

	revoked, err := a.revocations.IsRevoked(ctx, refreshToken)
	if err != nil {
		log.Error(ctx, msgErrCheckingRevocation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingRevocation, err)
	}
	if revoked {
		log.Debug(ctx, msgRevokedTokenAttempt)
		return nil, fmt.Errorf("%s: %w", errCtxTokenRevoked, services.ErrTokenRevoked)
	}

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUserForToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if err := a.revocations.Revoke(ctx, refreshToken); err != nil {
		log.Error(ctx, msgErrRevokingOldToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxRevokingOldToken, err)
	}

	log.Debug(ctx, msgOldTokenRevoked)

	tokenPair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateRefreshTokens, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingNewTokens, err)
	}

	log.Info(ctx, msgTokensRefreshed)
	return tokenPair, nil
}

// Logout отзывает предъявленный access токен и, если передан,
// сопутствующий refresh токен.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))
	log.Debug(ctx, msgProcessingLogout)

	if err := a.revocations.Revoke(ctx, accessToken); err != nil {
		log.Error(ctx, msgErrRevokingAccessToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingAccessToken, err)
	}

	if refreshToken != "" {
		if err := a.revocations.Revoke(ctx, refreshToken); err != nil {
			log.Error(ctx, msgErrRevokingRefreshToken, zap.Error(err))
			return fmt.Errorf("%s: %w", errCtxRevokingRefreshToken, err)
		}
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// Вспомогательная функция для генерации пары токенов.
func (a *AuthUseCaseImpl) generateTokenPair(ctx context.Context, user *entities.User) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateTokens),
		zap.String("userID", user.ID),
	)

	principal := user.Principal()

	accessToken, accessExpires, err := a.tokenSvc.IssueAccessToken(ctx, principal)
	if err != nil {
		log.Error(ctx, msgErrGenerateAccessToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingAccessToken, services.ErrTokenGenerationFailed)
	}

	refreshToken, _, err := a.tokenSvc.IssueRefreshToken(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateRefreshToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingRefreshToken, services.ErrTokenGenerationFailed)
	}

	log.Debug(ctx, msgTokenPairGenerated)

	return &services.TokenPair{
		Principal:    principal,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpires,
	}, nil
}

// Валидация email.
func validateEmail(email string) error {
	if email == "" {
		return entities.ErrInvalidEmail
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return entities.ErrInvalidEmail
	}

	return nil
}

// Валидация имени.
func validateName(name string) error {
	if name == "" {
		return entities.ErrEmptyName
	}
	if len(name) < 2 {
		return entities.ErrNameTooShort
	}
	return nil
}

// Валидация пароля: длина и обязательные классы символов.
func validatePassword(password string) error {
	if len(password) < services.MinPasswordLength {
		return entities.ErrPasswordTooShort
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`\d`).MatchString(password)

	if !hasUpper || !hasLower || !hasDigit {
		return entities.ErrPasswordTooWeak
	}

	return nil
}

// GetValidatePasswordFunc экспортирует функцию validatePassword для тестирования.
func GetValidatePasswordFunc() func(string) error {
	return validatePassword
}

// GetValidateEmailFunc экспортирует функцию validateEmail для тестирования.
func GetValidateEmailFunc() func(string) error {
	return validateEmail
}
