package entities

import (
	"errors"
	"time"
)

// Определяем ошибки домена пользователя как константы.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrNameTooShort     = errors.New("name must contain at least 2 characters")
	ErrPasswordTooShort = errors.New("password must contain at least 8 characters")
	ErrPasswordTooWeak  = errors.New("password must contain upper and lower case letters and a digit")
	ErrInvalidRole      = errors.New("invalid user role")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("user with this email already exists")
)

// Role определяет роль пользователя в системе.
type Role string

// Поддерживаемые роли.
const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
)

// IsValid проверяет, что роль входит в список поддерживаемых.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleEditor:
		return true
	}
	return false
}

// User представляет основную сущность домена пользователя.
// Слой аутентификации использует только id, email, name, password_hash и role;
// остальные поля профиля для него непрозрачны.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	AvatarURL    string
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal представляет подмножество данных пользователя,
// встраиваемое в access токен.
type Principal struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// Principal возвращает представление пользователя для токена.
func (u *User) Principal() Principal {
	return Principal{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
