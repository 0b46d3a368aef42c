package entities

import (
	"errors"
	"time"
)

// Ошибки домена тегов.
var (
	ErrTagNotFound  = errors.New("tag not found")
	ErrTagSlugTaken = errors.New("tag with this slug already exists")
)

// Tag представляет тег поста.
type Tag struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}
