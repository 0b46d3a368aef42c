package entities

import (
	"errors"
	"time"
)

// Ошибки домена постов.
var (
	ErrPostNotFound      = errors.New("post not found")
	ErrPostSlugTaken     = errors.New("post with this slug already exists")
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrEmptyContent      = errors.New("content cannot be empty")
	ErrSlugTooShort      = errors.New("slug must contain at least 3 characters")
	ErrInvalidPostStatus = errors.New("post status must be draft or published")
)

// PostStatus определяет состояние публикации поста.
type PostStatus string

// Поддерживаемые статусы поста.
const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// IsValid проверяет статус поста.
func (s PostStatus) IsValid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post представляет запись блога.
// Поля AuthorName, Category* и Tags заполняются запросами со связями
// и не хранятся в таблице posts. Tags содержит slug тегов.
type Post struct {
	ID            string
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	AuthorID      string
	CategoryID    string
	FeaturedImage string
	Featured      bool
	Status        PostStatus
	ReadingTime   int
	Views         int
	Likes         int
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	AuthorName    string
	CategoryName  string
	CategorySlug  string
	CategoryColor string
	Tags          []string
}
