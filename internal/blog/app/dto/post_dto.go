package dto

import (
	"time"

	"inkwell/internal/blog/domain/entities"
)

// PostRequest содержит данные для создания или обновления поста.
type PostRequest struct {
	Title         string   `json:"title" validate:"required"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content" validate:"required"`
	CategoryID    string   `json:"category_id"`
	FeaturedImage string   `json:"featured_image"`
	Featured      bool     `json:"featured"`
	Status        string   `json:"status"`
	Tags          []string `json:"tags"`
}

// ToEntity преобразует запрос в сущность поста.
func (r *PostRequest) ToEntity() *entities.Post {
	return &entities.Post{
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		CategoryID:    r.CategoryID,
		FeaturedImage: r.FeaturedImage,
		Featured:      r.Featured,
		Status:        entities.PostStatus(r.Status),
		Tags:          r.Tags,
	}
}

// PostResponse содержит данные поста в ответах API.
type PostResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Content       string     `json:"content,omitempty"`
	AuthorID      string     `json:"author_id"`
	AuthorName    string     `json:"author_name,omitempty"`
	CategorySlug  string     `json:"category_slug,omitempty"`
	CategoryName  string     `json:"category_name,omitempty"`
	CategoryColor string     `json:"category_color,omitempty"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Featured      bool       `json:"featured"`
	Status        string     `json:"status"`
	ReadingTime   int        `json:"reading_time"`
	Views         int        `json:"views"`
	Likes         int        `json:"likes"`
	Tags          []string   `json:"tags,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewPostResponse собирает ответ из сущности поста.
func NewPostResponse(post *entities.Post) *PostResponse {
	return &PostResponse{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Excerpt:       post.Excerpt,
		Content:       post.Content,
		AuthorID:      post.AuthorID,
		AuthorName:    post.AuthorName,
		CategorySlug:  post.CategorySlug,
		CategoryName:  post.CategoryName,
		CategoryColor: post.CategoryColor,
		FeaturedImage: post.FeaturedImage,
		Featured:      post.Featured,
		Status:        string(post.Status),
		ReadingTime:   post.ReadingTime,
		Views:         post.Views,
		Likes:         post.Likes,
		Tags:          post.Tags,
		PublishedAt:   post.PublishedAt,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

// PostListResponse содержит страницу постов и данные пагинации.
type PostListResponse struct {
	Posts      []*PostResponse `json:"posts"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// NewPostListResponse собирает страницу постов.
func NewPostListResponse(posts []*entities.Post, total, page, limit int) *PostListResponse {
	items := make([]*PostResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, NewPostResponse(post))
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &PostListResponse{
		Posts:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
