package postusecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkwell/internal/blog/app"
	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/ports/repositories"
)

type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) Create(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Post), args.Error(1)
}

func (m *mockPostRepository) FindBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Post), args.Error(1)
}

func (m *mockPostRepository) ListPublished(ctx context.Context, filter repositories.PostFilter) ([]*entities.Post, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Post), args.Int(1), args.Error(2)
}

func (m *mockPostRepository) Update(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Post), args.Error(1)
}

func (m *mockPostRepository) Delete(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

func TestCreatePost(t *testing.T) {
	tests := []struct {
		name        string
		post        *entities.Post
		check       func(t *testing.T, stored *entities.Post)
		expectedErr error
	}{
		{
			name: "success - slug derived from title",
			post: &entities.Post{
				Title:   "Go Concurrency Patterns!",
				Content: strings.Repeat("word ", 450),
				Status:  entities.PostStatusPublished,
			},
			check: func(t *testing.T, stored *entities.Post) {
				t.Helper()
				assert.Equal(t, "go-concurrency-patterns", stored.Slug)
				// 450 слов при 200 словах в минуту округляются вверх до 3.
				assert.Equal(t, 3, stored.ReadingTime)
				require.NotNil(t, stored.PublishedAt)
			},
		},
		{
			name: "success - draft has no published_at",
			post: &entities.Post{
				Title:   "Draft Notes",
				Content: "short draft",
			},
			check: func(t *testing.T, stored *entities.Post) {
				t.Helper()
				assert.Equal(t, entities.PostStatusDraft, stored.Status)
				assert.Nil(t, stored.PublishedAt)
				assert.Equal(t, 1, stored.ReadingTime)
			},
		},
		{
			name:        "error - empty title",
			post:        &entities.Post{Content: "body"},
			expectedErr: entities.ErrEmptyTitle,
		},
		{
			name:        "error - empty content",
			post:        &entities.Post{Title: "Title"},
			expectedErr: entities.ErrEmptyContent,
		},
		{
			name: "error - explicit slug too short",
			post: &entities.Post{
				Title:   "Ok",
				Slug:    "ab",
				Content: "body",
			},
			expectedErr: entities.ErrSlugTooShort,
		},
		{
			name: "error - slug with invalid characters",
			post: &entities.Post{
				Title:   "Ok Title",
				Slug:    "Bad_Slug!",
				Content: "body",
			},
			expectedErr: entities.ErrInvalidSlug,
		},
		{
			name: "error - unknown status",
			post: &entities.Post{
				Title:   "Ok Title",
				Content: "body",
				Status:  entities.PostStatus("archived"),
			},
			expectedErr: entities.ErrInvalidPostStatus,
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			postRepo := new(mockPostRepository)

			if ttt.expectedErr == nil {
				postRepo.On("Create", mock.Anything, mock.Anything).
					Return(ttt.post, nil).Once()
			}

			postUseCase := app.NewPostUseCase(postRepo)

			created, err := postUseCase.CreatePost(context.Background(), ttt.post)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				ttt.check(t, ttt.post)
			}

			postRepo.AssertExpectations(t)
		})
	}
}

func TestListPostsClampsFilter(t *testing.T) {
	postRepo := new(mockPostRepository)

	postRepo.On("ListPublished", mock.Anything, mock.MatchedBy(func(f repositories.PostFilter) bool {
		return f.Page == 1 && f.Limit == 10
	})).Return([]*entities.Post{}, 0, nil).Once()

	postRepo.On("ListPublished", mock.Anything, mock.MatchedBy(func(f repositories.PostFilter) bool {
		return f.Page == 2 && f.Limit == 100
	})).Return([]*entities.Post{}, 0, nil).Once()

	postUseCase := app.NewPostUseCase(postRepo)

	_, _, err := postUseCase.ListPosts(context.Background(), repositories.PostFilter{Page: 0, Limit: -5})
	require.NoError(t, err)

	_, _, err = postUseCase.ListPosts(context.Background(), repositories.PostFilter{Page: 2, Limit: 5000})
	require.NoError(t, err)

	postRepo.AssertExpectations(t)
}

func TestUpdatePostKeepsSlugAndAuthor(t *testing.T) {
	existing := &entities.Post{
		ID:       "post-1",
		Title:    "Old Title",
		Slug:     "old-title",
		Content:  "old content",
		AuthorID: "author-1",
		Status:   entities.PostStatusDraft,
	}

	postRepo := new(mockPostRepository)
	postRepo.On("FindBySlug", mock.Anything, "old-title").Return(existing, nil).Once()
	postRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entities.Post) bool {
		return p.Slug == "old-title" && p.AuthorID == "author-1" && p.Title == "New Title"
	})).Return(existing, nil).Once()

	postUseCase := app.NewPostUseCase(postRepo)

	update := &entities.Post{
		Title:   "New Title",
		Slug:    "attempted-new-slug",
		Content: "new content",
	}

	_, err := postUseCase.UpdatePost(context.Background(), "old-title", update)
	require.NoError(t, err)

	postRepo.AssertExpectations(t)
}

func TestDeletePostNotFound(t *testing.T) {
	postRepo := new(mockPostRepository)
	postRepo.On("Delete", mock.Anything, "missing").
		Return(entities.ErrPostNotFound).Once()

	postUseCase := app.NewPostUseCase(postRepo)

	err := postUseCase.DeletePost(context.Background(), "missing")
	assert.ErrorIs(t, err, entities.ErrPostNotFound)

	postRepo.AssertExpectations(t)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces  Around  ", "spaces-around"},
		{"Go 1.22 Released!", "go-1-22-released"},
		{"UPPER case", "upper-case"},
		{"---", ""},
	}

	for _, ttt := range tests {
		t.Run(ttt.title, func(t *testing.T) {
			assert.Equal(t, ttt.expected, app.Slugify(ttt.title))
		})
	}
}
