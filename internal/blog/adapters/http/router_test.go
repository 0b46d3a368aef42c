package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	bloghttp "inkwell/internal/blog/adapters/http"
	"inkwell/internal/blog/adapters/memory"
	"inkwell/internal/blog/adapters/services"
	"inkwell/internal/blog/app"
	"inkwell/internal/blog/app/dto"
	"inkwell/internal/blog/config"
	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/ports/repositories"
	svc "inkwell/internal/blog/ports/services"
)

const testSecret = "router-test-secret"

// fakeUserRepository хранит пользователей в памяти.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, entities.ErrEmailTaken
		}
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

// fakePostRepository хранит посты в памяти с ключом по slug.
type fakePostRepository struct {
	mu    sync.Mutex
	posts map[string]*entities.Post
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{posts: make(map[string]*entities.Post)}
}

func (r *fakePostRepository) Create(_ context.Context, post *entities.Post) (*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[post.Slug]; exists {
		return nil, entities.ErrPostSlugTaken
	}

	stored := *post
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.posts[stored.Slug] = &stored
	return &stored, nil
}

func (r *fakePostRepository) FindBySlug(_ context.Context, slug string) (*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[slug]
	if !ok {
		return nil, entities.ErrPostNotFound
	}
	return post, nil
}

func (r *fakePostRepository) ListPublished(_ context.Context, filter repositories.PostFilter) ([]*entities.Post, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var published []*entities.Post
	for _, post := range r.posts {
		if post.Status == entities.PostStatusPublished {
			published = append(published, post)
		}
	}
	sort.Slice(published, func(i, j int) bool {
		return published[i].Slug < published[j].Slug
	})

	total := len(published)
	start := (filter.Page - 1) * filter.Limit
	if start >= total {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return published[start:end], total, nil
}

func (r *fakePostRepository) Update(_ context.Context, post *entities.Post) (*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.Slug]; !ok {
		return nil, entities.ErrPostNotFound
	}

	stored := *post
	stored.UpdatedAt = time.Now()
	r.posts[stored.Slug] = &stored
	return &stored, nil
}

func (r *fakePostRepository) Delete(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[slug]; !ok {
		return entities.ErrPostNotFound
	}
	delete(r.posts, slug)
	return nil
}

// fakeCategoryRepository хранит категории в памяти.
type fakeCategoryRepository struct {
	mu         sync.Mutex
	categories map[string]*entities.Category
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{categories: make(map[string]*entities.Category)}
}

func (r *fakeCategoryRepository) Create(_ context.Context, category *entities.Category) (*entities.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[category.Slug]; exists {
		return nil, entities.ErrCategorySlugTaken
	}

	stored := *category
	stored.ID = uuid.NewString()
	r.categories[stored.Slug] = &stored
	return &stored, nil
}

func (r *fakeCategoryRepository) FindBySlug(_ context.Context, slug string) (*entities.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.categories[slug]
	if !ok {
		return nil, entities.ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepository) List(_ context.Context) ([]*entities.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var categories []*entities.Category
	for _, category := range r.categories {
		categories = append(categories, category)
	}
	return categories, nil
}

func (r *fakeCategoryRepository) Delete(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[slug]; !ok {
		return entities.ErrCategoryNotFound
	}
	delete(r.categories, slug)
	return nil
}

// fakeTagRepository хранит теги в памяти.
type fakeTagRepository struct {
	mu   sync.Mutex
	tags map[string]*entities.Tag
}

func newFakeTagRepository() *fakeTagRepository {
	return &fakeTagRepository{tags: make(map[string]*entities.Tag)}
}

func (r *fakeTagRepository) Create(_ context.Context, tag *entities.Tag) (*entities.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tags[tag.Slug]; exists {
		return nil, entities.ErrTagSlugTaken
	}

	stored := *tag
	stored.ID = uuid.NewString()
	r.tags[stored.Slug] = &stored
	return &stored, nil
}

func (r *fakeTagRepository) List(_ context.Context) ([]*entities.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tags []*entities.Tag
	for _, tag := range r.tags {
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *fakeTagRepository) Delete(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tags[slug]; !ok {
		return entities.ErrTagNotFound
	}
	delete(r.tags, slug)
	return nil
}

// testServer собирает приложение на фейковых репозиториях и реальных
// сервисах токенов и паролей.
type testServer struct {
	app      *fiber.App
	users    *fakeUserRepository
	tokenSvc svc.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	userRepo := newFakeUserRepository()
	postRepo := newFakePostRepository()
	categoryRepo := newFakeCategoryRepository()
	tagRepo := newFakeTagRepository()

	tokenSvc := services.NewJWT(testSecret, time.Hour, 24*time.Hour)
	passwordSvc := services.NewBcrypt(bcrypt.MinCost)
	revocations := memory.NewRevocationStore()
	rateLimits := memory.NewRateLimitStore()

	fiberApp := fiber.New(fiber.Config{BodyLimit: 12 << 20})
	bloghttp.SetupRouter(fiberApp, bloghttp.Dependencies{
		AuthUseCase:     app.NewAuthUseCase(userRepo, revocations, passwordSvc, tokenSvc),
		UserUseCase:     app.NewUserUseCase(userRepo),
		PostUseCase:     app.NewPostUseCase(postRepo),
		CategoryUseCase: app.NewCategoryUseCase(categoryRepo),
		TagUseCase:      app.NewTagUseCase(tagRepo),
		TokenService:    tokenSvc,
		Revocations:     revocations,
		RateLimits:      rateLimits,
		RateLimitCfg: config.RateLimitConfig{
			Backend:        config.BackendMemory,
			RegisterLimit:  1000,
			RegisterWindow: time.Minute,
			LoginLimit:     1000,
			LoginWindow:    time.Minute,
			ReadLimit:      1000,
			ReadWindow:     time.Minute,
			WriteLimit:     1000,
			WriteWindow:    time.Minute,
		},
	})

	return &testServer{app: fiberApp, users: userRepo, tokenSvc: tokenSvc}
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (s *testServer) request(t *testing.T, method, path, token string, payload any) (*nethttp.Response, testEnvelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	if payload != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope testEnvelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp, envelope
}

func (s *testServer) register(t *testing.T, email, name, password string) dto.TokenResponse {
	t.Helper()

	resp, envelope := s.request(t, nethttp.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Email:    email,
		Name:     name,
		Password: password,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "register failed: %s", envelope.Error)

	var tokens dto.TokenResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &tokens))
	return tokens
}

// seedUser кладет пользователя с нужной ролью напрямую в хранилище:
// через публичный API роль выше user не получить.
func (s *testServer) seedUser(t *testing.T, email string, role entities.Role, password string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = s.users.Create(context.Background(), &entities.User{
		Email:        email,
		Name:         "Seeded User",
		PasswordHash: string(hash),
		Role:         role,
	})
	require.NoError(t, err)
}

func (s *testServer) login(t *testing.T, email, password string) dto.TokenResponse {
	t.Helper()

	resp, envelope := s.request(t, nethttp.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Email:    email,
		Password: password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "login failed: %s", envelope.Error)

	var tokens dto.TokenResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &tokens))
	return tokens
}

func TestAuthFlow(t *testing.T) {
	server := newTestServer(t)

	tokens := server.register(t, "reader@example.com", "Reader", "Passw0rd!")
	assert.Equal(t, string(entities.RoleUser), tokens.User.Role)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	resp, envelope := server.request(t, nethttp.MethodGet, "/api/v1/user/profile", tokens.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var profile dto.UserProfileResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &profile))
	assert.Equal(t, "reader@example.com", profile.Email)
	assert.Equal(t, tokens.User.ID, profile.ID)

	resp, _ = server.request(t, nethttp.MethodPost, "/api/v1/auth/logout", tokens.AccessToken,
		dto.LogoutRequest{RefreshToken: tokens.RefreshToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// После logout отозванный access токен больше не принимается.
	resp, _ = server.request(t, nethttp.MethodGet, "/api/v1/user/profile", tokens.AccessToken, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	server := newTestServer(t)
	server.register(t, "reader@example.com", "Reader", "Passw0rd!")

	resp, envelope := server.request(t, nethttp.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Email:    "reader@example.com",
		Name:     "Another Reader",
		Password: "Passw0rd!",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.False(t, envelope.Success)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	server := newTestServer(t)

	resp, _ := server.request(t, nethttp.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Email:    "reader@example.com",
		Name:     "Reader",
		Password: "alllowercase1",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	server := newTestServer(t)
	server.register(t, "reader@example.com", "Reader", "Passw0rd!")

	resp, _ := server.request(t, nethttp.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Email:    "reader@example.com",
		Password: "WrongPass1",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshRotation(t *testing.T) {
	server := newTestServer(t)
	tokens := server.register(t, "reader@example.com", "Reader", "Passw0rd!")

	resp, envelope := server.request(t, nethttp.MethodPost, "/api/v1/auth/refresh", "",
		dto.RefreshRequest{RefreshToken: tokens.RefreshToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rotated dto.TokenResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &rotated))
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// Старый refresh токен отозван ротацией и второй раз не работает.
	resp, _ = server.request(t, nethttp.MethodPost, "/api/v1/auth/refresh", "",
		dto.RefreshRequest{RefreshToken: tokens.RefreshToken})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestContentPermissions(t *testing.T) {
	server := newTestServer(t)

	server.seedUser(t, "editor@example.com", entities.RoleEditor, "Editor0Pass")
	editorTokens := server.login(t, "editor@example.com", "Editor0Pass")
	readerTokens := server.register(t, "reader@example.com", "Reader", "Passw0rd!")

	postPayload := dto.PostRequest{
		Title:   "Go Concurrency Patterns",
		Content: "Channels and goroutines in practice.",
		Status:  string(entities.PostStatusPublished),
	}

	t.Run("аноним не может создать пост", func(t *testing.T) {
		resp, _ := server.request(t, nethttp.MethodPost, "/api/v1/posts/", "", postPayload)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("читатель не может создать пост", func(t *testing.T) {
		resp, _ := server.request(t, nethttp.MethodPost, "/api/v1/posts/", readerTokens.AccessToken, postPayload)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("редактор создает пост", func(t *testing.T) {
		resp, envelope := server.request(t, nethttp.MethodPost, "/api/v1/posts/", editorTokens.AccessToken, postPayload)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, "create failed: %s", envelope.Error)

		var created dto.PostResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &created))
		assert.Equal(t, "go-concurrency-patterns", created.Slug)
		assert.Equal(t, editorTokens.User.ID, created.AuthorID)
	})

	t.Run("пост публично читается", func(t *testing.T) {
		resp, envelope := server.request(t, nethttp.MethodGet, "/api/v1/posts/go-concurrency-patterns", "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var post dto.PostResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &post))
		assert.Equal(t, "Go Concurrency Patterns", post.Title)
	})

	t.Run("список содержит опубликованный пост", func(t *testing.T) {
		resp, envelope := server.request(t, nethttp.MethodGet, "/api/v1/posts/", "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var list dto.PostListResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &list))
		assert.Equal(t, 1, list.Total)
	})

	t.Run("несуществующий пост дает 404", func(t *testing.T) {
		resp, _ := server.request(t, nethttp.MethodGet, "/api/v1/posts/missing-post", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestTaxonomyPermissions(t *testing.T) {
	server := newTestServer(t)

	server.seedUser(t, "admin@example.com", entities.RoleAdmin, "Admin0Pass!")
	server.seedUser(t, "editor@example.com", entities.RoleEditor, "Editor0Pass")
	adminTokens := server.login(t, "admin@example.com", "Admin0Pass!")
	editorTokens := server.login(t, "editor@example.com", "Editor0Pass")

	resp, envelope := server.request(t, nethttp.MethodPost, "/api/v1/tags/", editorTokens.AccessToken,
		dto.TagRequest{Name: "Go"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "create tag failed: %s", envelope.Error)

	t.Run("редактор не может удалить тег", func(t *testing.T) {
		resp, _ := server.request(t, nethttp.MethodDelete, "/api/v1/tags/go", editorTokens.AccessToken, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("админ удаляет тег", func(t *testing.T) {
		resp, _ := server.request(t, nethttp.MethodDelete, "/api/v1/tags/go", adminTokens.AccessToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("категория создается с цветом по умолчанию", func(t *testing.T) {
		resp, envelope := server.request(t, nethttp.MethodPost, "/api/v1/categories/", editorTokens.AccessToken,
			dto.CategoryRequest{Name: "Web Development"})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var category dto.CategoryResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &category))
		assert.Equal(t, "web-development", category.Slug)
		assert.Equal(t, "bg-gray-500", category.Color)
	})
}

func TestUnknownRouteReturns404(t *testing.T) {
	server := newTestServer(t)

	resp, envelope := server.request(t, nethttp.MethodGet, "/api/v1/unknown", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, envelope.Success)
	assert.Equal(t, "route not found", envelope.Error)
}

// Тело больше умолчания fasthttp, но меньше порога валидатора,
// доходит до обработчика вместо 413 на транспорте.
func TestMidSizeBodyReachesHandler(t *testing.T) {
	server := newTestServer(t)
	server.register(t, "reader@example.com", "Reader", "Passw0rd!")

	payload := map[string]string{
		"email":    "reader@example.com",
		"password": "WrongPass1",
		"pad":      strings.Repeat("a", 5<<20),
	}
	resp, _ := server.request(t, nethttp.MethodPost, "/api/v1/auth/login", "", payload)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterRateLimit(t *testing.T) {
	userRepo := newFakeUserRepository()
	tokenSvc := services.NewJWT(testSecret, time.Hour, 24*time.Hour)
	passwordSvc := services.NewBcrypt(bcrypt.MinCost)
	revocations := memory.NewRevocationStore()

	fiberApp := fiber.New()
	bloghttp.SetupRouter(fiberApp, bloghttp.Dependencies{
		AuthUseCase:     app.NewAuthUseCase(userRepo, revocations, passwordSvc, tokenSvc),
		UserUseCase:     app.NewUserUseCase(userRepo),
		PostUseCase:     app.NewPostUseCase(newFakePostRepository()),
		CategoryUseCase: app.NewCategoryUseCase(newFakeCategoryRepository()),
		TagUseCase:      app.NewTagUseCase(newFakeTagRepository()),
		TokenService:    tokenSvc,
		Revocations:     revocations,
		RateLimits:      memory.NewRateLimitStore(),
		RateLimitCfg: config.RateLimitConfig{
			Backend:        config.BackendMemory,
			RegisterLimit:  3,
			RegisterWindow: 10 * time.Minute,
			LoginLimit:     10,
			LoginWindow:    time.Minute,
			ReadLimit:      200,
			ReadWindow:     time.Minute,
			WriteLimit:     10,
			WriteWindow:    time.Minute,
		},
	})
	server := &testServer{app: fiberApp, users: userRepo, tokenSvc: tokenSvc}

	for i := 0; i < 3; i++ {
		server.register(t, fmt.Sprintf("user%d@example.com", i), "Reader", "Passw0rd!")
	}

	resp, _ := server.request(t, nethttp.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Email:    "user4@example.com",
		Name:     "Reader",
		Password: "Passw0rd!",
	})
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
