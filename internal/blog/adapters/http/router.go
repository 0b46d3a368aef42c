// Package http содержит компоненты HTTP сервера блога.
package http

import (
	"github.com/gofiber/fiber/v3"

	"inkwell/internal/blog/adapters/http/auth"
	"inkwell/internal/blog/adapters/http/posts"
	"inkwell/internal/blog/adapters/http/response"
	"inkwell/internal/blog/adapters/http/taxonomy"
	"inkwell/internal/blog/app/http/middleware"
	"inkwell/internal/blog/config"
	"inkwell/internal/blog/domain/entities"
	"inkwell/internal/blog/ports/api"
	"inkwell/internal/blog/ports/services"
	"inkwell/internal/blog/ports/stores"
)

// Dependencies собирает сервисы, нужные маршрутизатору.
type Dependencies struct {
	AuthUseCase     api.AuthUseCase
	UserUseCase     api.UserUseCase
	PostUseCase     api.PostUseCase
	CategoryUseCase api.CategoryUseCase
	TagUseCase      api.TagUseCase

	TokenService services.TokenService
	Revocations  stores.RevocationStore
	RateLimits   stores.RateLimitStore

	RateLimitCfg config.RateLimitConfig
}

// SetupRouter настраивает маршрутизацию HTTP сервера.
// Чтения публичны и лимитируются щедро; мутации требуют аутентификации
// с проверкой отзыва, роль editor или admin, и жесткий лимит записи.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.AuthUseCase, deps.UserUseCase)
	postHandler := posts.NewHandler(deps.PostUseCase)
	taxonomyHandler := taxonomy.NewHandler(deps.CategoryUseCase, deps.TagUseCase)

	authenticateSecure := middleware.NewSecureAuthMiddleware(deps.TokenService, deps.Revocations)
	requireEditor := middleware.NewRoleMiddleware(entities.RoleAdmin, entities.RoleEditor)
	requireAdmin := middleware.NewRoleMiddleware(entities.RoleAdmin)

	limits := deps.RateLimitCfg
	registerLimit := middleware.NewRateLimitMiddleware(deps.RateLimits, limits.RegisterLimit, limits.RegisterWindow)
	loginLimit := middleware.NewRateLimitMiddleware(deps.RateLimits, limits.LoginLimit, limits.LoginWindow)
	readLimit := middleware.NewRateLimitMiddleware(deps.RateLimits, limits.ReadLimit, limits.ReadWindow)
	writeLimit := middleware.NewRateLimitMiddleware(deps.RateLimits, limits.WriteLimit, limits.WriteWindow)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewValidatorMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Auth routes (публичные).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register, registerLimit)
	authRoutes.Post("/login", authHandler.Login, loginLimit)
	authRoutes.Post("/refresh", authHandler.RefreshTokens, loginLimit)
	authRoutes.Post("/logout", authHandler.Logout, authenticateSecure)

	// Профиль пользователя.
	userRoutes := apiV1.Group("/user")
	userRoutes.Use(authenticateSecure)
	userRoutes.Get("/profile", authHandler.GetProfile)

	// Посты: чтение публичное, запись для editor и admin.
	postRoutes := apiV1.Group("/posts")
	postRoutes.Get("/", postHandler.ListPosts, readLimit)
	postRoutes.Get("/:slug", postHandler.GetPost, readLimit)
	postRoutes.Post("/", postHandler.CreatePost, writeLimit, authenticateSecure, requireEditor)
	postRoutes.Put("/:slug", postHandler.UpdatePost, writeLimit, authenticateSecure, requireEditor)
	postRoutes.Patch("/:slug", postHandler.UpdatePost, writeLimit, authenticateSecure, requireEditor)
	postRoutes.Delete("/:slug", postHandler.DeletePost, writeLimit, authenticateSecure, requireEditor)

	// Категории: удаление только admin.
	categoryRoutes := apiV1.Group("/categories")
	categoryRoutes.Get("/", taxonomyHandler.ListCategories, readLimit)
	categoryRoutes.Post("/", taxonomyHandler.CreateCategory, writeLimit, authenticateSecure, requireEditor)
	categoryRoutes.Delete("/:slug", taxonomyHandler.DeleteCategory, writeLimit, authenticateSecure, requireAdmin)

	// Теги: удаление только admin.
	tagRoutes := apiV1.Group("/tags")
	tagRoutes.Get("/", taxonomyHandler.ListTags, readLimit)
	tagRoutes.Post("/", taxonomyHandler.CreateTag, writeLimit, authenticateSecure, requireEditor)
	tagRoutes.Delete("/:slug", taxonomyHandler.DeleteTag, writeLimit, authenticateSecure, requireAdmin)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return response.Error(c, fiber.StatusNotFound, "route not found")
	})
}
