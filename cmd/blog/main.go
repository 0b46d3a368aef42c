// Сервис блог-платформы: аутентификация, посты, категории и теги.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkwell/internal/blog/adapters/cache"
	httpServer "inkwell/internal/blog/adapters/http"
	"inkwell/internal/blog/adapters/memory"
	blogpg "inkwell/internal/blog/adapters/postgres"
	"inkwell/internal/blog/adapters/services"
	"inkwell/internal/blog/app"
	"inkwell/internal/blog/config"
	"inkwell/internal/blog/ports/stores"
	pgdb "inkwell/pkg/db/postgres"
	redisdb "inkwell/pkg/db/redis"
	"inkwell/pkg/logger"
	"inkwell/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "BLOG_LOGGER_MODE"
	EnvLoggerLevel = "BLOG_LOGGER_LEVEL"
)

// Путь к миграциям базы данных.
const migrationsPath = "file://migrations/blog"

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrApplyMigrations      = "failed to apply database migrations"
	ErrConnectDatabase      = "failed to connect to database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "blog service started"
	LogServiceShutdownDone = "blog service shutdown complete"
	LogApplyingMigrations  = "applying database migrations"
	LogInitDatabase        = "initializing database connection"
	LogInitStores          = "initializing token and rate limit stores"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database connection"
	LogClosingRedis        = "closing Redis connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogApplyingMigrations)
		if err := pgdb.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), migrationsPath); err != nil {
			log.Error(ctx, ErrApplyMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitDatabase)
		database, err := pgdb.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrConnectDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		repoFactory := blogpg.NewRepositoryFactory(database.Pool())
		svcFactory := services.NewServiceFactory(
			cfg.JWT.Secret,
			cfg.JWT.GetAccessTokenTTL(),
			cfg.JWT.GetRefreshTokenTTL(),
			cfg.JWT.BCryptCost,
		)
		tokenSvc := svcFactory.TokenService()

		log.Info(ctx, LogInitStores, zap.String("backend", cfg.RateLimit.Backend))

		var (
			revocations stores.RevocationStore
			rateLimits  stores.RateLimitStore
			redisClient *redisdb.Client
		)
		if cfg.RateLimit.UseRedis() {
			redisClient, err = redisdb.NewClient(cfg.Redis.ToClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				exitCode = 1
				return
			}
			expiryOf := func(token string) time.Time {
				claims, err := tokenSvc.DecodeUnchecked(token)
				if err != nil {
					return time.Time{}
				}
				return claims.ExpiresAt
			}
			revocations = cache.NewRevocationStore(redisClient.RawClient(), expiryOf)
			rateLimits = cache.NewRateLimitStore(redisClient.RawClient())
		} else {
			revocations = memory.NewRevocationStore()
			rateLimits = memory.NewRateLimitStore()
		}

		authUseCase := app.NewAuthUseCase(
			repoFactory.UserRepository(),
			revocations,
			svcFactory.PasswordService(),
			tokenSvc,
		)
		userUseCase := app.NewUserUseCase(repoFactory.UserRepository())
		postUseCase := app.NewPostUseCase(repoFactory.PostRepository())
		categoryUseCase := app.NewCategoryUseCase(repoFactory.CategoryRepository())
		tagUseCase := app.NewTagUseCase(repoFactory.TagRepository())

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			// Выше порога валидатора: ответ 413 формирует валидатор,
			// а не fasthttp.
			BodyLimit: 12 << 20,
		})

		httpServer.SetupRouter(fiberApp, httpServer.Dependencies{
			AuthUseCase:     authUseCase,
			UserUseCase:     userUseCase,
			PostUseCase:     postUseCase,
			CategoryUseCase: categoryUseCase,
			TagUseCase:      tagUseCase,
			TokenService:    tokenSvc,
			Revocations:     revocations,
			RateLimits:      rateLimits,
			RateLimitCfg:    cfg.RateLimit,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				if redisClient == nil {
					return nil
				}
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close()
			},
			// Закрытие пула Postgres.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDatabase)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
