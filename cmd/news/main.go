// Package main реализует точку входа новостного сайта.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	newshttp "newsnotes/internal/news/adapters/http"
	newspostgres "newsnotes/internal/news/adapters/postgres"
	newsapp "newsnotes/internal/news/app"
	"newsnotes/internal/news/config"
	"newsnotes/internal/users/adapters/cache"
	usershttp "newsnotes/internal/users/adapters/http"
	userspostgres "newsnotes/internal/users/adapters/postgres"
	"newsnotes/internal/users/adapters/services"
	usersapp "newsnotes/internal/users/app"
	"newsnotes/internal/web"
	"newsnotes/pkg/db/postgres"
	"newsnotes/pkg/db/redis"
	"newsnotes/pkg/logger"
	"newsnotes/pkg/shutdown"
	"newsnotes/templates"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NEWS_LOGGER_MODE"
	EnvLoggerLevel = "NEWS_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrLoadTemplates        = "failed to load templates"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "news service started"
	LogServiceShutdownDone = "news service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing Redis connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

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

		cfg, err := config.Load(ctx, *envFile)
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
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		database, err := postgres.Open(ctx, &cfg.Postgres, cfg.MigrationsDir)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitRepo)
		userRepos := userspostgres.NewRepositoryFactory(database.Pool())
		newsRepos := newspostgres.NewRepositoryFactory(database.Pool())

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.Session.SecretKey, cfg.Session.GetTTL(), cfg.Session.BCryptCost)
		sessionStore := cache.NewRedisSessionStore(redisClient)

		log.Info(ctx, LogInitUseCases)
		authUseCase := usersapp.NewAuthUseCase(
			userRepos.UserRepository(),
			serviceFactory.PasswordService(),
			serviceFactory.TokenService(),
			sessionStore,
		)
		newsUseCase := newsapp.NewNewsUseCase(
			newsRepos.NewsRepository(),
			newsRepos.CommentRepository(),
			newsapp.Settings{
				HomePageCount: cfg.News.HomePageCount,
				Moderator:     cfg.News.Moderator(),
			},
		)

		log.Info(ctx, LogInitHTTPServer)
		views := web.NewViews(templates.FS)
		if err := views.Load(); err != nil {
			log.Error(ctx, ErrLoadTemplates, zap.Error(err))
			_ = redisClient.Close()
			database.Close(ctx)
			exitCode = 1
			return
		}

		app := web.NewApp(views, web.AppConfig{
			Name:         config.ServiceName,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})
		app.Use(usershttp.NewAuthenticateMiddleware(authUseCase, cfg.Session.CookieName))

		usershttp.RegisterRoutes(app, usershttp.NewHandler(authUseCase, usershttp.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
		}))
		newshttp.RegisterRoutes(app, newshttp.NewHandler(newsUseCase))

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return app.ShutdownWithContext(ctx)
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close()
			},
			// Закрытие пула соединений с базой данных.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
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
