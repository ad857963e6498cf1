// Package main загружает новости из YAML файла в базу новостного сайта.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	newspostgres "newsnotes/internal/news/adapters/postgres"
	"newsnotes/internal/news/config"
	"newsnotes/internal/news/seed"
	"newsnotes/pkg/db/postgres"
	"newsnotes/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger   = "failed to initialize logger"
	ErrLoadConfig   = "failed to load configuration"
	ErrOpenSeedFile = "failed to open seed file"
	ErrParseSeed    = "failed to parse seed file"
	ErrInitDB       = "failed to initialize database"
	ErrInsertNews   = "failed to insert news"
)

// LogNewsInserted - сообщение об успешной загрузке.
const LogNewsInserted = "news inserted"

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	seedFile := flag.String("file", "seed/news.yaml", "path to the YAML file with news")
	flag.Parse()

	if err := run(*envFile, *seedFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(envFile, seedFile string) error {
	log, err := logger.NewLogger(logger.Development, "info")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitLogger, err)
	}
	defer func() { _ = log.Sync() }()
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	cfg, err := config.Load(ctx, envFile)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	f, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrOpenSeedFile, err)
	}
	defer f.Close()

	news, err := seed.Parse(f, time.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrParseSeed, err)
	}

	database, err := postgres.Open(ctx, &cfg.Postgres, cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitDB, err)
	}
	defer database.Close(ctx)

	inserted, err := newspostgres.NewNewsRepository(database.Pool()).BulkCreate(ctx, news)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInsertNews, err)
	}

	log.Info(ctx, LogNewsInserted, zap.Int64("count", inserted), zap.String("file", seedFile))
	return nil
}
