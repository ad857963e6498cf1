package postgres

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"newsnotes/pkg/logger"
	"newsnotes/pkg/retry"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrGetPath                 = "failed to get migrations path"
	ErrConnect                 = "failed to connect to database"

	LogMigrationStarting = "starting database migrations"
)

const filePrefix = "file://"

// MigrateDSN выполняет миграции базы данных из указанного пути.
// Ошибка самих миграций помечена как постоянная, ошибку подключения можно повторить.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	log := logger.Log(ctx)

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", migrationsPath))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return retry.Permanent(fmt.Errorf("%s: %w", ErrApplyMigrations, err))
	}

	log.Info(ctx, LogMigrationsApplied)
	return nil
}

// MigrationsSource превращает каталог с миграциями в URL источника file://.
func MigrationsSource(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filePrefix + dir, nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return filePrefix + absPath, nil
}

// Open применяет миграции из migrationsDir и открывает пул соединений.
func Open(ctx context.Context, cfg *Config, migrationsDir string) (*Database, error) {
	log := logger.Log(ctx)

	source, err := MigrationsSource(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("migrations_path", source))

	migrateUp := func(ctx context.Context) error {
		return MigrateDSN(ctx, cfg.GetConnectionURL(), source)
	}
	if err := retry.Do(ctx, "postgres migrations", retry.DefaultPolicy(), migrateUp); err != nil {
		return nil, err
	}

	database, err := New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}
	return database, nil
}
