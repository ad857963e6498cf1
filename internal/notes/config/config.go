// Package config описывает конфигурацию сайта заметок.
package config

import (
	"context"

	"newsnotes/pkg/config"
	"newsnotes/pkg/db/postgres"
	"newsnotes/pkg/db/redis"
)

// ServiceName - имя сервиса в логах и заголовке страниц.
const ServiceName = "notes"

// Config представляет конфигурацию сайта заметок.
type Config struct {
	HTTP          config.HTTPConfig     `yaml:"http" env-prefix:"NOTES_"`
	Postgres      postgres.Config       `yaml:"postgres" env-prefix:"NOTES_"`
	Redis         redis.Config          `yaml:"redis" env-prefix:"NOTES_"`
	Session       config.SessionConfig  `yaml:"session" env-prefix:"NOTES_"`
	Logging       config.LoggingConfig  `yaml:"logging" env-prefix:"NOTES_"`
	Shutdown      config.ShutdownConfig `yaml:"shutdown" env-prefix:"NOTES_"`
	MigrationsDir string                `yaml:"migrations_dir" env:"NOTES_MIGRATIONS_DIR" env-default:"migrations/notes"`
}

// Load загружает конфигурацию из .env файла envPath и окружения процесса.
func Load(ctx context.Context, envPath string) (*Config, error) {
	return config.Load[Config](ctx, ServiceName, envPath)
}
