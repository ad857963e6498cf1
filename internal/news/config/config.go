// Package config описывает конфигурацию новостного сайта.
package config

import (
	"context"
	"errors"
	"fmt"

	"newsnotes/internal/news/domain/rules"
	"newsnotes/pkg/config"
	"newsnotes/pkg/db/postgres"
	"newsnotes/pkg/db/redis"
)

// ServiceName - имя сервиса в логах и заголовке страниц.
const ServiceName = "news"

// ErrInvalidHomePageCount возвращается, если NEWS_HOME_PAGE_COUNT меньше 1.
var ErrInvalidHomePageCount = errors.New("home page count must be positive")

// Config представляет конфигурацию новостного сайта.
type Config struct {
	HTTP          config.HTTPConfig     `yaml:"http" env-prefix:"NEWS_"`
	Postgres      postgres.Config       `yaml:"postgres" env-prefix:"NEWS_"`
	Redis         redis.Config          `yaml:"redis" env-prefix:"NEWS_"`
	Session       config.SessionConfig  `yaml:"session" env-prefix:"NEWS_"`
	Logging       config.LoggingConfig  `yaml:"logging" env-prefix:"NEWS_"`
	Shutdown      config.ShutdownConfig `yaml:"shutdown" env-prefix:"NEWS_"`
	News          NewsConfig            `yaml:"news" env-prefix:"NEWS_"`
	MigrationsDir string                `yaml:"migrations_dir" env:"NEWS_MIGRATIONS_DIR" env-default:"migrations/news"`
}

// NewsConfig содержит настройки ленты и модерации комментариев.
type NewsConfig struct {
	HomePageCount int      `yaml:"home_page_count" env:"HOME_PAGE_COUNT" env-default:"10"`
	BadWords      []string `yaml:"bad_words" env:"MODERATION_BAD_WORDS" env-default:"редиска,негодяй" env-separator:","`
	Warning       string   `yaml:"warning" env:"MODERATION_WARNING" env-default:"Не ругайтесь!"`
}

// Moderator возвращает проверку комментариев по настроенным словам.
func (n *NewsConfig) Moderator() rules.Moderator {
	return rules.NewModerator(n.BadWords, n.Warning)
}

// Load загружает конфигурацию из .env файла envPath и окружения процесса.
func Load(ctx context.Context, envPath string) (*Config, error) {
	cfg, err := config.Load[Config](ctx, ServiceName, envPath)
	if err != nil {
		return nil, err
	}
	if cfg.News.HomePageCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHomePageCount, cfg.News.HomePageCount)
	}
	return cfg, nil
}
