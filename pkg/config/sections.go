package config

import (
	"fmt"
	"time"

	"newsnotes/pkg/logger"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"LOGGER_MODE" env-default:"development"`
}

// GetEnvironment преобразует строку режима в logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == string(logger.Production) {
		return logger.Production
	}
	return logger.Development
}

// ShutdownConfig содержит настройки для graceful shutdown.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout возвращает timeout как time.Duration.
func (s *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// SessionConfig содержит настройки сессий и хеширования паролей.
type SessionConfig struct {
	SecretKey  string `yaml:"secret_key" env:"SESSION_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	TTL        string `yaml:"ttl" env:"SESSION_TTL" env-default:"336h"`
	CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"sessionid"`
	Secure     bool   `yaml:"secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"SESSION_BCRYPT_COST" env-default:"10"`
}

// GetTTL возвращает время жизни сессии.
func (s *SessionConfig) GetTTL() time.Duration {
	duration, err := time.ParseDuration(s.TTL)
	if err != nil || duration <= 0 {
		return 14 * 24 * time.Hour
	}
	return duration
}
