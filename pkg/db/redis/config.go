package redis

import (
	"strconv"
	"time"
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host           string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"REDIS_POOL_SIZE" env-default:"10"`
	MinIdle        int           `yaml:"min_idle" env:"REDIS_MIN_IDLE" env-default:"2"`
}

// GetAddress возвращает адрес Redis строкой.
func (c *Config) GetAddress() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
