// Package cache содержит хранилище отозванных сессий в Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"newsnotes/internal/users/ports/services"
	"newsnotes/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodRevoke    = "revoke"
	LogMethodIsRevoked = "is_revoked"

	LogSessionRevoked = "session revoked"
	LogSessionExpired = "session already expired, nothing to revoke"

	ErrorFailedToRevoke = "failed to revoke session in redis"
	ErrorFailedToCheck  = "failed to check session in redis"
)

const revokedKeyPrefix = "session:revoked:"

// RedisSessionStore реализует SessionStore на Redis.
// Запись живет ровно столько, сколько оставалось жить сессии.
type RedisSessionStore struct {
	client redis.Cmdable
}

// NewRedisSessionStore создает хранилище поверх клиента Redis.
func NewRedisSessionStore(client redis.Cmdable) services.SessionStore {
	return &RedisSessionStore{client: client}
}

func revokedKey(sessionID string) string {
	return revokedKeyPrefix + sessionID
}

// Revoke помечает сессию отозванной на время ttl.
func (s *RedisSessionStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRevoke), zap.String("session_id", sessionID))

	if ttl <= 0 {
		log.Debug(ctx, LogSessionExpired)
		return nil
	}

	if err := s.client.Set(ctx, revokedKey(sessionID), 1, ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRevoke, err)
	}

	log.Debug(ctx, LogSessionRevoked, zap.Duration("ttl", ttl))
	return nil
}

// IsRevoked сообщает, была ли сессия отозвана.
func (s *RedisSessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(sessionID)).Result()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToCheck,
			zap.String("method", LogMethodIsRevoked),
			zap.String("session_id", sessionID),
			zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToCheck, err)
	}
	return n > 0, nil
}
