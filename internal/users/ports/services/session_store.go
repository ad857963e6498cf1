package services

import (
	"context"
	"time"
)

// SessionStore хранит отозванные сессии до истечения их срока.
type SessionStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error

	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
