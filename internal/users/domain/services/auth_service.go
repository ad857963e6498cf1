package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionRevoked     = errors.New("session has been revoked")
	ErrEmptySession       = errors.New("session token is empty")
)

// Session - выданная пользователю сессия.
// Token хранится в cookie, ID используется для отзыва.
type Session struct {
	ID        string
	UserID    string
	Username  string
	Token     string
	ExpiresAt time.Time
}
