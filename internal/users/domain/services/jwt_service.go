package services

import (
	"errors"
	"time"
)

// Ошибки JWT токенов.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// JWTConfig содержит настройки для JWT сервиса.
type JWTConfig struct {
	SecretKey  []byte
	SessionTTL time.Duration
}

// JWTClaims - данные сессионного токена.
type JWTClaims struct {
	SessionID string
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
