package services

import (
	"context"

	"newsnotes/internal/users/domain/services"
)

// TokenService выпускает и проверяет сессионные токены.
type TokenService interface {
	GenerateSessionToken(ctx context.Context, userID, username string) (*services.Session, error)

	ValidateSessionToken(ctx context.Context, token string) (*services.JWTClaims, error)
}
