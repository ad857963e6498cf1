package api

import (
	"context"

	"newsnotes/internal/access"
	"newsnotes/internal/users/domain/entities"
	"newsnotes/internal/users/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	SignUp(ctx context.Context, username, password1, password2 string) (*entities.User, error)

	Login(ctx context.Context, username, password string) (*services.Session, error)

	Logout(ctx context.Context, token string) error

	Resolve(ctx context.Context, token string) (access.Identity, error)
}
