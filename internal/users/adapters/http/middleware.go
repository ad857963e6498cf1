package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"newsnotes/internal/access"
	"newsnotes/internal/users/domain/services"
	"newsnotes/internal/web"
	"newsnotes/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionRejected = "session cookie rejected"
)

// SessionResolver определяет пользователя по токену сессии.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (access.Identity, error)
}

// NewAuthenticateMiddleware определяет пользователя по cookie сессии и сохраняет
// Identity в контексте запроса. Недействительная cookie удаляется.
func NewAuthenticateMiddleware(resolver SessionResolver, cookieName string) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return c.Next()
		}

		requestCtx := web.RequestContext(c)
		identity, err := resolver.Resolve(requestCtx, token)
		if err != nil {
			if !errors.Is(err, services.ErrEmptySession) {
				logger.Log(requestCtx).Debug(requestCtx, LogSessionRejected, zap.Error(err))
			}
			c.ClearCookie(cookieName)
			return c.Next()
		}

		web.SetRequestContext(c, access.WithIdentity(requestCtx, identity))
		return c.Next()
	}
}
