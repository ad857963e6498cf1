package web

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"newsnotes/internal/access"
)

// userContextKey - ключ Locals, под которым хранится контекст запроса
// с request id, логгером и Identity.
const userContextKey = "userContext"

// RequestContext возвращает контекст текущего запроса.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(userContextKey).(context.Context); ok && ctx != nil {
		return ctx
	}
	return c.Context()
}

// SetRequestContext заменяет контекст текущего запроса.
func SetRequestContext(c fiber.Ctx, ctx context.Context) {
	c.Locals(userContextKey, ctx)
}

// CurrentIdentity возвращает пользователя текущего запроса.
func CurrentIdentity(c fiber.Ctx) access.Identity {
	return access.FromContext(RequestContext(c))
}

// Page дополняет данные страницы именем сайта и текущим пользователем.
func Page(c fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	identity := CurrentIdentity(c)
	data["Site"] = c.App().Config().AppName
	data["User"] = identity
	data["IsAuthenticated"] = !identity.IsAnonymous()
	return data
}
