package web

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"newsnotes/internal/access"
	"newsnotes/pkg/logger"
)

// Страницы ошибок.
const (
	PageNotFound      = "errors/404"
	PageInternalError = "errors/500"
)

// Константы для логирования.
const (
	LogRequestFailed       = "request failed"
	LogRenderErrorPageFail = "failed to render error page"
)

// ErrorHandler переводит ошибки обработчиков в HTTP ответы:
// ErrAuthenticationRequired - редирект на вход, ErrNotFound - 404,
// *fiber.Error - его код, остальное - 500.
func ErrorHandler(c fiber.Ctx, err error) error {
	ctx := RequestContext(c)

	if errors.Is(err, access.ErrAuthenticationRequired) {
		return Redirect(c, LoginURL(c.OriginalURL()))
	}

	if errors.Is(err, access.ErrNotFound) {
		return renderStatus(c, fiber.StatusNotFound, PageNotFound)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code == fiber.StatusNotFound {
			return renderStatus(c, fiber.StatusNotFound, PageNotFound)
		}
		return c.Status(fiberErr.Code).SendString(fiberErr.Message)
	}

	logger.Log(ctx).Error(ctx, LogRequestFailed,
		zap.String("path", c.Path()),
		zap.String("http_method", c.Method()),
		zap.Error(err))

	return renderStatus(c, fiber.StatusInternalServerError, PageInternalError)
}

func renderStatus(c fiber.Ctx, status int, page string) error {
	c.Status(status)
	if err := c.Render(page, Page(c, nil)); err != nil {
		ctx := RequestContext(c)
		logger.Log(ctx).Error(ctx, LogRenderErrorPageFail, zap.String("page", page), zap.Error(err))
		return c.Status(status).SendString(http.StatusText(status))
	}
	return nil
}
