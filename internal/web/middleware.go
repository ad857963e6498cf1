package web

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"newsnotes/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// Константы для логирования.
const (
	LogRequestStarted   = "request started"
	LogRequestCompleted = "request completed"
	LogServerPanic      = "server panic"

	ErrPanicRecovered = "panic recovered"
)

// NewRequestIDMiddleware присваивает запросу идентификатор, сохраняя входящий X-Request-ID.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := logger.NewRequestIDContext(RequestContext(c), c.Get(HeaderRequestID))
		if id, ok := logger.GetRequestID(ctx); ok {
			c.Set(HeaderRequestID, id)
		}
		SetRequestContext(c, ctx)
		return c.Next()
	}
}

// NewLoggerMiddleware логирует начало и завершение запроса.
// Ошибка цепочки обрабатывается здесь, чтобы в лог попал итоговый статус ответа.
func NewLoggerMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", c.Path()),
			zap.String("http_method", c.Method()),
			zap.String("ip", c.IP()),
		)
		log.Debug(requestCtx, LogRequestStarted)

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info(requestCtx, LogRequestCompleted,
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return nil
	}
}

// NewRecoveryMiddleware превращает панику обработчика в ошибку запроса.
func NewRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := RequestContext(c)
				logger.Log(requestCtx).Error(requestCtx, LogServerPanic,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = fmt.Errorf("%s: %v", ErrPanicRecovered, r)
			}
		}()

		return c.Next()
	}
}

// LoginRequired пропускает только аутентифицированных пользователей.
// Регистрируется после обработчика: router.Get(path, handler, web.LoginRequired),
// fiber выполняет middleware-аргументы до обработчика.
func LoginRequired(c fiber.Ctx) error {
	if err := CurrentIdentity(c).Require(); err != nil {
		return err
	}
	return c.Next()
}
