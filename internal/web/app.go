package web

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// AppConfig - параметры HTTP приложения.
type AppConfig struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewApp создает fiber приложение с общими шаблонами, обработчиком ошибок
// и middleware запроса. Маршруты регистрирует вызывающий код.
func NewApp(views fiber.Views, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		Views:        views,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	app.Use(NewRequestIDMiddleware())
	app.Use(NewLoggerMiddleware())
	app.Use(NewRecoveryMiddleware())

	return app
}
