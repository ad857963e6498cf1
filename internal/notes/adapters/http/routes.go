package http

import (
	"github.com/gofiber/fiber/v3"

	"newsnotes/internal/web"
)

// RegisterRoutes регистрирует маршруты сайта заметок.
// Все маршруты, кроме главной, доступны только после входа.
func RegisterRoutes(router fiber.Router, h *Handler) {
	router.Get("/", h.Home)

	router.Get("/notes", h.List, web.LoginRequired)
	router.Get("/done", h.Success, web.LoginRequired)

	router.Get("/add", h.AddForm, web.LoginRequired)
	router.Post("/add", h.Create, web.LoginRequired)

	router.Get("/note/:slug", h.Detail, web.LoginRequired)

	router.Get("/edit/:slug", h.EditForm, web.LoginRequired)
	router.Post("/edit/:slug", h.Update, web.LoginRequired)

	router.Get("/delete/:slug", h.DeleteForm, web.LoginRequired)
	router.Post("/delete/:slug", h.Delete, web.LoginRequired)
	router.Delete("/delete/:slug", h.Delete, web.LoginRequired)
}
