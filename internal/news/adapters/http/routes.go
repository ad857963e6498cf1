package http

import (
	"github.com/gofiber/fiber/v3"

	"newsnotes/internal/web"
)

// RegisterRoutes регистрирует маршруты новостного сайта.
func RegisterRoutes(router fiber.Router, h *Handler) {
	router.Get("/", h.Home)
	router.Get("/news/:id", h.Detail)
	router.Post("/news/:id", h.CreateComment, web.LoginRequired)

	router.Get("/edit_comment/:id", h.EditCommentForm, web.LoginRequired)
	router.Post("/edit_comment/:id", h.EditComment, web.LoginRequired)

	router.Get("/delete_comment/:id", h.DeleteCommentForm, web.LoginRequired)
	router.Post("/delete_comment/:id", h.DeleteComment, web.LoginRequired)
	router.Delete("/delete_comment/:id", h.DeleteComment, web.LoginRequired)
}
