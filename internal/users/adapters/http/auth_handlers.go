// Package http содержит HTTP обработчики регистрации, входа и выхода.
package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"newsnotes/internal/access"
	"newsnotes/internal/users/domain/services"
	"newsnotes/internal/users/ports/api"
	"newsnotes/internal/web"
	"newsnotes/pkg/logger"
)

// Страницы аутентификации.
const (
	PageLogin  = "auth/login"
	PageLogout = "auth/logout"
	PageSignup = "auth/signup"
)

// Константы для логирования.
const (
	LogHandlerLogin  = "auth handler: login"
	LogHandlerLogout = "auth handler: logout"
	LogHandlerSignup = "auth handler: signup"

	ErrorFailedToServeRequest = "failed to serve request"
)

// MsgInvalidLogin - сообщение формы входа при неверных учетных данных.
const MsgInvalidLogin = "Пожалуйста, введите правильные имя пользователя и пароль. Оба поля могут быть чувствительны к регистру."

// CookieConfig - параметры cookie сессии.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	auth   api.AuthUseCase
	cookie CookieConfig
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(auth api.AuthUseCase, cookie CookieConfig) *Handler {
	return &Handler{auth: auth, cookie: cookie}
}

// LoginForm показывает форму входа.
func (h *Handler) LoginForm(c fiber.Ctx) error {
	return c.Render(PageLogin, web.Page(c, fiber.Map{
		"Form": map[string]string{},
		"Next": c.Query("next"),
	}))
}

// Login проверяет учетные данные, выдает cookie сессии и перенаправляет на next.
func (h *Handler) Login(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	username := c.FormValue("username")
	next := c.FormValue("next")
	if next == "" {
		next = c.Query("next")
	}

	session, err := h.auth.Login(requestCtx, username, c.FormValue("password"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Render(PageLogin, web.Page(c, fiber.Map{
				"Form":  map[string]string{"username": username},
				"Next":  next,
				"Error": MsgInvalidLogin,
			}))
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return web.Redirect(c, web.SafeNext(next))
}

// Logout отзывает сессию и удаляет cookie.
func (h *Handler) Logout(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogout)

	if err := h.auth.Logout(requestCtx, c.Cookies(h.cookie.Name)); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	web.SetRequestContext(c, access.WithIdentity(requestCtx, access.Anonymous()))

	return c.Render(PageLogout, web.Page(c, nil))
}

// SignupForm показывает форму регистрации.
func (h *Handler) SignupForm(c fiber.Ctx) error {
	return c.Render(PageSignup, web.Page(c, fiber.Map{
		"Form":   map[string]string{},
		"Errors": map[string][]string{},
	}))
}

// Signup регистрирует пользователя и перенаправляет на страницу входа.
func (h *Handler) Signup(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerSignup)

	username := c.FormValue("username")
	_, err := h.auth.SignUp(requestCtx, username, c.FormValue("password1"), c.FormValue("password2"))
	if err != nil {
		if errs, ok := access.AsFieldErrors(err); ok {
			return c.Render(PageSignup, web.Page(c, fiber.Map{
				"Form":   map[string]string{"username": username},
				"Errors": errs.ByField(),
			}))
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return err
	}

	return web.Redirect(c, web.LoginPath)
}

// RegisterRoutes регистрирует маршруты /auth/.
func RegisterRoutes(router fiber.Router, h *Handler) {
	auth := router.Group("/auth")
	auth.Get("/login", h.LoginForm)
	auth.Post("/login", h.Login)
	auth.Get("/logout", h.Logout)
	auth.Post("/logout", h.Logout)
	auth.Get("/signup", h.SignupForm)
	auth.Post("/signup", h.Signup)
}
