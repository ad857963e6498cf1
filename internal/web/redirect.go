package web

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Пути страниц аутентификации, общие для обоих приложений.
const (
	LoginPath  = "/auth/login/"
	LogoutPath = "/auth/logout/"
	SignupPath = "/auth/signup/"
	HomePath   = "/"
)

// Redirect отвечает 302 Found на location.
func Redirect(c fiber.Ctx, location string) error {
	c.Set(fiber.HeaderLocation, location)
	return c.SendStatus(fiber.StatusFound)
}

// LoginURL возвращает адрес страницы входа с параметром next.
// Символ "/" в next не экранируется.
func LoginURL(next string) string {
	if next == "" {
		return LoginPath
	}
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext оставляет только локальные пути, иначе возвращает HomePath.
// Путь с управляющими символами отклоняется: браузер вырезает \t и \n из URL,
// и "/\t/host" превращается в "//host".
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return HomePath
	}
	if strings.ContainsFunc(next, isControl) {
		return HomePath
	}
	return next
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}
