package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"newsnotes/internal/access"
	"newsnotes/internal/notes/domain/entities"
	"newsnotes/pkg/slugify"
)

// FieldSlug - поле формы заметки со slug.
const FieldSlug = "slug"

// Сообщения ошибок поля slug.
const (
	SlugWarning     = " - такой slug уже существует, придумайте уникальное значение!"
	MsgSlugInvalid  = "Значение должно состоять только из латинских букв, цифр, знаков подчеркивания или дефиса."
	MsgSlugTooLong  = "Убедитесь, что это значение содержит не более 100 символов."
	MsgSlugEmpty    = "Не удалось получить slug из заголовка, укажите его вручную."
	errCheckingSlug = "checking slug"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// SlugExists сообщает, занят ли slug другой заметкой.
type SlugExists func(slug string) (bool, error)

// AssignSlug возвращает slug заметки. Явный slug проверяется на формат,
// пустой выводится из заголовка транслитерацией и обрезается до 100 символов.
// Занятый slug дает ошибку поля slug со значением slug + SlugWarning.
func AssignSlug(title, explicit string, exists SlugExists) (string, error) {
	slug := strings.TrimSpace(explicit)
	if slug != "" {
		if utf8.RuneCountInString(slug) > entities.MaxSlugLength {
			return "", access.NewValidationError(FieldSlug, MsgSlugTooLong)
		}
		if !slugPattern.MatchString(slug) {
			return "", access.NewValidationError(FieldSlug, MsgSlugInvalid)
		}
	} else {
		slug = slugify.Truncate(slugify.Slugify(title), entities.MaxSlugLength)
		if slug == "" {
			return "", access.NewValidationError(FieldSlug, MsgSlugEmpty)
		}
	}

	taken, err := exists(slug)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCheckingSlug, err)
	}
	if taken {
		return "", SlugTaken(slug)
	}
	return slug, nil
}

// SlugTaken возвращает ошибку поля для занятого slug.
func SlugTaken(slug string) *access.ValidationError {
	return access.NewValidationError(FieldSlug, slug+SlugWarning)
}
