package rules

import (
	"strings"

	"newsnotes/internal/access"
)

// FieldText - поле формы комментария.
const FieldText = "text"

// Значения модерации по умолчанию.
const DefaultWarning = "Не ругайтесь!"

// DefaultBadWords возвращает список запрещенных слов по умолчанию.
func DefaultBadWords() []string {
	return []string{"редиска", "негодяй"}
}

// Moderator проверяет текст комментария на запрещенные слова.
type Moderator struct {
	Terms   []string
	Warning string
}

// NewModerator создает модератор. Пустые значения заменяются значениями по умолчанию.
func NewModerator(terms []string, warning string) Moderator {
	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		if term = strings.TrimSpace(term); term != "" {
			cleaned = append(cleaned, term)
		}
	}
	if len(cleaned) == 0 {
		cleaned = DefaultBadWords()
	}
	if warning == "" {
		warning = DefaultWarning
	}
	return Moderator{Terms: cleaned, Warning: warning}
}

// Check возвращает ошибку поля text, если текст содержит запрещенное слово.
// Сравнение чувствительно к регистру.
func (m Moderator) Check(text string) *access.ValidationError {
	for _, term := range m.Terms {
		if term != "" && strings.Contains(text, term) {
			return access.NewValidationError(FieldText, m.Warning)
		}
	}
	return nil
}
