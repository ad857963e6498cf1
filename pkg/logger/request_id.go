package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxRequestIDLength - максимальная длина принимаемого извне идентификатора запроса.
const MaxRequestIDLength = 64

type requestIDKey struct{}

// NewRequestIDContext сохраняет в контексте идентификатор запроса.
// Пустой или недопустимый id (см. ValidRequestID) заменяется новым uuid,
// поэтому в заголовки ответа и в логи попадают только безопасные значения.
func NewRequestIDContext(ctx context.Context, id string) context.Context {
	if !ValidRequestID(id) {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// ValidRequestID допускает непустые id не длиннее MaxRequestIDLength
// из латинских букв, цифр и символов "-", "_", ".", ":".
func ValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}

// WithRequestID закрепляет идентификатор запроса из ctx в полях логгера.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	id, ok := GetRequestID(ctx)
	if !ok {
		return l
	}
	return l.With(zap.String(RequestID, id))
}
