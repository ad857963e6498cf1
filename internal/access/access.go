// Package access описывает общие для обоих приложений правила доступа:
// кто выполняет запрос и какие ошибки возвращаются при нарушении прав.
package access

import (
	"context"
	"errors"
	"strings"
)

// Ошибки доступа.
var (
	// ErrAuthenticationRequired возвращается анонимному пользователю на защищенном действии.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrNotFound возвращается и для отсутствующего объекта, и для чужого.
	ErrNotFound = errors.New("not found")
)

// Identity - пользователь, от имени которого выполняется запрос.
// Нулевое значение соответствует анонимному пользователю.
type Identity struct {
	UserID   string
	Username string
}

// Anonymous возвращает анонимную Identity.
func Anonymous() Identity {
	return Identity{}
}

// IsAnonymous сообщает, что пользователь не аутентифицирован.
func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}

// Owns проверяет, что authorID принадлежит этому пользователю.
func (i Identity) Owns(authorID string) bool {
	return !i.IsAnonymous() && i.UserID == authorID
}

// Require возвращает ErrAuthenticationRequired для анонимного пользователя.
func (i Identity) Require() error {
	if i.IsAnonymous() {
		return ErrAuthenticationRequired
	}
	return nil
}

type identityKey struct{}

// WithIdentity сохраняет Identity в контексте.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// FromContext возвращает Identity из контекста или анонимную.
func FromContext(ctx context.Context) Identity {
	if ctx == nil {
		return Anonymous()
	}
	if identity, ok := ctx.Value(identityKey{}).(Identity); ok {
		return identity
	}
	return Anonymous()
}

// ValidationError - ошибка значения поля формы.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NewValidationError создает ошибку поля.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// FieldErrors - набор ошибок формы, сгруппированных по полям.
type FieldErrors []*ValidationError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

// Add добавляет ошибку, если она не nil.
func (e FieldErrors) Add(err *ValidationError) FieldErrors {
	if err == nil {
		return e
	}
	return append(e, err)
}

// Err возвращает nil для пустого набора.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ByField возвращает сообщения, сгруппированные по полям.
func (e FieldErrors) ByField() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// AsFieldErrors извлекает ошибки полей из err.
// Возвращает false, если err не является ошибкой валидации.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var many FieldErrors
	if errors.As(err, &many) {
		return many, true
	}
	var one *ValidationError
	if errors.As(err, &one) {
		return FieldErrors{one}, true
	}
	return nil, false
}
