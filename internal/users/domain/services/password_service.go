package services

import "errors"

// Ошибки паролей.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// Ограничения длины пароля. bcrypt учитывает только первые 72 байта.
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)
