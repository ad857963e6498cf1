package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// MaxUsernameLength - максимальная длина имени пользователя.
const MaxUsernameLength = 150

// User представляет зарегистрированного пользователя.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
