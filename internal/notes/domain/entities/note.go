// Package entities содержит сущности сайта заметок.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена заметок.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrSlugTaken    = errors.New("slug already taken")
)

// Ограничения полей заметки.
const (
	MaxTitleLength = 100
	MaxSlugLength  = 100
)

// Note - личная заметка. Видна и изменяема только автором.
type Note struct {
	ID        int64
	Title     string
	Text      string
	Slug      string
	AuthorID  string
	CreatedAt time.Time
}
