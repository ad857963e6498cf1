// Package entities содержит сущности новостного сайта.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена новостей.
var (
	ErrNewsNotFound    = errors.New("news not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// MaxTitleLength - максимальная длина заголовка новости.
const MaxTitleLength = 50

// News - новость. Создается только редакцией.
type News struct {
	ID    int64
	Title string
	Text  string
	Date  time.Time
}
