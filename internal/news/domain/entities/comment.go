package entities

import "time"

// Comment - комментарий пользователя к новости.
type Comment struct {
	ID         int64
	NewsID     int64
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}
