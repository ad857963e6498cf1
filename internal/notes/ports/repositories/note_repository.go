// Package repositories определяет интерфейсы хранилища заметок.
package repositories

import (
	"context"

	"newsnotes/internal/notes/domain/entities"
)

// NoteStore - операции записи, выполняемые внутри одной транзакции.
type NoteStore interface {
	// SlugExists сообщает, занят ли slug заметкой, отличной от excludeID.
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Insert(ctx context.Context, note *entities.Note) (*entities.Note, error)
	// Update меняет title, text и slug заметки автора note.AuthorID.
	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)
}

// NoteRepository определяет интерфейс для работы с репозиторием заметок.
// Все выборки ограничены автором: чужая заметка неотличима от отсутствующей.
type NoteRepository interface {
	ListByAuthor(ctx context.Context, authorID string) ([]entities.Note, error)
	GetBySlug(ctx context.Context, slug, authorID string) (*entities.Note, error)
	Delete(ctx context.Context, id int64, authorID string) error
	WithinTx(ctx context.Context, fn func(store NoteStore) error) error
}
