// Package api определяет сценарии сайта заметок, доступные HTTP слою.
package api

import (
	"context"

	"newsnotes/internal/access"
	"newsnotes/internal/notes/domain/entities"
)

// NoteInput - поля формы заметки. Пустой Slug выводится из Title.
type NoteInput struct {
	Title string
	Text  string
	Slug  string
}

// NoteUseCase определяет работу пользователя со своими заметками.
type NoteUseCase interface {
	List(ctx context.Context, who access.Identity) ([]entities.Note, error)
	Get(ctx context.Context, who access.Identity, slug string) (*entities.Note, error)
	Create(ctx context.Context, who access.Identity, in NoteInput) (*entities.Note, error)
	Update(ctx context.Context, who access.Identity, slug string, in NoteInput) (*entities.Note, error)
	Delete(ctx context.Context, who access.Identity, slug string) error
}
