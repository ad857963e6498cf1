package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newsnotes/internal/access"
	"newsnotes/internal/notes/app"
	"newsnotes/internal/notes/domain/entities"
	"newsnotes/internal/notes/domain/rules"
	"newsnotes/internal/notes/ports/api"
	"newsnotes/pkg/logger"
)

var errDatabaseOperation = errors.New("database error")

type notesFixture struct {
	ctx     context.Context
	repo    *mockNoteRepository
	store   *mockNoteStore
	useCase api.NoteUseCase
	author  access.Identity
	another access.Identity
	note    *entities.Note
}

func setupNotes(t *testing.T) notesFixture {
	t.Helper()
	store := new(mockNoteStore)
	fx := notesFixture{
		ctx:     logger.NewContext(context.Background(), logger.NewNop()),
		repo:    &mockNoteRepository{store: store},
		store:   store,
		author:  access.Identity{UserID: "author", Username: "Автор"},
		another: access.Identity{UserID: "another", Username: "Автор 2"},
	}
	fx.note = &entities.Note{ID: 1, Title: "Заголовок", Text: "Текст", Slug: "zagolovok", AuthorID: fx.author.UserID}
	fx.useCase = app.NewNoteUseCase(fx.repo)
	t.Cleanup(func() {
		fx.repo.AssertExpectations(t)
		fx.store.AssertExpectations(t)
	})
	return fx
}

func TestList(t *testing.T) {
	t.Run("only own notes", func(t *testing.T) {
		fx := setupNotes(t)
		fx.repo.On("ListByAuthor", fx.ctx, fx.another.UserID).Return([]entities.Note{}, nil)

		notes, err := fx.useCase.List(fx.ctx, fx.another)
		require.NoError(t, err)
		assert.NotContains(t, notes, *fx.note)
	})

	t.Run("author sees the note", func(t *testing.T) {
		fx := setupNotes(t)
		fx.repo.On("ListByAuthor", fx.ctx, fx.author.UserID).Return([]entities.Note{*fx.note}, nil)

		notes, err := fx.useCase.List(fx.ctx, fx.author)
		require.NoError(t, err)
		assert.Equal(t, []entities.Note{*fx.note}, notes)
	})

	t.Run("anonymous", func(t *testing.T) {
		fx := setupNotes(t)

		_, err := fx.useCase.List(fx.ctx, access.Anonymous())
		assert.ErrorIs(t, err, access.ErrAuthenticationRequired)
	})
}

func TestGet(t *testing.T) {
	t.Run("foreign note is not found", func(t *testing.T) {
		fx := setupNotes(t)
		fx.repo.On("GetBySlug", fx.ctx, "zagolovok", fx.another.UserID).Return(nil, entities.ErrNoteNotFound)

		_, err := fx.useCase.Get(fx.ctx, fx.another, "zagolovok")
		assert.ErrorIs(t, err, access.ErrNotFound)
	})

	t.Run("database error is not a 404", func(t *testing.T) {
		fx := setupNotes(t)
		fx.repo.On("GetBySlug", fx.ctx, "zagolovok", fx.author.UserID).Return(nil, errDatabaseOperation)

		_, err := fx.useCase.Get(fx.ctx, fx.author, "zagolovok")
		assert.ErrorIs(t, err, errDatabaseOperation)
		assert.NotErrorIs(t, err, access.ErrNotFound)
	})
}

func TestCreate(t *testing.T) {
	t.Run("explicit slug and author from identity", func(t *testing.T) {
		fx := setupNotes(t)
		want := &entities.Note{Title: "Заголовок", Text: "Текст записи", Slug: "note-slug", AuthorID: fx.author.UserID}

		fx.repo.On("WithinTx", fx.ctx).Return(nil)
		fx.store.On("SlugExists", fx.ctx, "note-slug", int64(0)).Return(false, nil)
		fx.store.On("Insert", fx.ctx, want).Return(want, nil)

		created, err := fx.useCase.Create(fx.ctx, fx.author, api.NoteInput{
			Title: "Заголовок", Text: "Текст записи", Slug: "note-slug",
		})
		require.NoError(t, err)
		assert.Equal(t, fx.author.UserID, created.AuthorID)
		assert.Equal(t, "note-slug", created.Slug)
	})

	t.Run("empty slug is derived from the title", func(t *testing.T) {
		fx := setupNotes(t)
		want := &entities.Note{Title: "Заголовок", Text: "Текст записи", Slug: "zagolovok", AuthorID: fx.author.UserID}

		fx.repo.On("WithinTx", fx.ctx).Return(nil)
		fx.store.On("SlugExists", fx.ctx, "zagolovok", int64(0)).Return(false, nil)
		fx.store.On("Insert", fx.ctx, want).Return(want, nil)

		created, err := fx.useCase.Create(fx.ctx, fx.author, api.NoteInput{Title: "Заголовок", Text: "Текст записи"})
		require.NoError(t, err)
		assert.Equal(t, "zagolovok", created.Slug)
	})

	t.Run("duplicate slug is rejected", func(t *testing.T) {
		fx := setupNotes(t)
		fx.repo.On("WithinTx", fx.ctx).Return(nil)
		fx.store.On("SlugExists", fx.ctx, "zagolovok", int64(0)).Return(true, nil)

		_, err := fx.useCase.Create(fx.ctx, fx.another, api.NoteInput{
			Title: "Заголовок 2", Text: "Текст записи", Slug: "zagolovok",
		})
		errs, ok := access.AsFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, map[string][]string{rules.FieldSlug: {"zagolovok" + rules.SlugWarning}}, errs.ByField())
		fx.store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("concurrent insert of the same slug", func(t *testing.T) {
		fx := setupNotes(t)
		fx.repo.On("WithinTx", fx.ctx).Return(nil)
		fx.store.On("SlugExists", fx.ctx, "zagolovok", int64(0)).Return(false, nil)
		fx.store.On("Insert", fx.ctx, mock.Anything).Return(nil, entities.ErrSlugTaken)

		_, err := fx.useCase.Create(fx.ctx, fx.author, api.NoteInput{Title: "Заголовок", Text: "Текст"})
		errs, ok := access.AsFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, "zagolovok"+rules.SlugWarning, errs[0].Message)
	})

	t.Run("anonymous", func(t *testing.T) {
		fx := setupNotes(t)

		_, err := fx.useCase.Create(fx.ctx, access.Anonymous(), api.NoteInput{Title: "Заголовок", Text: "Текст"})
		assert.ErrorIs(t, err, access.ErrAuthenticationRequired)
		fx.repo.AssertNotCalled(t, "WithinTx", mock.Anything)
	})

	t.Run("required fields", func(t *testing.T) {
		fx := setupNotes(t)

		_, err := fx.useCase.Create(fx.ctx, fx.author, api.NoteInput{Title: "  "})
		errs, ok := access.AsFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, map[string][]string{
			app.FieldTitle: {app.MsgRequired},
			app.FieldText:  {app.MsgRequired},
		}, errs.ByField())
	})

	t.Run("database failure", func(t *testing.T) {
		fx := setupNotes(t)
		fx.repo.On("WithinTx", fx.ctx).Return(nil)
		fx.store.On("SlugExists", fx.ctx, "zagolovok", int64(0)).Return(false, nil)
		fx.store.On("Insert", fx.ctx, mock.Anything).Return(nil, errDatabaseOperation)

		_, err := fx.useCase.Create(fx.ctx, fx.author, api.NoteInput{Title: "Заголовок", Text: "Текст"})
		assert.ErrorIs(t, err, errDatabaseOperation)
		_, ok := access.AsFieldErrors(err)
		assert.False(t, ok)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("owner changes only submitted fields", func(t *testing.T) {
		fx := setupNotes(t)
		in := api.NoteInput{Title: "Обновлённый заголовок", Text: "Обновлённый текст записи"}
		want := &entities.Note{
			ID: fx.note.ID, Title: in.Title, Text: in.Text,
			Slug: "obnovlyonnyij-zagolovok", AuthorID: fx.author.UserID,
		}

		fx.repo.On("GetBySlug", fx.ctx, "zagolovok", fx.author.UserID).Return(fx.note, nil)
		fx.repo.On("WithinTx", fx.ctx).Return(nil)
		fx.store.On("SlugExists", fx.ctx, want.Slug, fx.note.ID).Return(false, nil)
		fx.store.On("Update", fx.ctx, want).Return(want, nil)

		updated, err := fx.useCase.Update(fx.ctx, fx.author, "zagolovok", in)
		require.NoError(t, err)
		assert.Equal(t, in.Title, updated.Title)
		assert.Equal(t, in.Text, updated.Text)
		assert.Equal(t, fx.author.UserID, updated.AuthorID)
	})

	t.Run("keeping the own slug is allowed", func(t *testing.T) {
		fx := setupNotes(t)
		in := api.NoteInput{Title: "Заголовок", Text: "Новый текст", Slug: "zagolovok"}
		want := &entities.Note{ID: 1, Title: in.Title, Text: in.Text, Slug: "zagolovok", AuthorID: fx.author.UserID}

		fx.repo.On("GetBySlug", fx.ctx, "zagolovok", fx.author.UserID).Return(fx.note, nil)
		fx.repo.On("WithinTx", fx.ctx).Return(nil)
		fx.store.On("SlugExists", fx.ctx, "zagolovok", int64(1)).Return(false, nil)
		fx.store.On("Update", fx.ctx, want).Return(want, nil)

		_, err := fx.useCase.Update(fx.ctx, fx.author, "zagolovok", in)
		require.NoError(t, err)
	})

	t.Run("non owner cannot edit", func(t *testing.T) {
		fx := setupNotes(t)
		fx.repo.On("GetBySlug", fx.ctx, "zagolovok", fx.another.UserID).Return(nil, entities.ErrNoteNotFound)

		_, err := fx.useCase.Update(fx.ctx, fx.another, "zagolovok", api.NoteInput{Title: "Взлом", Text: "Взлом"})
		assert.ErrorIs(t, err, access.ErrNotFound)
		fx.repo.AssertNotCalled(t, "WithinTx", mock.Anything)
	})

	t.Run("note deleted during update", func(t *testing.T) {
		fx := setupNotes(t)
		fx.repo.On("GetBySlug", fx.ctx, "zagolovok", fx.author.UserID).Return(fx.note, nil)
		fx.repo.On("WithinTx", fx.ctx).Return(nil)
		fx.store.On("SlugExists", fx.ctx, "zagolovok", int64(1)).Return(false, nil)
		fx.store.On("Update", fx.ctx, mock.Anything).Return(nil, entities.ErrNoteNotFound)

		_, err := fx.useCase.Update(fx.ctx, fx.author, "zagolovok", api.NoteInput{Title: "Заголовок", Text: "Текст"})
		assert.ErrorIs(t, err, access.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		fx := setupNotes(t)
		fx.repo.On("GetBySlug", fx.ctx, "zagolovok", fx.author.UserID).Return(fx.note, nil)
		fx.repo.On("Delete", fx.ctx, int64(1), fx.author.UserID).Return(nil)

		require.NoError(t, fx.useCase.Delete(fx.ctx, fx.author, "zagolovok"))
	})

	t.Run("non owner", func(t *testing.T) {
		fx := setupNotes(t)
		fx.repo.On("GetBySlug", fx.ctx, "zagolovok", fx.another.UserID).Return(nil, entities.ErrNoteNotFound)

		err := fx.useCase.Delete(fx.ctx, fx.another, "zagolovok")
		assert.ErrorIs(t, err, access.ErrNotFound)
		fx.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("anonymous", func(t *testing.T) {
		fx := setupNotes(t)

		err := fx.useCase.Delete(fx.ctx, access.Anonymous(), "zagolovok")
		assert.ErrorIs(t, err, access.ErrAuthenticationRequired)
	})
}
