// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"newsnotes/internal/access"
	"newsnotes/internal/notes/domain/entities"
	"newsnotes/internal/notes/domain/rules"
	"newsnotes/internal/notes/ports/api"
	"newsnotes/internal/notes/ports/repositories"
	"newsnotes/pkg/logger"
)

// Поля формы заметки.
const (
	FieldTitle = "title"
	FieldText  = "text"
)

// Сообщения ошибок формы заметки.
const (
	MsgRequired     = "Обязательное поле."
	MsgTitleTooLong = "Убедитесь, что это значение содержит не более 100 символов."
)

const (
	methodList   = "List"
	methodGet    = "Get"
	methodCreate = "Create"
	methodUpdate = "Update"
	methodDelete = "Delete"

	msgNoteRejected = "note form rejected"
	msgNoteCreated  = "note created"
	msgNoteUpdated  = "note updated"
	msgNoteDeleted  = "note deleted"

	errCtxAuthentication = "checking identity"
	errCtxValidating     = "validating note"
	errCtxListingNotes   = "listing notes"
	errCtxLoadingNote    = "loading note"
	errCtxCreatingNote   = "creating note"
	errCtxUpdatingNote   = "updating note"
	errCtxDeletingNote   = "deleting note"
	msgErrListingNotes   = "failed to list notes"
	msgErrLoadingNote    = "failed to load note"
	msgErrCreatingNote   = "failed to create note"
	msgErrUpdatingNote   = "failed to update note"
	msgErrDeletingNote   = "failed to delete note"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) api.NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// List возвращает заметки who.
func (uc *NoteUseCase) List(ctx context.Context, who access.Identity) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodList))

	if err := who.Require(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxAuthentication, err)
	}

	notes, err := uc.noteRepo.ListByAuthor(ctx, who.UserID)
	if err != nil {
		log.Error(ctx, msgErrListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	return rules.OwnerListing(notes, who), nil
}

// Get возвращает заметку who по slug. Чужая заметка не найдена.
func (uc *NoteUseCase) Get(ctx context.Context, who access.Identity, slug string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGet), zap.String("slug", slug))

	if err := who.Require(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxAuthentication, err)
	}

	note, err := uc.noteRepo.GetBySlug(ctx, slug, who.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxLoadingNote, access.ErrNotFound)
		}
		log.Error(ctx, msgErrLoadingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingNote, err)
	}

	return note, nil
}

// Create создает заметку от имени who.
func (uc *NoteUseCase) Create(ctx context.Context, who access.Identity, in api.NoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate))

	if err := who.Require(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxAuthentication, err)
	}

	in = normalize(in)
	if errs := validateNote(in); len(errs) > 0 {
		log.Debug(ctx, msgNoteRejected, zap.Error(errs))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, errs)
	}

	var (
		slug    string
		created *entities.Note
	)
	err := uc.noteRepo.WithinTx(ctx, func(store repositories.NoteStore) error {
		var err error
		slug, err = rules.AssignSlug(in.Title, in.Slug, func(s string) (bool, error) {
			return store.SlugExists(ctx, s, 0)
		})
		if err != nil {
			return err
		}

		created, err = store.Insert(ctx, &entities.Note{
			Title:    in.Title,
			Text:     in.Text,
			Slug:     slug,
			AuthorID: who.UserID,
		})
		return err
	})
	if err != nil {
		return nil, uc.writeError(ctx, log, errCtxCreatingNote, msgErrCreatingNote, slug, err)
	}

	log.Info(ctx, msgNoteCreated, zap.String("slug", created.Slug), zap.String("userID", who.UserID))
	return created, nil
}

// Update меняет заголовок, текст и slug заметки who.
func (uc *NoteUseCase) Update(ctx context.Context, who access.Identity, slug string, in api.NoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdate), zap.String("slug", slug))

	current, err := uc.Get(ctx, who, slug)
	if err != nil {
		return nil, err
	}

	in = normalize(in)
	if errs := validateNote(in); len(errs) > 0 {
		log.Debug(ctx, msgNoteRejected, zap.Error(errs))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, errs)
	}

	var (
		newSlug string
		updated *entities.Note
	)
	err = uc.noteRepo.WithinTx(ctx, func(store repositories.NoteStore) error {
		var err error
		newSlug, err = rules.AssignSlug(in.Title, in.Slug, func(s string) (bool, error) {
			return store.SlugExists(ctx, s, current.ID)
		})
		if err != nil {
			return err
		}

		updated, err = store.Update(ctx, &entities.Note{
			ID:       current.ID,
			Title:    in.Title,
			Text:     in.Text,
			Slug:     newSlug,
			AuthorID: who.UserID,
		})
		return err
	})
	if err != nil {
		return nil, uc.writeError(ctx, log, errCtxUpdatingNote, msgErrUpdatingNote, newSlug, err)
	}

	log.Info(ctx, msgNoteUpdated, zap.String("newSlug", updated.Slug), zap.String("userID", who.UserID))
	return updated, nil
}

// Delete удаляет заметку who.
func (uc *NoteUseCase) Delete(ctx context.Context, who access.Identity, slug string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDelete), zap.String("slug", slug))

	note, err := uc.Get(ctx, who, slug)
	if err != nil {
		return err
	}

	if err := uc.noteRepo.Delete(ctx, note.ID, who.UserID); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return fmt.Errorf("%s: %w", errCtxDeletingNote, access.ErrNotFound)
		}
		log.Error(ctx, msgErrDeletingNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	log.Info(ctx, msgNoteDeleted, zap.String("userID", who.UserID))
	return nil
}

// writeError переводит ошибку транзакции записи в ошибку сценария.
func (uc *NoteUseCase) writeError(ctx context.Context, log *logger.Logger, errCtx, msg, slug string, err error) error {
	if _, ok := access.AsFieldErrors(err); ok {
		log.Debug(ctx, msgNoteRejected, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxValidating, err)
	}
	if errors.Is(err, entities.ErrSlugTaken) {
		return fmt.Errorf("%s: %w", errCtxValidating, rules.SlugTaken(slug))
	}
	if errors.Is(err, entities.ErrNoteNotFound) {
		return fmt.Errorf("%s: %w", errCtx, access.ErrNotFound)
	}
	log.Error(ctx, msg, zap.Error(err))
	return fmt.Errorf("%s: %w", errCtx, err)
}

func normalize(in api.NoteInput) api.NoteInput {
	return api.NoteInput{
		Title: strings.TrimSpace(in.Title),
		Text:  strings.TrimSpace(in.Text),
		Slug:  strings.TrimSpace(in.Slug),
	}
}

func validateNote(in api.NoteInput) access.FieldErrors {
	var errs access.FieldErrors

	switch {
	case in.Title == "":
		errs = errs.Add(access.NewValidationError(FieldTitle, MsgRequired))
	case utf8.RuneCountInString(in.Title) > entities.MaxTitleLength:
		errs = errs.Add(access.NewValidationError(FieldTitle, MsgTitleTooLong))
	}

	if in.Text == "" {
		errs = errs.Add(access.NewValidationError(FieldText, MsgRequired))
	}

	return errs
}
