// Package postgres реализует хранение заметок в Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"newsnotes/internal/notes/domain/entities"
	"newsnotes/internal/notes/ports/repositories"
	"newsnotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	msgNoteNotFound     = "note not found or not owned by user"
	msgSlugViolation    = "slug unique constraint violated"
	msgRollbackFailed   = "failed to rollback transaction"
	msgTransactionStart = "starting transaction"

	errListingNotes     = "error listing notes"
	errScanningNote     = "error scanning note row"
	errFindingNote      = "error finding note"
	errCheckingSlug     = "error checking slug"
	errCreatingNote     = "error creating note"
	errUpdatingNote     = "error updating note"
	errDeletingNote     = "error deleting note"
	errBeginTransaction = "error starting transaction"
	errCommitting       = "error committing transaction"
)

const noteColumns = "id, title, text, slug, author_id, created_at"

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

func scanNote(row pgx.Row, n *entities.Note) error {
	return row.Scan(&n.ID, &n.Title, &n.Text, &n.Slug, &n.AuthorID, &n.CreatedAt)
}

// ListByAuthor возвращает заметки автора в порядке создания.
func (r *NoteRepository) ListByAuthor(ctx context.Context, authorID string) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListByAuthor"))

	rows, err := r.pool.Query(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE author_id = $1 ORDER BY id`,
		authorID,
	)
	if err != nil {
		log.Error(ctx, errListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListingNotes, err)
	}
	defer rows.Close()

	notes := make([]entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := scanNote(rows, &note); err != nil {
			log.Error(ctx, errScanningNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errScanningNote, err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, errListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListingNotes, err)
	}

	return notes, nil
}

// GetBySlug находит заметку автора по slug.
func (r *NoteRepository) GetBySlug(ctx context.Context, slug, authorID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetBySlug"))

	var note entities.Note
	err := scanNote(r.pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE slug = $1 AND author_id = $2`,
		slug, authorID,
	), &note)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgNoteNotFound, zap.String("slug", slug))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, errFindingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFindingNote, err)
	}

	return &note, nil
}

// Delete удаляет заметку автора.
func (r *NoteRepository) Delete(ctx context.Context, id int64, authorID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND author_id = $2`,
		id, authorID,
	)
	if err != nil {
		log.Error(ctx, errDeletingNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errDeletingNote, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, msgNoteNotFound, zap.Int64("noteID", id))
		return entities.ErrNoteNotFound
	}

	return nil
}

// WithinTx выполняет fn в транзакции. Ошибка fn откатывает транзакцию.
func (r *NoteRepository) WithinTx(ctx context.Context, fn func(store repositories.NoteStore) error) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.WithinTx"))
	log.Debug(ctx, msgTransactionStart)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, errBeginTransaction, zap.Error(err))
		return fmt.Errorf("%s: %w", errBeginTransaction, err)
	}

	if err := fn(&noteStore{db: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error(ctx, msgRollbackFailed, zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, errCommitting, zap.Error(err))
		return fmt.Errorf("%s: %w", errCommitting, err)
	}

	return nil
}

// noteStore выполняет запись заметок в рамках транзакции.
type noteStore struct {
	db querier
}

func (s *noteStore) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM notes WHERE slug = $1 AND id <> $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		logger.Log(ctx).Error(ctx, errCheckingSlug, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCheckingSlug, err)
	}
	return exists, nil
}

func (s *noteStore) Insert(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.Insert"))

	var created entities.Note
	err := scanNote(s.db.QueryRow(ctx,
		`INSERT INTO notes (title, text, slug, author_id) VALUES ($1, $2, $3, $4)
         RETURNING `+noteColumns,
		note.Title, note.Text, note.Slug, note.AuthorID,
	), &created)
	if err != nil {
		if isSlugViolation(err) {
			log.Debug(ctx, msgSlugViolation, zap.String("slug", note.Slug))
			return nil, entities.ErrSlugTaken
		}
		log.Error(ctx, errCreatingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCreatingNote, err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", created.ID))
	return &created, nil
}

func (s *noteStore) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteStore.Update"))

	var updated entities.Note
	err := scanNote(s.db.QueryRow(ctx,
		`UPDATE notes SET title = $1, text = $2, slug = $3
         WHERE id = $4 AND author_id = $5
         RETURNING `+noteColumns,
		note.Title, note.Text, note.Slug, note.ID, note.AuthorID,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgNoteNotFound, zap.Int64("noteID", note.ID))
			return nil, entities.ErrNoteNotFound
		}
		if isSlugViolation(err) {
			log.Debug(ctx, msgSlugViolation, zap.String("slug", note.Slug))
			return nil, entities.ErrSlugTaken
		}
		log.Error(ctx, errUpdatingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errUpdatingNote, err)
	}

	return &updated, nil
}

func isSlugViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
