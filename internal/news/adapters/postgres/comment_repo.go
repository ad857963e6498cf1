package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"newsnotes/internal/news/domain/entities"
	"newsnotes/internal/news/ports/repositories"
	"newsnotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	msgCommentNotFound     = "comment not found or not owned"
	msgCommentNewsNotFound = "comment refers to missing news"

	errCreatingComment = "error creating comment"
	errListingComments = "error listing comments"
	errScanningComment = "error scanning comment row"
	errFindingComment  = "error finding comment"
	errUpdatingComment = "error updating comment"
	errDeletingComment = "error deleting comment"
)

// CommentRepository реализует repositories.CommentRepository для Postgres.
type CommentRepository struct {
	pool PgxPoolInterface
}

// NewCommentRepository создает новый экземпляр репозитория комментариев.
func NewCommentRepository(pool PgxPoolInterface) repositories.CommentRepository {
	return &CommentRepository{pool: pool}
}

func scanComment(row pgx.Row, c *entities.Comment) error {
	return row.Scan(&c.ID, &c.NewsID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt)
}

// Create сохраняет комментарий.
func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "Create"))

	query := `
        WITH inserted AS (
            INSERT INTO comments (news_id, author_id, text)
            VALUES ($1, $2, $3)
            RETURNING id, news_id, author_id, text, created_at
        )
        SELECT i.id, i.news_id, i.author_id, u.username, i.text, i.created_at
        FROM inserted i
        JOIN users u ON u.id = i.author_id
    `

	var created entities.Comment
	err := scanComment(r.pool.QueryRow(ctx, query, comment.NewsID, comment.AuthorID, comment.Text), &created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			log.Debug(ctx, msgCommentNewsNotFound, zap.Int64("news_id", comment.NewsID))
			return nil, entities.ErrNewsNotFound
		}
		log.Error(ctx, errCreatingComment, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCreatingComment, err)
	}

	return &created, nil
}

// ListByNews возвращает комментарии новости от старых к новым.
func (r *CommentRepository) ListByNews(ctx context.Context, newsID int64) ([]entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "ListByNews"))

	query := `
        SELECT c.id, c.news_id, c.author_id, u.username, c.text, c.created_at
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.news_id = $1
        ORDER BY c.created_at, c.id
    `

	rows, err := r.pool.Query(ctx, query, newsID)
	if err != nil {
		log.Error(ctx, errListingComments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListingComments, err)
	}
	defer rows.Close()

	var comments []entities.Comment
	for rows.Next() {
		var c entities.Comment
		if err := scanComment(rows, &c); err != nil {
			log.Error(ctx, errScanningComment, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errScanningComment, err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, errListingComments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListingComments, err)
	}

	return comments, nil
}

// GetOwned находит комментарий автора. Чужой комментарий не отличается от отсутствующего.
func (r *CommentRepository) GetOwned(ctx context.Context, id int64, authorID string) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "GetOwned"))

	query := `
        SELECT c.id, c.news_id, c.author_id, u.username, c.text, c.created_at
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.id = $1 AND c.author_id = $2
    `

	var c entities.Comment
	if err := scanComment(r.pool.QueryRow(ctx, query, id, authorID), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgCommentNotFound, zap.Int64("id", id))
			return nil, entities.ErrCommentNotFound
		}
		log.Error(ctx, errFindingComment, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFindingComment, err)
	}

	return &c, nil
}

// UpdateText меняет текст комментария автора. Остальные поля не меняются.
func (r *CommentRepository) UpdateText(ctx context.Context, id int64, authorID, text string) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "UpdateText"))

	query := `
        WITH updated AS (
            UPDATE comments
            SET text = $3
            WHERE id = $1 AND author_id = $2
            RETURNING id, news_id, author_id, text, created_at
        )
        SELECT d.id, d.news_id, d.author_id, u.username, d.text, d.created_at
        FROM updated d
        JOIN users u ON u.id = d.author_id
    `

	var c entities.Comment
	if err := scanComment(r.pool.QueryRow(ctx, query, id, authorID, text), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgCommentNotFound, zap.Int64("id", id))
			return nil, entities.ErrCommentNotFound
		}
		log.Error(ctx, errUpdatingComment, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errUpdatingComment, err)
	}

	return &c, nil
}

// Delete удаляет комментарий автора.
func (r *CommentRepository) Delete(ctx context.Context, id int64, authorID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "comment"), zap.String("method", "Delete"))

	query := `
        DELETE FROM comments
        WHERE id = $1 AND author_id = $2
    `

	result, err := r.pool.Exec(ctx, query, id, authorID)
	if err != nil {
		log.Error(ctx, errDeletingComment, zap.Error(err))
		return fmt.Errorf("%s: %w", errDeletingComment, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, msgCommentNotFound, zap.Int64("id", id))
		return entities.ErrCommentNotFound
	}

	return nil
}
