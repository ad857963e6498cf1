package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"newsnotes/internal/news/domain/entities"
	"newsnotes/internal/news/ports/repositories"
	"newsnotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	msgNewsNotFound    = "news not found"
	msgNewsBulkCreated = "news bulk created"

	errListingNews   = "error listing latest news"
	errScanningNews  = "error scanning news row"
	errFindingNews   = "error finding news by id"
	errBulkCreatingN = "error bulk creating news"
)

var newsColumns = []string{"title", "text", "date"}

// NewsRepository реализует repositories.NewsRepository для Postgres.
type NewsRepository struct {
	pool PgxPoolInterface
}

// NewNewsRepository создает новый экземпляр репозитория новостей.
func NewNewsRepository(pool PgxPoolInterface) repositories.NewsRepository {
	return &NewsRepository{pool: pool}
}

// ListLatest возвращает limit самых свежих новостей.
// При limit < 1 лента пуста, запрос не выполняется.
func (r *NewsRepository) ListLatest(ctx context.Context, limit int) ([]entities.News, error) {
	if limit < 1 {
		return []entities.News{}, nil
	}

	log := logger.Log(ctx).With(zap.String("repository", "news"), zap.String("method", "ListLatest"))

	query := `
        SELECT id, title, text, date
        FROM news
        ORDER BY date DESC, id DESC
        LIMIT $1
    `

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		log.Error(ctx, errListingNews, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListingNews, err)
	}
	defer rows.Close()

	news := make([]entities.News, 0, limit)
	for rows.Next() {
		var item entities.News
		if err := rows.Scan(&item.ID, &item.Title, &item.Text, &item.Date); err != nil {
			log.Error(ctx, errScanningNews, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errScanningNews, err)
		}
		news = append(news, item)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, errListingNews, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListingNews, err)
	}

	return news, nil
}

// GetByID находит новость по ID.
func (r *NewsRepository) GetByID(ctx context.Context, id int64) (*entities.News, error) {
	log := logger.Log(ctx).With(zap.String("repository", "news"), zap.String("method", "GetByID"))

	query := `
        SELECT id, title, text, date
        FROM news
        WHERE id = $1
    `

	var item entities.News
	err := r.pool.QueryRow(ctx, query, id).Scan(&item.ID, &item.Title, &item.Text, &item.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgNewsNotFound, zap.Int64("id", id))
			return nil, entities.ErrNewsNotFound
		}
		log.Error(ctx, errFindingNews, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFindingNews, err)
	}

	return &item, nil
}

// BulkCreate вставляет новости одной командой COPY.
func (r *NewsRepository) BulkCreate(ctx context.Context, news []entities.News) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "news"), zap.String("method", "BulkCreate"))

	if len(news) == 0 {
		return 0, nil
	}

	copied, err := r.pool.CopyFrom(ctx, pgx.Identifier{"news"}, newsColumns,
		pgx.CopyFromSlice(len(news), func(i int) ([]any, error) {
			return []any{news[i].Title, news[i].Text, news[i].Date}, nil
		}))
	if err != nil {
		log.Error(ctx, errBulkCreatingN, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errBulkCreatingN, err)
	}

	log.Info(ctx, msgNewsBulkCreated, zap.Int64("count", copied))
	return copied, nil
}
