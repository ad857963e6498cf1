package repositories

import (
	"context"

	"newsnotes/internal/news/domain/entities"
)

// NewsRepository определяет операции хранения новостей.
type NewsRepository interface {
	ListLatest(ctx context.Context, limit int) ([]entities.News, error)

	GetByID(ctx context.Context, id int64) (*entities.News, error)

	BulkCreate(ctx context.Context, news []entities.News) (int64, error)
}
