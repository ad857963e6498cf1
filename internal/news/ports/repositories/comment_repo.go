package repositories

import (
	"context"

	"newsnotes/internal/news/domain/entities"
)

// CommentRepository определяет операции хранения комментариев.
// Методы с authorID видят только комментарии этого автора.
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error)

	ListByNews(ctx context.Context, newsID int64) ([]entities.Comment, error)

	GetOwned(ctx context.Context, id int64, authorID string) (*entities.Comment, error)

	UpdateText(ctx context.Context, id int64, authorID, text string) (*entities.Comment, error)

	Delete(ctx context.Context, id int64, authorID string) error
}
