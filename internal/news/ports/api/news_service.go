package api

import (
	"context"

	"newsnotes/internal/access"
	"newsnotes/internal/news/domain/entities"
)

// Detail - новость вместе с комментариями.
type Detail struct {
	News     *entities.News
	Comments []entities.Comment
}

// NewsUseCase определяет операции новостного сайта.
type NewsUseCase interface {
	Home(ctx context.Context) ([]entities.News, error)

	Detail(ctx context.Context, newsID int64) (*Detail, error)

	CreateComment(ctx context.Context, who access.Identity, newsID int64, text string) (*entities.Comment, error)

	GetOwnComment(ctx context.Context, who access.Identity, commentID int64) (*entities.Comment, error)

	EditComment(ctx context.Context, who access.Identity, commentID int64, text string) (*entities.Comment, error)

	DeleteComment(ctx context.Context, who access.Identity, commentID int64) (*entities.Comment, error)
}
