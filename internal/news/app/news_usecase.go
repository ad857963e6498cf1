// Package app содержит сценарии новостного сайта: ленту, страницу новости
// и работу автора со своими комментариями.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"newsnotes/internal/access"
	"newsnotes/internal/news/domain/entities"
	"newsnotes/internal/news/domain/rules"
	"newsnotes/internal/news/ports/api"
	"newsnotes/internal/news/ports/repositories"
	"newsnotes/pkg/logger"
)

const (
	methodHome          = "Home"
	methodDetail        = "Detail"
	methodCreateComment = "CreateComment"
	methodGetOwnComment = "GetOwnComment"
	methodEditComment   = "EditComment"
	methodDeleteComment = "DeleteComment"

	msgCommentRejected = "comment rejected by moderation"
	msgCommentCreated  = "comment created"
	msgCommentEdited   = "comment edited"
	msgCommentDeleted  = "comment deleted"

	errCtxListingNews      = "listing news"
	errCtxLoadingNews      = "loading news"
	errCtxLoadingComments  = "loading comments"
	errCtxValidating       = "validating comment"
	errCtxCreatingComment  = "creating comment"
	errCtxLoadingComment   = "loading comment"
	errCtxUpdatingComment  = "updating comment"
	errCtxDeletingComment  = "deleting comment"
	errCtxAuthentication   = "checking identity"
	msgErrLoadingNews      = "failed to load news"
	msgErrLoadingComments  = "failed to load comments"
	msgErrCreatingComment  = "failed to create comment"
	msgErrUpdatingComment  = "failed to update comment"
	msgErrDeletingComment  = "failed to delete comment"
	msgErrLoadingComment   = "failed to load comment"
	msgErrListingNewsItems = "failed to list news"
)

// MsgRequired - ошибка пустого текста комментария.
const MsgRequired = "Обязательное поле."

// Settings - параметры новостного сайта.
type Settings struct {
	HomePageCount int
	Moderator     rules.Moderator
}

// NewsUseCaseImpl реализует api.NewsUseCase.
type NewsUseCaseImpl struct {
	news     repositories.NewsRepository
	comments repositories.CommentRepository
	settings Settings
}

// NewNewsUseCase создает сервис новостного сайта.
func NewNewsUseCase(
	news repositories.NewsRepository,
	comments repositories.CommentRepository,
	settings Settings,
) api.NewsUseCase {
	return &NewsUseCaseImpl{news: news, comments: comments, settings: settings}
}

// Home возвращает ленту главной страницы.
func (u *NewsUseCaseImpl) Home(ctx context.Context) ([]entities.News, error) {
	log := logger.Log(ctx).With(zap.String("method", methodHome))

	latest, err := u.news.ListLatest(ctx, u.settings.HomePageCount)
	if err != nil {
		log.Error(ctx, msgErrListingNewsItems, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNews, err)
	}

	return rules.HomeFeed(latest, u.settings.HomePageCount), nil
}

// Detail возвращает новость и ее комментарии в хронологическом порядке.
func (u *NewsUseCaseImpl) Detail(ctx context.Context, newsID int64) (*api.Detail, error) {
	log := logger.Log(ctx).With(zap.String("method", methodDetail), zap.Int64("news_id", newsID))

	news, err := u.news.GetByID(ctx, newsID)
	if err != nil {
		if errors.Is(err, entities.ErrNewsNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxLoadingNews, access.ErrNotFound)
		}
		log.Error(ctx, msgErrLoadingNews, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingNews, err)
	}

	comments, err := u.comments.ListByNews(ctx, newsID)
	if err != nil {
		log.Error(ctx, msgErrLoadingComments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingComments, err)
	}

	return &api.Detail{News: news, Comments: rules.CommentThread(comments)}, nil
}

// CreateComment добавляет комментарий от имени who.
func (u *NewsUseCaseImpl) CreateComment(
	ctx context.Context,
	who access.Identity,
	newsID int64,
	text string,
) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateComment), zap.Int64("news_id", newsID))

	if err := who.Require(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxAuthentication, err)
	}

	if _, err := u.news.GetByID(ctx, newsID); err != nil {
		if errors.Is(err, entities.ErrNewsNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxLoadingNews, access.ErrNotFound)
		}
		log.Error(ctx, msgErrLoadingNews, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingNews, err)
	}

	if err := u.validate(text); err != nil {
		log.Debug(ctx, msgCommentRejected, zap.String("userID", who.UserID))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	created, err := u.comments.Create(ctx, &entities.Comment{
		NewsID:   newsID,
		AuthorID: who.UserID,
		Text:     text,
	})
	if err != nil {
		if errors.Is(err, entities.ErrNewsNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxCreatingComment, access.ErrNotFound)
		}
		log.Error(ctx, msgErrCreatingComment, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingComment, err)
	}

	log.Info(ctx, msgCommentCreated, zap.Int64("comment_id", created.ID), zap.String("userID", who.UserID))
	return created, nil
}

// GetOwnComment возвращает комментарий, если who является его автором.
func (u *NewsUseCaseImpl) GetOwnComment(ctx context.Context, who access.Identity, commentID int64) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetOwnComment), zap.Int64("comment_id", commentID))

	if err := who.Require(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxAuthentication, err)
	}

	comment, err := u.comments.GetOwned(ctx, commentID, who.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrCommentNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxLoadingComment, access.ErrNotFound)
		}
		log.Error(ctx, msgErrLoadingComment, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingComment, err)
	}

	return comment, nil
}

// EditComment меняет текст комментария автора.
func (u *NewsUseCaseImpl) EditComment(
	ctx context.Context,
	who access.Identity,
	commentID int64,
	text string,
) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("method", methodEditComment), zap.Int64("comment_id", commentID))

	if _, err := u.GetOwnComment(ctx, who, commentID); err != nil {
		return nil, err
	}

	if err := u.validate(text); err != nil {
		log.Debug(ctx, msgCommentRejected, zap.String("userID", who.UserID))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	updated, err := u.comments.UpdateText(ctx, commentID, who.UserID, text)
	if err != nil {
		if errors.Is(err, entities.ErrCommentNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxUpdatingComment, access.ErrNotFound)
		}
		log.Error(ctx, msgErrUpdatingComment, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingComment, err)
	}

	log.Info(ctx, msgCommentEdited, zap.String("userID", who.UserID))
	return updated, nil
}

// DeleteComment удаляет комментарий автора и возвращает удаленный комментарий.
func (u *NewsUseCaseImpl) DeleteComment(ctx context.Context, who access.Identity, commentID int64) (*entities.Comment, error) {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteComment), zap.Int64("comment_id", commentID))

	comment, err := u.GetOwnComment(ctx, who, commentID)
	if err != nil {
		return nil, err
	}

	if err := u.comments.Delete(ctx, commentID, who.UserID); err != nil {
		if errors.Is(err, entities.ErrCommentNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxDeletingComment, access.ErrNotFound)
		}
		log.Error(ctx, msgErrDeletingComment, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxDeletingComment, err)
	}

	log.Info(ctx, msgCommentDeleted, zap.String("userID", who.UserID))
	return comment, nil
}

func (u *NewsUseCaseImpl) validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return access.NewValidationError(rules.FieldText, MsgRequired)
	}
	if err := u.settings.Moderator.Check(text); err != nil {
		return err
	}
	return nil
}
