// Package http содержит HTTP обработчики новостного сайта.
package http

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"newsnotes/internal/access"
	"newsnotes/internal/news/domain/entities"
	"newsnotes/internal/news/ports/api"
	"newsnotes/internal/web"
	"newsnotes/pkg/logger"
)

// Страницы новостного сайта.
const (
	PageHome          = "news/home"
	PageDetail        = "news/detail"
	PageCommentEdit   = "news/comment_edit"
	PageCommentDelete = "news/comment_delete"
)

// Константы для логирования.
const (
	LogHandlerHome          = "news handler: home"
	LogHandlerDetail        = "news handler: detail"
	LogHandlerCreateComment = "news handler: create comment"
	LogHandlerEditComment   = "news handler: edit comment"
	LogHandlerDeleteComment = "news handler: delete comment"

	ErrorFailedToServeRequest = "failed to serve request"
)

// Handler содержит HTTP обработчики новостей и комментариев.
type Handler struct {
	news api.NewsUseCase
}

// NewHandler создает новый экземпляр обработчика новостей.
func NewHandler(news api.NewsUseCase) *Handler {
	return &Handler{news: news}
}

// Home показывает ленту главной страницы.
func (h *Handler) Home(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerHome)

	feed, err := h.news.Home(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return err
	}

	return c.Render(PageHome, web.Page(c, fiber.Map{"News": feed}))
}

// Detail показывает новость с комментариями.
func (h *Handler) Detail(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDetail)

	newsID, err := idParam(c)
	if err != nil {
		return err
	}

	return h.renderDetail(c, newsID, "", nil)
}

// CreateComment добавляет комментарий к новости.
func (h *Handler) CreateComment(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerCreateComment)

	newsID, err := idParam(c)
	if err != nil {
		return err
	}

	text := c.FormValue("text")
	if _, err := h.news.CreateComment(requestCtx, web.CurrentIdentity(c), newsID, text); err != nil {
		if errs, ok := access.AsFieldErrors(err); ok {
			return h.renderDetail(c, newsID, text, errs.ByField())
		}
		return err
	}

	return web.Redirect(c, CommentsURL(newsID))
}

// EditCommentForm показывает форму редактирования своего комментария.
func (h *Handler) EditCommentForm(c fiber.Ctx) error {
	comment, err := h.ownComment(c)
	if err != nil {
		return err
	}

	return c.Render(PageCommentEdit, web.Page(c, fiber.Map{
		"Comment": comment,
		"Form":    map[string]string{"text": comment.Text},
		"Errors":  map[string][]string{},
	}))
}

// EditComment сохраняет новый текст своего комментария.
func (h *Handler) EditComment(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerEditComment)

	commentID, err := idParam(c)
	if err != nil {
		return err
	}

	text := c.FormValue("text")
	updated, err := h.news.EditComment(requestCtx, web.CurrentIdentity(c), commentID, text)
	if err != nil {
		errs, ok := access.AsFieldErrors(err)
		if !ok {
			return err
		}
		comment, err := h.news.GetOwnComment(requestCtx, web.CurrentIdentity(c), commentID)
		if err != nil {
			return err
		}
		return c.Render(PageCommentEdit, web.Page(c, fiber.Map{
			"Comment": comment,
			"Form":    map[string]string{"text": text},
			"Errors":  errs.ByField(),
		}))
	}

	return web.Redirect(c, CommentsURL(updated.NewsID))
}

// DeleteCommentForm показывает подтверждение удаления своего комментария.
func (h *Handler) DeleteCommentForm(c fiber.Ctx) error {
	comment, err := h.ownComment(c)
	if err != nil {
		return err
	}

	return c.Render(PageCommentDelete, web.Page(c, fiber.Map{"Comment": comment}))
}

// DeleteComment удаляет свой комментарий.
func (h *Handler) DeleteComment(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteComment)

	commentID, err := idParam(c)
	if err != nil {
		return err
	}

	deleted, err := h.news.DeleteComment(requestCtx, web.CurrentIdentity(c), commentID)
	if err != nil {
		return err
	}

	return web.Redirect(c, CommentsURL(deleted.NewsID))
}

// CommentsURL возвращает адрес блока комментариев новости.
func CommentsURL(newsID int64) string {
	return "/news/" + strconv.FormatInt(newsID, 10) + "/#comments"
}

func (h *Handler) renderDetail(c fiber.Ctx, newsID int64, text string, errs map[string][]string) error {
	requestCtx := web.RequestContext(c)

	detail, err := h.news.Detail(requestCtx, newsID)
	if err != nil {
		return err
	}

	data := fiber.Map{"News": detail.News, "Comments": detail.Comments}
	if !web.CurrentIdentity(c).IsAnonymous() {
		if errs == nil {
			errs = map[string][]string{}
		}
		data["Form"] = map[string]string{"text": text}
		data["Errors"] = errs
	}

	return c.Render(PageDetail, web.Page(c, data))
}

func (h *Handler) ownComment(c fiber.Ctx) (*entities.Comment, error) {
	commentID, err := idParam(c)
	if err != nil {
		return nil, err
	}
	return h.news.GetOwnComment(web.RequestContext(c), web.CurrentIdentity(c), commentID)
}

// idParam разбирает числовой :id маршрута. Некорректный id дает 404.
func idParam(c fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, access.ErrNotFound
	}
	return id, nil
}
