// Package http содержит HTTP обработчики сайта заметок.
package http

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"newsnotes/internal/access"
	"newsnotes/internal/notes/domain/entities"
	"newsnotes/internal/notes/ports/api"
	"newsnotes/internal/web"
	"newsnotes/pkg/logger"
)

// Страницы сайта заметок.
const (
	PageHome    = "notes/home"
	PageList    = "notes/list"
	PageForm    = "notes/form"
	PageDetail  = "notes/detail"
	PageDelete  = "notes/delete"
	PageSuccess = "notes/success"
)

// SuccessPath - страница после успешного изменения заметки.
const SuccessPath = "/done/"

// Константы для логирования.
const (
	LogHandlerList   = "notes handler: list"
	LogHandlerCreate = "notes handler: create"
	LogHandlerUpdate = "notes handler: update"
	LogHandlerDelete = "notes handler: delete"

	ErrorFailedToServeRequest = "failed to serve request"
)

// Handler содержит HTTP обработчики заметок.
type Handler struct {
	notes api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes api.NoteUseCase) *Handler {
	return &Handler{notes: notes}
}

// Home показывает главную страницу.
func (h *Handler) Home(c fiber.Ctx) error {
	return c.Render(PageHome, web.Page(c, nil))
}

// List показывает заметки текущего пользователя.
func (h *Handler) List(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerList)

	notes, err := h.notes.List(requestCtx, web.CurrentIdentity(c))
	if err != nil {
		return err
	}

	return c.Render(PageList, web.Page(c, fiber.Map{"Notes": notes}))
}

// AddForm показывает пустую форму заметки.
func (h *Handler) AddForm(c fiber.Ctx) error {
	return renderForm(c, nil, api.NoteInput{}, nil)
}

// Create создает заметку.
func (h *Handler) Create(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCreate)

	in := formInput(c)
	if _, err := h.notes.Create(requestCtx, web.CurrentIdentity(c), in); err != nil {
		if errs, ok := access.AsFieldErrors(err); ok {
			return renderForm(c, nil, in, errs.ByField())
		}
		return err
	}

	return web.Redirect(c, SuccessPath)
}

// Detail показывает заметку владельцу.
func (h *Handler) Detail(c fiber.Ctx) error {
	note, err := h.notes.Get(web.RequestContext(c), web.CurrentIdentity(c), c.Params("slug"))
	if err != nil {
		return err
	}

	return c.Render(PageDetail, web.Page(c, fiber.Map{"Note": note}))
}

// EditForm показывает форму редактирования заметки владельцу.
func (h *Handler) EditForm(c fiber.Ctx) error {
	note, err := h.notes.Get(web.RequestContext(c), web.CurrentIdentity(c), c.Params("slug"))
	if err != nil {
		return err
	}

	return renderForm(c, note, api.NoteInput{Title: note.Title, Text: note.Text, Slug: note.Slug}, nil)
}

// Update сохраняет изменения заметки.
func (h *Handler) Update(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerUpdate)

	who := web.CurrentIdentity(c)
	slug := c.Params("slug")
	in := formInput(c)

	if _, err := h.notes.Update(requestCtx, who, slug, in); err != nil {
		errs, ok := access.AsFieldErrors(err)
		if !ok {
			return err
		}
		note, err := h.notes.Get(requestCtx, who, slug)
		if err != nil {
			log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return err
		}
		return renderForm(c, note, in, errs.ByField())
	}

	return web.Redirect(c, SuccessPath)
}

// DeleteForm показывает подтверждение удаления заметки.
func (h *Handler) DeleteForm(c fiber.Ctx) error {
	note, err := h.notes.Get(web.RequestContext(c), web.CurrentIdentity(c), c.Params("slug"))
	if err != nil {
		return err
	}

	return c.Render(PageDelete, web.Page(c, fiber.Map{"Note": note}))
}

// Delete удаляет заметку.
func (h *Handler) Delete(c fiber.Ctx) error {
	requestCtx := web.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDelete)

	if err := h.notes.Delete(requestCtx, web.CurrentIdentity(c), c.Params("slug")); err != nil {
		return err
	}

	return web.Redirect(c, SuccessPath)
}

// Success показывает страницу успешного изменения.
func (h *Handler) Success(c fiber.Ctx) error {
	return c.Render(PageSuccess, web.Page(c, nil))
}

func formInput(c fiber.Ctx) api.NoteInput {
	return api.NoteInput{
		Title: c.FormValue("title"),
		Text:  c.FormValue("text"),
		Slug:  c.FormValue("slug"),
	}
}

func renderForm(c fiber.Ctx, note *entities.Note, in api.NoteInput, errs map[string][]string) error {
	if errs == nil {
		errs = map[string][]string{}
	}
	data := fiber.Map{
		"Form":   map[string]string{"title": in.Title, "text": in.Text, "slug": in.Slug},
		"Errors": errs,
	}
	if note != nil {
		data["Note"] = note
	}
	return c.Render(PageForm, web.Page(c, data))
}
