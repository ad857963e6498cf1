// Package web содержит общую для обоих приложений HTTP-обвязку поверх fiber:
// шаблоны страниц, middleware, редиректы и преобразование ошибок в ответы.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"
)

// Константы для сообщений об ошибках шаблонов.
const (
	ErrReadLayout    = "failed to read layout"
	ErrParseTemplate = "failed to parse template"
	ErrWalkTemplates = "failed to walk templates"
	ErrRenderPage    = "failed to render page"
)

// ErrUnknownPage возвращается при рендеринге незарегистрированной страницы.
var ErrUnknownPage = errors.New("unknown page")

const (
	layoutDir      = "layouts"
	layoutTemplate = "base"
	pageExt        = ".html"
	dateLayout     = "02.01.2006 15:04"
)

// Views реализует fiber.Views поверх html/template.
// Каждая страница - файл <dir>/<name>.html, определяющий блоки базового макета
// из layouts/*.html, и регистрируется под именем "<dir>/<name>".
type Views struct {
	fsys  fs.FS
	funcs template.FuncMap

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// NewViews создает набор шаблонов из файловой системы fsys.
func NewViews(fsys fs.FS) *Views {
	return &Views{
		fsys: fsys,
		funcs: template.FuncMap{
			"date": func(t time.Time) string { return t.Format(dateLayout) },
		},
		pages: make(map[string]*template.Template),
	}
}

// Load разбирает макеты и все страницы.
func (v *Views) Load() error {
	layouts, err := fs.Glob(v.fsys, path.Join(layoutDir, "*"+pageExt))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrReadLayout, err)
	}
	if len(layouts) == 0 {
		return fmt.Errorf("%s: %w", ErrReadLayout, fs.ErrNotExist)
	}

	base, err := template.New(layoutTemplate).Funcs(v.funcs).ParseFS(v.fsys, layouts...)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrParseTemplate, err)
	}

	pages := make(map[string]*template.Template)
	err = fs.WalkDir(v.fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || path.Ext(p) != pageExt || strings.HasPrefix(p, layoutDir+"/") {
			return nil
		}

		page, err := template.Must(base.Clone()).ParseFS(v.fsys, p)
		if err != nil {
			return fmt.Errorf("%s %s: %w", ErrParseTemplate, p, err)
		}
		pages[strings.TrimSuffix(p, pageExt)] = page
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrWalkTemplates, err)
	}

	v.mu.Lock()
	v.pages = pages
	v.mu.Unlock()
	return nil
}

// Render выполняет базовый макет страницы name.
func (v *Views) Render(out io.Writer, name string, binding any, _ ...string) error {
	v.mu.RLock()
	page, ok := v.pages[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s %q: %w", ErrRenderPage, name, ErrUnknownPage)
	}

	if err := page.ExecuteTemplate(out, layoutTemplate, binding); err != nil {
		return fmt.Errorf("%s %q: %w", ErrRenderPage, name, err)
	}
	return nil
}

// Pages возвращает имена загруженных страниц.
func (v *Views) Pages() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	names := make([]string, 0, len(v.pages))
	for name := range v.pages {
		names = append(names, name)
	}
	return names
}
