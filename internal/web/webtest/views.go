// Package webtest содержит вспомогательные средства для тестирования HTTP обработчиков.
package webtest

import (
	"fmt"
	"io"
	"sync"

	"github.com/gofiber/fiber/v3"
)

// Rendered - одна отрисованная страница и переданные в нее данные.
type Rendered struct {
	Name string
	Data fiber.Map
}

// Views реализует fiber.Views и запоминает каждый вызов Render.
type Views struct {
	mu       sync.Mutex
	rendered []Rendered
}

// NewViews создает пустой регистратор страниц.
func NewViews() *Views {
	return &Views{}
}

// Load ничего не делает.
func (v *Views) Load() error {
	return nil
}

// Render запоминает страницу и пишет ее имя в ответ.
func (v *Views) Render(out io.Writer, name string, binding any, _ ...string) error {
	data, _ := binding.(fiber.Map)

	v.mu.Lock()
	v.rendered = append(v.rendered, Rendered{Name: name, Data: data})
	v.mu.Unlock()

	_, err := fmt.Fprintf(out, "<!-- %s -->", name)
	return err
}

// Last возвращает последнюю отрисованную страницу.
func (v *Views) Last() (Rendered, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.rendered) == 0 {
		return Rendered{}, false
	}
	return v.rendered[len(v.rendered)-1], true
}

// Count возвращает количество отрисованных страниц.
func (v *Views) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.rendered)
}

// Reset забывает все отрисованные страницы.
func (v *Views) Reset() {
	v.mu.Lock()
	v.rendered = nil
	v.mu.Unlock()
}
