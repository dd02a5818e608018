package web

import (
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer serves the dashboard pages through echo.Renderer. Each
// entry under Templates is a page name mapped to its parsed template set,
// built once at startup in main.
type TemplateRenderer struct {
	Templates map[string]*template.Template
}

// Render executes the named page. Pages parsed together with the shared
// layout run through "layout.html" so the page fills its content block;
// a set without the layout executes on its own.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.Templates[name]
	if !ok {
		return fmt.Errorf("no template registered for %q", name)
	}
	if tmpl.Lookup("layout.html") != nil {
		return tmpl.ExecuteTemplate(w, "layout.html", data)
	}
	return tmpl.Execute(w, data)
}
