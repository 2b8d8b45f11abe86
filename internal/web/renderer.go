// Package web holds the embedded HTML pages and the echo renderer that
// serves them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-directory/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page is what every template receives: the handler's data plus the
// flash messages popped for this request.
type Page struct {
	Flashes []string
	Data    any
}

// Renderer renders the embedded pages.  Each page is parsed together with
// the shared layout, so every page may define its own "title" and
// "content" blocks.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"has": func(list []string, v string) bool {
		return slices.Contains(list, v)
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// NewRenderer parses every embedded page.
func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render implements echo.Renderer.  name is the page file without its
// extension, e.g. "venue" for templates/venue.html.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, path.Base(layoutFile), Page{Flashes: middleware.Flashes(c), Data: data})
}
