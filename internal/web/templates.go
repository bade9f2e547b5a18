package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/flosch/pongo2/v6"

	"github.com/askillindva/XmlTemplateGenerator/internal/common/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the embedded HTML pages with pongo2. The page dialect is
// the same double-brace syntax the XML templates use, which keeps the whole
// tool in one template language.
type Renderer struct {
	set    *pongo2.TemplateSet
	logger logger.Logger
}

func NewRenderer(log logger.Logger) (*Renderer, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to mount embedded templates: %w", err)
	}
	return &Renderer{
		set:    pongo2.NewSet("web", pongo2.NewFSLoader(sub)),
		logger: log.WithFields(map[string]interface{}{"component": "web-renderer"}),
	}, nil
}

// HTML renders the named page with the given context. Render failures fall
// back to a plain-text 500; the page set is embedded, so they only happen on
// programmer error.
func (r *Renderer) HTML(w http.ResponseWriter, status int, name string, ctx pongo2.Context) {
	tmpl, err := r.set.FromCache(name)
	if err != nil {
		r.logger.WithError(err).Error("failed to load page template", map[string]interface{}{
			"page": name,
		})
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	out, err := tmpl.ExecuteBytes(ctx)
	if err != nil {
		r.logger.WithError(err).Error("failed to render page", map[string]interface{}{
			"page": name,
		})
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}
