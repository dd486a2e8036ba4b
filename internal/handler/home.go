package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
)

// HomeHandler serves the root HTML page. Templates are parsed once at
// startup and reused for every request.
type HomeHandler struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewHomeHandler parses the index template from templateDir.
func NewHomeHandler(templateDir string, logger *slog.Logger) (*HomeHandler, error) {
	tmpl, err := template.ParseFiles(filepath.Join(templateDir, "index.html"))
	if err != nil {
		return nil, err
	}

	return &HomeHandler{
		templates: tmpl,
		logger:    logger,
	}, nil
}

// HandleIndex renders the tracker landing page.
func (h *HomeHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title": "Exercise Tracker",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
