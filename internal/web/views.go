package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

const (
	viewIndex           = "index.html"
	viewQuestionnaire   = "questionnaire.html"
	viewCreateCandidate = "create_candidate.html"
	viewSuccess         = "success.html"
	viewError           = "error.html"
)

//go:embed templates/*.html
var templateFS embed.FS

type views struct {
	tmpl *template.Template
}

func parseViews() (*views, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &views{tmpl: tmpl}, nil
}

// render executes the view into a buffer first so a template failure never leaves a half written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.views.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.requestLogger(r, 0).Error("rendering template", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
