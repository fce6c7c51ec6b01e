package handlers

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

const siteDescription = "Simple blog built with Go, chi & PostgreSQL."

// viewData is what every page template receives.
type viewData struct {
	Title       string
	Description string
	Error       string
	Data        any
}

// Renderer holds the parsed page templates, each combined with the shared
// layout.
type Renderer struct {
	pages map[string]*template.Template
	log   *slog.Logger
}

func NewRenderer(log *slog.Logger) (*Renderer, error) {
	names := []string{
		"home", "post", "search",
		"admin_login", "admin_register", "dashboard", "add_post", "edit_post",
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("handlers: parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages, log: log}, nil
}

func (rd *Renderer) Render(w http.ResponseWriter, status int, name string, data viewData) {
	t, ok := rd.pages[name]
	if !ok {
		rd.log.Error("unknown template", "name", name)
		http.Error(w, "Server Error", http.StatusInternalServerError)
		return
	}
	if data.Description == "" {
		data.Description = siteDescription
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		rd.log.Error("render failed", "template", name, "err", err)
	}
}

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"message": "..."} with a given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}
