// Package view renders HTML pages from embedded templates.
// Handlers supply a template name and a view-model; markup never leaks
// into the rest of the application.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer renders named page templates.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render writes the named page to the response with the given status.
// The page is rendered to a buffer first so a template failure can
// still produce a clean 500 instead of a half-written body.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
