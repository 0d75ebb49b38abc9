// Package handler provides HTTP request handlers. Handlers parse form
// input, call services, and render pages; business rules live below.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coverguard/coverguard/internal/middleware"
	"github.com/coverguard/coverguard/internal/view"
)

// errorView is the view-model for the error page.
type errorView struct {
	Title   string
	Message string
}

// renderPage renders a template and logs the failure if rendering
// breaks. The buffer-first Renderer guarantees nothing partial was
// written, so a plain 500 is still possible here.
func renderPage(logger *slog.Logger, renderer *view.Renderer, w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := renderer.Render(w, status, name, data); err != nil {
		logger.Error("render failed",
			slog.String("template", name),
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderError renders the shared error page.
func renderError(logger *slog.Logger, renderer *view.Renderer, w http.ResponseWriter, r *http.Request, status int, title, message string) {
	renderPage(logger, renderer, w, r, status, "error", errorView{Title: title, Message: message})
}

// NotFoundHandler renders the error page for unknown routes.
func NotFoundHandler(logger *slog.Logger, renderer *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderError(logger, renderer, w, r, http.StatusNotFound, "Page not found", "The page you requested does not exist.")
	}
}

// MethodNotAllowedHandler renders the error page for bad methods.
func MethodNotAllowedHandler(logger *slog.Logger, renderer *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderError(logger, renderer, w, r, http.StatusMethodNotAllowed, "Method not allowed", "That method is not supported on this page.")
	}
}

// writeJSON writes a JSON response with the given status code.
// Used by the health endpoints; every other page is HTML.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}
