package handler

import (
	"log/slog"
	"net/http"

	"github.com/coverguard/coverguard/internal/view"
)

// PageHandler serves the static entry pages.
type PageHandler struct {
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(renderer *view.Renderer, logger *slog.Logger) *PageHandler {
	return &PageHandler{renderer: renderer, logger: logger}
}

// Index handles GET /.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	renderPage(h.logger, h.renderer, w, r, http.StatusOK, "index", nil)
}

// Form handles GET /form, the blank risk assessment form.
func (h *PageHandler) Form(w http.ResponseWriter, r *http.Request) {
	renderPage(h.logger, h.renderer, w, r, http.StatusOK, "form", formView{})
}
