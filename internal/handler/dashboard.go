package handler

import (
	"log/slog"
	"net/http"

	"github.com/coverguard/coverguard/internal/auth"
	"github.com/coverguard/coverguard/internal/middleware"
	"github.com/coverguard/coverguard/internal/service"
	"github.com/coverguard/coverguard/internal/view"
)

// DashboardHandler serves the session-gated dashboard.
type DashboardHandler struct {
	svc      *service.DashboardService
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.DashboardService, renderer *view.Renderer, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, renderer: renderer, logger: logger}
}

// Dashboard handles GET /dashboard. The session middleware has already
// put the account ID in the context.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	accountID := auth.AccountIDFromContext(r.Context())

	dash, err := h.svc.View(r.Context(), accountID)
	if err != nil {
		h.logger.Error("dashboard view failed",
			"error", err.Error(),
			"account_id", accountID,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		renderError(h.logger, h.renderer, w, r, http.StatusInternalServerError, "Something went wrong", "Please try again in a moment.")
		return
	}

	renderPage(h.logger, h.renderer, w, r, http.StatusOK, "dashboard", dash)
}
