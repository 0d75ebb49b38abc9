package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coverguard/coverguard/internal/middleware"
	"github.com/coverguard/coverguard/internal/service"
	"github.com/coverguard/coverguard/internal/session"
	"github.com/coverguard/coverguard/internal/view"
)

// authView is the view-model for the register and login pages.
type authView struct {
	Message string
	Email   string
}

// AccountHandler handles registration, login, and logout.
type AccountHandler struct {
	svc      *service.AccountService
	sessions *session.Manager
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.AccountService, sessions *session.Manager, renderer *view.Renderer, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, sessions: sessions, renderer: renderer, logger: logger}
}

// RegisterPage handles GET /register.
func (h *AccountHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	renderPage(h.logger, h.renderer, w, r, http.StatusOK, "register", authView{})
}

// Register handles POST /register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(h.logger, h.renderer, w, r, http.StatusBadRequest, "Bad request", "The form could not be read.")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	account, err := h.svc.Register(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			renderPage(h.logger, h.renderer, w, r, http.StatusConflict, "register", authView{
				Message: "That email is already registered. Try logging in.",
				Email:   email,
			})
		case errors.Is(err, service.ErrValidation):
			renderPage(h.logger, h.renderer, w, r, http.StatusBadRequest, "register", authView{
				Message: "A valid email and password are required.",
				Email:   email,
			})
		default:
			h.serverError(w, r, "registration failed", err)
		}
		return
	}

	h.logger.Info("account_registered",
		"account_id", account.ID,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	renderPage(h.logger, h.renderer, w, r, http.StatusOK, "login", authView{
		Message: "Account created. Please log in.",
		Email:   account.Email,
	})
}

// LoginPage handles GET /login.
func (h *AccountHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(h.logger, h.renderer, w, r, http.StatusOK, "login", authView{})
}

// Login handles POST /login. On success a session is issued and the
// browser is sent to the dashboard.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(h.logger, h.renderer, w, r, http.StatusBadRequest, "Bad request", "The form could not be read.")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	account, err := h.svc.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			renderPage(h.logger, h.renderer, w, r, http.StatusUnauthorized, "login", authView{
				Message: "Email or password is incorrect.",
				Email:   email,
			})
			return
		}
		h.serverError(w, r, "login failed", err)
		return
	}

	token, err := h.sessions.Issue(r.Context(), account.ID)
	if err != nil {
		h.serverError(w, r, "session issue failed", err)
		return
	}

	h.logger.Info("login_succeeded",
		"account_id", account.ID,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	session.SetCookie(w, token, h.sessions.TTL())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout handles POST /logout. Revokes the session server-side and
// clears the cookie; logging out while logged out is a no-op.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromRequest(r)
	if err := h.sessions.Revoke(r.Context(), token); err != nil {
		h.logger.Error("session revoke failed",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(r.Context()),
		)
	}

	session.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AccountHandler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(r.Context()),
	)
	renderError(h.logger, h.renderer, w, r, http.StatusInternalServerError, "Something went wrong", "Please try again in a moment.")
}
