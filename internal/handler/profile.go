package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coverguard/coverguard/internal/middleware"
	"github.com/coverguard/coverguard/internal/model"
	"github.com/coverguard/coverguard/internal/service"
	"github.com/coverguard/coverguard/internal/view"
)

// formView repopulates the assessment form after a rejected submission.
// Revenue stays a string so the applicant sees exactly what they typed.
type formView struct {
	Message         string
	CompanyName     string
	OwnerEmail      string
	Industry        string
	CompanySize     string
	Revenue         string
	IncidentHistory string
	RiskScale       string
	Coverage        string
}

// editView is the view-model for the edit form. Built from the stored
// profile on GET and from the rejected submission on a failed update,
// so nothing the applicant typed is thrown away.
type editView struct {
	Message         string
	ID              string
	CompanyName     string
	OwnerEmail      string
	Industry        string
	CompanySize     string
	Revenue         string
	IncidentHistory string
	RiskScale       string
	Coverage        string
}

// quoteView is the view-model for the recommended policy page.
type quoteView struct {
	Bucket  model.PolicyBucket
	Premium model.Money
}

// consultationView is the view-model for the consultation page.
type consultationView struct {
	CompanyName string
	OwnerEmail  string
}

// profileView wraps a persisted profile for the review page.
type profileView struct {
	Message string
	Profile *model.RiskProfile
}

// ProfileHandler handles the risk assessment form and its lifecycle.
type ProfileHandler struct {
	svc      *service.ProfileService
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService, renderer *view.Renderer, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, renderer: renderer, logger: logger}
}

// Submit handles POST /form.
func (h *ProfileHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(h.logger, h.renderer, w, r, http.StatusBadRequest, "Bad request", "The form could not be read.")
		return
	}

	echo := formViewFromRequest(r)

	revenue, err := strconv.ParseInt(r.PostFormValue("revenue"), 10, 64)
	if err != nil {
		echo.Message = "Annual revenue must be a whole number."
		renderPage(h.logger, h.renderer, w, r, http.StatusBadRequest, "form", echo)
		return
	}

	input := service.SubmitInput{
		CompanyName:     r.PostFormValue("company_name"),
		OwnerEmail:      r.PostFormValue("owner_email"),
		Industry:        r.PostFormValue("industry"),
		CompanySize:     r.PostFormValue("company_size"),
		Revenue:         revenue,
		IncidentHistory: r.PostFormValue("incident_history"),
		RiskScale:       r.PostFormValue("risk_scale"),
		Coverage:        r.PostFormValue("coverage"),
	}

	outcome, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			echo.Message = "Please fill in every field. " + err.Error()
			renderPage(h.logger, h.renderer, w, r, http.StatusBadRequest, "form", echo)
			return
		}
		h.serverError(w, r, "profile submit failed", err)
		return
	}

	h.logger.Info("profile_submitted",
		"profile_id", outcome.Profile.ID,
		"outcome", string(outcome.Kind),
		"request_id", middleware.GetRequestID(r.Context()),
	)

	switch outcome.Kind {
	case service.OutcomeConsultation:
		renderPage(h.logger, h.renderer, w, r, http.StatusOK, "consultation", consultationView{
			CompanyName: outcome.Profile.CompanyName,
			OwnerEmail:  outcome.Profile.OwnerEmail,
		})
	case service.OutcomeFallback:
		renderPage(h.logger, h.renderer, w, r, http.StatusOK, "fallback", nil)
	default:
		renderPage(h.logger, h.renderer, w, r, http.StatusOK, "quote", quoteView{
			Bucket:  outcome.Bucket,
			Premium: outcome.Premium,
		})
	}
}

// EnteredData handles GET /entered-data, showing the most recent
// submission.
func (h *ProfileHandler) EnteredData(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.MostRecent(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			renderPage(h.logger, h.renderer, w, r, http.StatusOK, "entered_data", profileView{Message: "No submissions yet."})
			return
		}
		h.serverError(w, r, "most recent lookup failed", err)
		return
	}

	renderPage(h.logger, h.renderer, w, r, http.StatusOK, "entered_data", profileView{Profile: profile})
}

// EditForm handles GET /edit/{id}, the pre-filled edit form.
func (h *ProfileHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			renderError(h.logger, h.renderer, w, r, http.StatusNotFound, "Not found", "No submission exists with that ID.")
			return
		}
		h.serverError(w, r, "profile lookup failed", err)
		return
	}

	renderPage(h.logger, h.renderer, w, r, http.StatusOK, "edit_form", editViewFromProfile(profile))
}

// Update handles POST /update/{id}.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		renderError(h.logger, h.renderer, w, r, http.StatusBadRequest, "Bad request", "The form could not be read.")
		return
	}

	revenue, err := strconv.ParseInt(r.PostFormValue("revenue"), 10, 64)
	if err != nil {
		h.rerenderEdit(w, r, id, "Annual revenue must be a whole number.")
		return
	}

	input := service.UpdateInput{
		CompanyName:     r.PostFormValue("company_name"),
		OwnerEmail:      r.PostFormValue("owner_email"),
		Industry:        r.PostFormValue("industry"),
		CompanySize:     r.PostFormValue("company_size"),
		Revenue:         revenue,
		IncidentHistory: r.PostFormValue("incident_history"),
		RiskScale:       r.PostFormValue("risk_scale"),
		Coverage:        r.PostFormValue("coverage"),
	}

	profile, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			h.rerenderEdit(w, r, id, "Please fill in every field. "+err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			renderError(h.logger, h.renderer, w, r, http.StatusNotFound, "Not found", "No submission exists with that ID.")
		default:
			h.serverError(w, r, "profile update failed", err)
		}
		return
	}

	h.logger.Info("profile_updated",
		"profile_id", profile.ID,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	renderPage(h.logger, h.renderer, w, r, http.StatusOK, "entered_data", profileView{
		Message: "Submission updated.",
		Profile: profile,
	})
}

// rerenderEdit re-renders the edit form with the values the applicant
// just submitted, so a rejected edit loses nothing they typed. The
// stored profile is checked only so an unknown ID still 404s.
func (h *ProfileHandler) rerenderEdit(w http.ResponseWriter, r *http.Request, id, message string) {
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		renderError(h.logger, h.renderer, w, r, http.StatusNotFound, "Not found", "No submission exists with that ID.")
		return
	}

	echo := editViewFromRequest(id, r)
	echo.Message = message
	renderPage(h.logger, h.renderer, w, r, http.StatusBadRequest, "edit_form", echo)
}

func (h *ProfileHandler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(r.Context()),
	)
	renderError(h.logger, h.renderer, w, r, http.StatusInternalServerError, "Something went wrong", "Please try again in a moment.")
}

// formViewFromRequest echoes the submitted fields back into the form.
func formViewFromRequest(r *http.Request) formView {
	return formView{
		CompanyName:     r.PostFormValue("company_name"),
		OwnerEmail:      r.PostFormValue("owner_email"),
		Industry:        r.PostFormValue("industry"),
		CompanySize:     r.PostFormValue("company_size"),
		Revenue:         r.PostFormValue("revenue"),
		IncidentHistory: r.PostFormValue("incident_history"),
		RiskScale:       r.PostFormValue("risk_scale"),
		Coverage:        r.PostFormValue("coverage"),
	}
}

// editViewFromProfile prefills the edit form from the stored record.
func editViewFromProfile(p *model.RiskProfile) editView {
	return editView{
		ID:              p.ID,
		CompanyName:     p.CompanyName,
		OwnerEmail:      p.OwnerEmail,
		Industry:        p.Industry,
		CompanySize:     p.CompanySize,
		Revenue:         strconv.FormatInt(p.Revenue, 10),
		IncidentHistory: p.IncidentHistory,
		RiskScale:       string(p.RiskScale),
		Coverage:        string(p.Coverage),
	}
}

// editViewFromRequest echoes a rejected update back into the edit form.
func editViewFromRequest(id string, r *http.Request) editView {
	return editView{
		ID:              id,
		CompanyName:     r.PostFormValue("company_name"),
		OwnerEmail:      r.PostFormValue("owner_email"),
		Industry:        r.PostFormValue("industry"),
		CompanySize:     r.PostFormValue("company_size"),
		Revenue:         r.PostFormValue("revenue"),
		IncidentHistory: r.PostFormValue("incident_history"),
		RiskScale:       r.PostFormValue("risk_scale"),
		Coverage:        r.PostFormValue("coverage"),
	}
}
