package handler

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/olegiv/cafe-go/internal/form"
	"github.com/olegiv/cafe-go/internal/middleware"
	"github.com/olegiv/cafe-go/internal/render"
	"github.com/olegiv/cafe-go/internal/service"
	"github.com/olegiv/cafe-go/internal/store"
)

// ProfileHandler serves the logged-in user's profile. All routes sit behind RequireLogin.
type ProfileHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	eventService *service.EventService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(db *sql.DB, renderer *render.Renderer, events *service.EventService) *ProfileHandler {
	return &ProfileHandler{
		queries:      store.New(db),
		renderer:     renderer,
		eventService: events,
	}
}

// currentUser returns the logged-in user, redirecting to the login page when
// the handler was mounted without RequireLogin.
func (h *ProfileHandler) currentUser(w http.ResponseWriter, r *http.Request) (*store.User, bool) {
	user := middleware.GetUser(r)
	if user == nil {
		http.Redirect(w, r, middleware.LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
		return nil, false
	}
	return user, true
}

// Show renders the current user's profile.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}
	h.renderer.Page(w, r, tmplProfile, titleProfile, nil)
}

// EditForm renders the profile form prefilled from the current user.
func (h *ProfileHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	renderForm(w, r, h.renderer, tmplProfileEdit, render.TemplateData{
		Title: titleEditProfile,
		Form:  form.ProfileSchema().Prefill(form.ProfileValues(*user)),
	})
}

// Edit updates the display fields of the current user.
func (h *ProfileHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if !parseFormOrBadRequest(w, r) {
		return
	}

	f := form.ProfileSchema().Validate(r.PostForm)
	if !f.Valid() {
		renderForm(w, r, h.renderer, tmplProfileEdit, render.TemplateData{Title: titleEditProfile, Form: f})
		return
	}

	if _, err := h.queries.UpdateUserProfile(r.Context(), form.ApplyProfile(f, user.ID)); err != nil {
		h.renderer.ServerError(w, r, fmt.Errorf("updating profile of user %d: %w", user.ID, err))
		return
	}

	_ = h.eventService.LogUserEvent(r.Context(), "Profile edited", &user.ID, middleware.GetClientIP(r), nil)

	flashSuccess(w, r, h.renderer, RouteProfile, msgProfileEdited)
}
