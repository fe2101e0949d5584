// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/cafe-go/internal/auth"
	"github.com/olegiv/cafe-go/internal/form"
	"github.com/olegiv/cafe-go/internal/metrics"
	"github.com/olegiv/cafe-go/internal/middleware"
	"github.com/olegiv/cafe-go/internal/model"
	"github.com/olegiv/cafe-go/internal/render"
	"github.com/olegiv/cafe-go/internal/service"
)

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	auth            *auth.Service
	renderer        *render.Renderer
	eventService    *service.EventService
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil to disable account lockout.
func NewAuthHandler(svc *auth.Service, renderer *render.Renderer, events *service.EventService, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		auth:            svc,
		renderer:        renderer,
		eventService:    events,
		loginProtection: lp,
	}
}

// SignupForm renders the registration page.
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	renderForm(w, r, h.renderer, tmplSignup, render.TemplateData{Title: titleSignup, Form: form.SignupSchema().Empty()})
}

// Signup creates an account and logs it in.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrBadRequest(w, r) {
		return
	}

	f := form.SignupSchema().Validate(r.PostForm)
	if !f.Valid() {
		renderForm(w, r, h.renderer, tmplSignup, render.TemplateData{Title: titleSignup, Form: f})
		return
	}

	user, err := h.auth.Register(r.Context(), auth.RegisterParams{
		Username:    f.Get("username"),
		Password:    f.Get("password"),
		FirstName:   f.Get("first_name"),
		LastName:    f.Get("last_name"),
		Description: f.Get("description"),
		Email:       f.Get("email"),
		ImageURL:    f.Get("image_url"),
	})
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUsername) {
			metrics.RecordAuth("signup", "duplicate")
			renderForm(w, r, h.renderer, tmplSignup, formWithFlash(titleSignup, f, msgUsernameTaken))
			return
		}
		h.renderer.ServerError(w, r, fmt.Errorf("registering user: %w", err))
		return
	}

	if err := h.auth.Login(r.Context(), &user); err != nil {
		h.renderer.ServerError(w, r, err)
		return
	}

	metrics.RecordAuth("signup", "success")
	slog.Info("user signed up", "user_id", user.ID, "username", user.Username)
	_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo, "User signed up", &user.ID, middleware.GetClientIP(r),
		map[string]any{"username": user.Username})

	flashSuccess(w, r, h.renderer, RouteRoot, fmt.Sprintf(msgWelcome, user.FirstName))
}

// LoginForm renders the login page. A safe ?next= target is carried in a hidden input.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	renderForm(w, r, h.renderer, tmplLogin, render.TemplateData{
		Title: titleLogin,
		Form:  form.LoginSchema().Empty(),
		Data:  middleware.SafeRedirectTarget(r.URL.Query().Get("next"), ""),
	})
}

// Login checks the submitted credentials and binds the user to the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrBadRequest(w, r) {
		return
	}

	next := middleware.SafeRedirectTarget(r.PostForm.Get("next"), "")
	f := form.LoginSchema().Validate(r.PostForm)
	if !f.Valid() {
		renderForm(w, r, h.renderer, tmplLogin, render.TemplateData{Title: titleLogin, Form: f, Data: next})
		return
	}

	username := f.Get("username")
	clientIP := middleware.GetClientIP(r)
	failed := func(message string) {
		data := formWithFlash(titleLogin, f, message)
		data.Data = next
		renderForm(w, r, h.renderer, tmplLogin, data)
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(username); locked {
			metrics.RecordAuth("login", "locked")
			_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login attempt on locked account", nil, clientIP,
				map[string]any{"username": username})
			failed(fmt.Sprintf(msgAccountLocked, formatDuration(remaining)))
			return
		}
	}

	user, err := h.auth.Authenticate(r.Context(), username, f.Get("password"))
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.renderer.ServerError(w, r, err)
			return
		}

		metrics.RecordAuth("login", "failure")
		_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login failed: invalid credentials", nil, clientIP,
			map[string]any{"username": username})

		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(username); locked {
				_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Account locked due to failed attempts", nil, clientIP,
					map[string]any{"username": username, "duration": lockDuration.String()})
				failed(fmt.Sprintf(msgAccountLocked, formatDuration(lockDuration)))
				return
			}
			slog.Debug("invalid credentials", "username", username, "remaining_attempts", h.loginProtection.GetRemainingAttempts(username))
		}
		failed(msgInvalidCredentials)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(username)
	}

	if err := h.auth.Login(r.Context(), user); err != nil {
		h.renderer.ServerError(w, r, err)
		return
	}

	metrics.RecordAuth("login", "success")
	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo, "User logged in", &user.ID, clientIP,
		map[string]any{"username": user.Username})

	if next == "" {
		next = RouteRoot
	}
	flashSuccess(w, r, h.renderer, next, fmt.Sprintf(msgWelcomeBack, user.FirstName))
}

// Logout clears the session's user.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDPtr(r)

	if err := h.auth.Logout(r.Context()); err != nil {
		logAndInternalError(w, "logout failed", "error", err)
		return
	}

	metrics.RecordAuth("logout", "success")
	_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo, "User logged out", userID, middleware.GetClientIP(r), nil)

	flashSuccess(w, r, h.renderer, RouteRoot, msgLoggedOut)
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
