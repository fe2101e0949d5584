// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers of the cafe directory.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/cafe-go/internal/form"
	"github.com/olegiv/cafe-go/internal/render"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) so the browser follows up with a GET.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashSuccess)
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// parseFormOrBadRequest parses the request body. On failure it writes a 400
// and returns false.
func parseFormOrBadRequest(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		logAndHTTPError(w, "Bad Request", http.StatusBadRequest, "parsing form", "error", err, "path", r.URL.Path)
		return false
	}
	return true
}

// renderForm renders a form page, falling back to the 500 page if the
// template fails. Validation failures are re-rendered with status 200.
func renderForm(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, name string, data render.TemplateData) {
	if err := renderer.Render(w, r, name, data); err != nil {
		renderer.ServerError(w, r, err)
	}
}

// formWithFlash builds template data for a re-rendered form that carries an
// error message not tied to any single field.
func formWithFlash(title string, f *form.Form, message string) render.TemplateData {
	return render.TemplateData{
		Title:     title,
		Form:      f,
		Flash:     message,
		FlashType: render.FlashError,
	}
}

// idParam returns the positive integer URL parameter {id}.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, ParamID), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
