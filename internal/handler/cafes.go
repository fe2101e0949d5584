// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/olegiv/cafe-go/internal/cache"
	"github.com/olegiv/cafe-go/internal/form"
	"github.com/olegiv/cafe-go/internal/metrics"
	"github.com/olegiv/cafe-go/internal/middleware"
	"github.com/olegiv/cafe-go/internal/render"
	"github.com/olegiv/cafe-go/internal/service"
	"github.com/olegiv/cafe-go/internal/store"
)

// CafesHandler handles the add and edit cafe forms.
type CafesHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	cities       *cache.CityCache
	eventService *service.EventService
}

// NewCafesHandler creates a new CafesHandler.
func NewCafesHandler(db *sql.DB, renderer *render.Renderer, cities *cache.CityCache, events *service.EventService) *CafesHandler {
	return &CafesHandler{
		queries:      store.New(db),
		renderer:     renderer,
		cities:       cities,
		eventService: events,
	}
}

// schema builds the cafe form with the current city list as choices.
func (h *CafesHandler) schema(r *http.Request) (form.Schema, error) {
	cities, err := h.cities.List(r.Context())
	if err != nil {
		return form.Schema{}, fmt.Errorf("loading cities: %w", err)
	}
	return form.CafeSchema(form.CityChoices(cities)), nil
}

// AddForm renders the empty add cafe form.
func (h *CafesHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	schema, err := h.schema(r)
	if err != nil {
		h.renderer.ServerError(w, r, err)
		return
	}
	renderForm(w, r, h.renderer, tmplCafeForm, render.TemplateData{Title: titleAddCafe, Form: schema.Empty()})
}

// Add validates the submission and inserts a new cafe.
func (h *CafesHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrBadRequest(w, r) {
		return
	}

	schema, err := h.schema(r)
	if err != nil {
		h.renderer.ServerError(w, r, err)
		return
	}

	f := schema.Validate(r.PostForm)
	data := render.TemplateData{Title: titleAddCafe, Form: f}
	if !f.Valid() {
		renderForm(w, r, h.renderer, tmplCafeForm, data)
		return
	}

	cafe, err := h.queries.CreateCafe(r.Context(), form.NewCafe(f))
	if err != nil {
		// The city list is cached, so a city removed since then only shows up here.
		if store.IsForeignKeyViolation(err) {
			f.AddError("city_code", form.MsgInvalidChoice)
			renderForm(w, r, h.renderer, tmplCafeForm, data)
			return
		}
		h.renderer.ServerError(w, r, fmt.Errorf("creating cafe: %w", err))
		return
	}

	metrics.RecordCafeWrite("create")
	slog.Info("cafe created", "cafe_id", cafe.ID, "name", cafe.Name)
	_ = h.eventService.LogCafeEvent(r.Context(), "Cafe added", middleware.GetUserIDPtr(r), middleware.GetClientIP(r),
		map[string]any{"cafe_id": cafe.ID, "name": cafe.Name})

	flashSuccess(w, r, h.renderer, fmt.Sprintf(redirectCafeID, cafe.ID), fmt.Sprintf(msgCafeAdded, cafe.Name))
}

// loadCafe fetches the cafe named by the {id} URL parameter. It renders the
// 404 or 500 page itself and returns false when the cafe cannot be loaded.
func (h *CafesHandler) loadCafe(w http.ResponseWriter, r *http.Request) (store.Cafe, bool) {
	id, ok := idParam(r)
	if !ok {
		h.renderer.NotFound(w, r)
		return store.Cafe{}, false
	}

	cafe, err := h.queries.GetCafeByID(r.Context(), id)
	if err != nil {
		if store.IsNotFound(err) {
			h.renderer.NotFound(w, r)
		} else {
			h.renderer.ServerError(w, r, fmt.Errorf("loading cafe %d: %w", id, err))
		}
		return store.Cafe{}, false
	}
	return cafe, true
}

// EditForm renders the edit form prefilled with the cafe's current values.
func (h *CafesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	cafe, ok := h.loadCafe(w, r)
	if !ok {
		return
	}

	schema, err := h.schema(r)
	if err != nil {
		h.renderer.ServerError(w, r, err)
		return
	}

	renderForm(w, r, h.renderer, tmplCafeForm, render.TemplateData{
		Title: fmt.Sprintf(titleEditCafe, cafe.Name),
		Form:  schema.Prefill(form.CafeValues(cafe)),
		Data:  cafe.ID,
	})
}

// Edit validates the submission and overwrites every field of the cafe.
func (h *CafesHandler) Edit(w http.ResponseWriter, r *http.Request) {
	cafe, ok := h.loadCafe(w, r)
	if !ok {
		return
	}
	if !parseFormOrBadRequest(w, r) {
		return
	}

	schema, err := h.schema(r)
	if err != nil {
		h.renderer.ServerError(w, r, err)
		return
	}

	f := schema.Validate(r.PostForm)
	data := render.TemplateData{Title: fmt.Sprintf(titleEditCafe, cafe.Name), Form: f, Data: cafe.ID}
	if !f.Valid() {
		renderForm(w, r, h.renderer, tmplCafeForm, data)
		return
	}

	updated, err := h.queries.UpdateCafe(r.Context(), form.ApplyCafe(f, cafe.ID))
	if err != nil {
		switch {
		case store.IsForeignKeyViolation(err):
			f.AddError("city_code", form.MsgInvalidChoice)
			renderForm(w, r, h.renderer, tmplCafeForm, data)
		case store.IsNotFound(err):
			// deleted between the lookup and the update
			h.renderer.NotFound(w, r)
		default:
			h.renderer.ServerError(w, r, fmt.Errorf("updating cafe %d: %w", cafe.ID, err))
		}
		return
	}

	metrics.RecordCafeWrite("update")
	slog.Info("cafe updated", "cafe_id", updated.ID, "name", updated.Name)
	_ = h.eventService.LogCafeEvent(r.Context(), "Cafe edited", middleware.GetUserIDPtr(r), middleware.GetClientIP(r),
		map[string]any{"cafe_id": updated.ID, "name": updated.Name})

	flashSuccess(w, r, h.renderer, fmt.Sprintf(redirectCafeID, updated.ID), fmt.Sprintf(msgCafeEdited, updated.Name))
}
