// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package view serves read-only list and detail pages for any registered
// resource kind, so each kind only declares its queries and templates.
package view

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
)

// ErrNotFound is returned by Get functions when the key matches no row.
var ErrNotFound = errors.New("not found")

// Kind names a resource type, e.g. "cafe".
type Kind string

// Entry describes how to list and fetch one resource kind.
type Entry struct {
	Kind           Kind
	Title          string
	List           func(ctx context.Context) (any, error)
	Get            func(ctx context.Context, key string) (any, error)
	ItemTitle      func(item any) string
	ListTemplate   string
	DetailTemplate string
}

// DefaultTemplates returns the conventional "<kind>/list" and "<kind>/detail" template names.
func DefaultTemplates(kind Kind) (list, detail string) {
	return string(kind) + "/list", string(kind) + "/detail"
}

// ListPage is the template data of a list page.
type ListPage struct {
	Kind  Kind
	Items any
}

// DetailPage is the template data of a detail page.
type DetailPage struct {
	Kind Kind
	Item any
}

// Renderer writes pages and error pages.
type Renderer interface {
	Page(w http.ResponseWriter, r *http.Request, name, title string, data any)
	NotFound(w http.ResponseWriter, r *http.Request)
	ServerError(w http.ResponseWriter, r *http.Request, err error)
}

// Registry maps kinds to their entries.
type Registry struct {
	renderer Renderer

	mu      sync.RWMutex
	entries map[Kind]Entry
}

// NewRegistry creates an empty registry rendering through renderer.
func NewRegistry(renderer Renderer) *Registry {
	return &Registry{
		renderer: renderer,
		entries:  make(map[Kind]Entry),
	}
}

// Register adds an entry. Missing template names fall back to DefaultTemplates.
func (reg *Registry) Register(e Entry) error {
	if e.Kind == "" {
		return errors.New("view: entry has no kind")
	}
	if e.List == nil || e.Get == nil {
		return fmt.Errorf("view: entry %q needs both List and Get", e.Kind)
	}

	list, detail := DefaultTemplates(e.Kind)
	if e.ListTemplate == "" {
		e.ListTemplate = list
	}
	if e.DetailTemplate == "" {
		e.DetailTemplate = detail
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.entries[e.Kind]; exists {
		return fmt.Errorf("view: kind %q already registered", e.Kind)
	}
	reg.entries[e.Kind] = e
	return nil
}

// Lookup returns the entry for kind.
func (reg *Registry) Lookup(kind Kind) (Entry, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	e, ok := reg.entries[kind]
	return e, ok
}

// ListHandler renders every row of kind with its list template.
func (reg *Registry) ListHandler(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := reg.Lookup(kind)
		if !ok {
			reg.renderer.NotFound(w, r)
			return
		}

		items, err := e.List(r.Context())
		if err != nil {
			reg.renderer.ServerError(w, r, fmt.Errorf("listing %s: %w", kind, err))
			return
		}

		reg.renderer.Page(w, r, e.ListTemplate, e.Title, ListPage{Kind: kind, Items: items})
	}
}

// DetailHandler renders the row of kind identified by the chi URL parameter param.
func (reg *Registry) DetailHandler(kind Kind, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := reg.Lookup(kind)
		if !ok {
			reg.renderer.NotFound(w, r)
			return
		}

		item, err := e.Get(r.Context(), chi.URLParam(r, param))
		if err != nil {
			if IsNotFound(err) {
				reg.renderer.NotFound(w, r)
				return
			}
			reg.renderer.ServerError(w, r, fmt.Errorf("getting %s: %w", kind, err))
			return
		}

		title := e.Title
		if e.ItemTitle != nil {
			title = e.ItemTitle(item)
		}
		reg.renderer.Page(w, r, e.DetailTemplate, title, DetailPage{Kind: kind, Item: item})
	}
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// Resource builds an Entry from typed query functions.
type Resource[T any] struct {
	Kind  Kind
	Title string
	List  func(ctx context.Context) ([]T, error)
	Get   func(ctx context.Context, key string) (T, error)
	Name  func(T) string
}

// Entry converts the resource into a registry entry using the default templates.
func (res Resource[T]) Entry() Entry {
	list, detail := DefaultTemplates(res.Kind)
	e := Entry{
		Kind:  res.Kind,
		Title: res.Title,
		List: func(ctx context.Context) (any, error) {
			return res.List(ctx)
		},
		Get: func(ctx context.Context, key string) (any, error) {
			return res.Get(ctx, key)
		},
		ListTemplate:   list,
		DetailTemplate: detail,
	}
	if res.Name != nil {
		e.ItemTitle = func(item any) string {
			return res.Name(item.(T))
		}
	}
	return e
}

// ByID adapts a lookup by numeric ID to a string key. Keys that are not
// positive integers yield ErrNotFound.
func ByID[T any](get func(ctx context.Context, id int64) (T, error)) func(ctx context.Context, key string) (T, error) {
	return func(ctx context.Context, key string) (T, error) {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || id <= 0 {
			var zero T
			return zero, ErrNotFound
		}
		return get(ctx, id)
	}
}
