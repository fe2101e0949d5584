// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render executes the HTML page templates and manages flash messages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexedwards/scs/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/cafe-go/internal/form"
	"github.com/olegiv/cafe-go/internal/middleware"
	"github.com/olegiv/cafe-go/internal/store"
)

// Session keys of the one-time flash message.
const (
	flashKey     = "flash"
	flashTypeKey = "flash_type"
)

// Flash types understood by the flash partial.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Template names of the error pages.
const (
	NotFoundTemplate    = "errors/404"
	ServerErrorTemplate = "errors/500"
)

const (
	baseLayout  = "layouts/base.html"
	partialsDir = "partials"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	isDev          bool
	markdown       goldmark.Markdown
	sanitizer      *bluemonday.Policy
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	IsDev          bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		isDev:          cfg.IsDev,
		markdown:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitizer:      bluemonday.UGCPolicy(),
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses every page template together with the base layout
// and all partials. A page at "cafe/list.html" is registered as "cafe/list".
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := fs.Glob(templatesFS, partialsDir+"/*.html")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	err = fs.WalkDir(templatesFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p == "layouts" || p == partialsDir {
				return fs.SkipDir
			}
			return nil
		}
		if path.Ext(p) != ".html" {
			return nil
		}

		files := append([]string{baseLayout}, partials...)
		files = append(files, p)

		tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", p, err)
		}

		r.templates[strings.TrimSuffix(p, ".html")] = tmpl
		return nil
	})
	if err != nil {
		return err
	}

	if len(r.templates) == 0 {
		return fmt.Errorf("no page templates found")
	}
	return nil
}

// HasTemplate reports whether a page template with the given name was parsed.
func (r *Renderer) HasTemplate(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Markdown converts Markdown source to sanitized HTML.
func (r *Renderer) Markdown(src string) template.HTML {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(r.sanitizer.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized by bluemonday
}

// templateFuncs returns custom template functions.
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": r.Markdown,
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
		"truncate": func(s string, length int) string {
			if utf8.RuneCountInString(s) <= length {
				return s
			}
			return string([]rune(s)[:length]) + "..."
		},
		// dict builds a map for passing several values to a partial.
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
				}
				m[key] = pairs[i+1]
			}
			return m, nil
		},
	}
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Data        any
	Form        *form.Form
	CurrentUser *store.User
	Flash       string
	FlashType   string
	CurrentYear int
	RequestPath string
	IsDev       bool
}

// Render renders a page template with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a page template with the given status code. The
// current user and any pending flash message are added to data.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	data.CurrentUser = middleware.GetUser(req)
	data.RequestPath = middleware.GetRequestPath(req.Context())
	if data.RequestPath == "" {
		data.RequestPath = req.URL.Path
	}
	data.IsDev = r.isDev

	if r.sessionManager != nil {
		if flash := r.sessionManager.PopString(req.Context(), flashKey); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(req.Context(), flashTypeKey)
			if data.FlashType == "" {
				data.FlashType = FlashInfo
			}
		}
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

// Page renders a page and turns template failures into a 500.
func (r *Renderer) Page(w http.ResponseWriter, req *http.Request, name, title string, data any) {
	if err := r.Render(w, req, name, TemplateData{Title: title, Data: data}); err != nil {
		r.ServerError(w, req, err)
	}
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound(w http.ResponseWriter, req *http.Request) {
	if err := r.RenderStatus(w, req, http.StatusNotFound, NotFoundTemplate, TemplateData{Title: "Page Not Found"}); err != nil {
		slog.Error("rendering 404 page", "error", err)
		http.NotFound(w, req)
	}
}

// ServerError logs err and renders the 500 page.
func (r *Renderer) ServerError(w http.ResponseWriter, req *http.Request, err error) {
	slog.Error("internal server error", "error", err, "method", req.Method, "path", req.URL.Path)

	if rerr := r.RenderStatus(w, req, http.StatusInternalServerError, ServerErrorTemplate, TemplateData{Title: "Server Error"}); rerr != nil {
		slog.Error("rendering 500 page", "error", rerr)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// SetFlash sets a flash message in the session.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), flashKey, message)
		r.sessionManager.Put(req.Context(), flashTypeKey, flashType)
	}
}
