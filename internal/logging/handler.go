// Package logging provides a slog handler that copies WARN and ERROR records
// into the events table so operational problems show up in the audit trail.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/olegiv/cafe-go/internal/model"
	"github.com/olegiv/cafe-go/internal/store"
)

// EventLogHandler wraps another handler and also writes records at or above
// its level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []slog.Attr
	group   string
}

// NewEventLogHandler creates a handler forwarding WARN and above.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a handler with a custom minimum forwarding level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeEvent(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	c.inner = h.inner.WithAttrs(attrs)
	for _, a := range attrs {
		c.attrs = append(c.attrs, h.qualify(a))
	}
	return c
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	c := h.clone()
	c.inner = h.inner.WithGroup(name)
	if name != "" {
		c.group = h.qualifyKey(name)
	}
	return c
}

func (h *EventLogHandler) clone() *EventLogHandler {
	c := *h
	c.attrs = append([]slog.Attr(nil), h.attrs...)
	return &c
}

func (h *EventLogHandler) qualifyKey(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func (h *EventLogHandler) qualify(a slog.Attr) slog.Attr {
	return slog.Attr{Key: h.qualifyKey(a.Key), Value: a.Value}
}

// writeEvent runs on a background context so records logged while a request
// is being cancelled are still stored.
func (h *EventLogHandler) writeEvent(r slog.Record) {
	e := store.CreateEventParams{
		Level:     model.EventLevelFromSlog(r.Level),
		Message:   r.Message,
		CreatedAt: r.Time,
	}

	meta := make(map[string]string)
	collect := func(a slog.Attr) {
		switch a.Key {
		case "category":
			e.Category = a.Value.String()
		case "user_id":
			if a.Value.Kind() == slog.KindInt64 {
				e.UserID = sql.NullInt64{Int64: a.Value.Int64(), Valid: true}
			}
		case "ip", "ip_address":
			e.IpAddress = a.Value.String()
		default:
			meta[a.Key] = a.Value.String()
		}
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(h.qualify(a))
		return true
	})

	if !model.IsValidEventCategory(e.Category) {
		e.Category = inferCategory(r.Message)
	}

	e.Metadata = "{}"
	if len(meta) > 0 {
		if b, err := json.Marshal(meta); err == nil {
			e.Metadata = string(b)
		}
	}

	_, _ = h.queries.CreateEvent(context.Background(), e)
}

func inferCategory(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "login"), strings.Contains(msg, "logout"),
		strings.Contains(msg, "auth"), strings.Contains(msg, "session"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "cafe"):
		return model.EventCategoryCafe
	case strings.Contains(msg, "user"), strings.Contains(msg, "profile"):
		return model.EventCategoryUser
	default:
		return model.EventCategorySystem
	}
}
