// Package model holds the audit event vocabulary shared by the event
// service and the logging handler.
package model

import "log/slog"

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth   = "auth"
	EventCategoryCafe   = "cafe"
	EventCategoryUser   = "user"
	EventCategorySystem = "system"
)

// EventLevelFromSlog maps a slog level onto an event level.
func EventLevelFromSlog(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return EventLevelError
	case level >= slog.LevelWarn:
		return EventLevelWarning
	default:
		return EventLevelInfo
	}
}

// IsValidEventCategory reports whether c is one of the known categories.
func IsValidEventCategory(c string) bool {
	switch c {
	case EventCategoryAuth, EventCategoryCafe, EventCategoryUser, EventCategorySystem:
		return true
	}
	return false
}
