// Package session configures the cookie session manager shared by the auth
// service, flash messages and CSRF-protected forms.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

const (
	// Lifetime is the absolute session lifetime.
	Lifetime = 24 * time.Hour
	// IdleTimeout expires sessions with no activity.
	IdleTimeout = 2 * time.Hour

	cleanupInterval = 5 * time.Minute
	cookieName      = "cafe_session"
)

// New creates a session manager persisted in the sessions table of db.
// The returned stop function ends the store's expired-session cleanup goroutine.
func New(db *sql.DB, isDev bool) (*scs.SessionManager, func()) {
	store := sqlite3store.NewWithCleanupInterval(db, cleanupInterval)

	sm := scs.New()
	sm.Store = store
	sm.Lifetime = Lifetime
	sm.IdleTimeout = IdleTimeout
	sm.Cookie.Name = cookieName
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev

	// __Host- cookies must be Secure, host-only and scoped to "/"
	if !isDev {
		sm.Cookie.Name = "__Host-" + cookieName
	}

	return sm, store.StopCleanup
}
