// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the cafe directory.
package testutil

import (
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/cafe-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "cafe-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// TestMemoryDB creates a migrated in-memory SQLite database using the cgo driver.
// The pool is pinned to one connection since every :memory: connection is a separate database.
func TestMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestSessionManager returns a session manager using the default in-memory store.
func TestSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

// CreateUser inserts a user row with a precomputed password hash.
func CreateUser(t *testing.T, db *sql.DB, username, passwordHash string) store.User {
	t.Helper()

	now := time.Now()
	user, err := store.New(db).CreateUser(t.Context(), store.CreateUserParams{
		Username:    username,
		Email:       username + "@example.com",
		FirstName:   "Test",
		LastName:    "User",
		Description: "A test user.",
		ImageUrl:    store.DefaultUserImageURL,
		Password:    passwordHash,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

// CreateCafe inserts a cafe in the given city.
func CreateCafe(t *testing.T, db *sql.DB, name, cityCode string) store.Cafe {
	t.Helper()

	now := time.Now()
	cafe, err := store.New(db).CreateCafe(t.Context(), store.CreateCafeParams{
		Name:        name,
		Description: "Great coffee.",
		Url:         "https://example.com",
		Address:     "123 Main St",
		CityCode:    cityCode,
		ImageUrl:    store.DefaultCafeImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateCafe: %v", err)
	}
	return cafe
}
