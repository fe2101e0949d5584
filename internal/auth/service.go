// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth handles password hashing, account registration and the
// session-backed login state of the current user.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/cafe-go/internal/store"
)

// SessionKeyUserID is the session key holding the logged-in user's ID.
const SessionKeyUserID = "user_id"

var (
	// ErrInvalidCredentials is returned for both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateUsername is returned when registering a username that is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
)

// RegisterParams holds the fields of a new account. Password is plaintext.
type RegisterParams struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	Description string
	Email       string
	ImageURL    string
}

// Service authenticates users and tracks the logged-in user in the session.
type Service struct {
	queries  *store.Queries
	sessions *scs.SessionManager
}

// NewService creates an authentication service.
func NewService(queries *store.Queries, sessions *scs.SessionManager) *Service {
	return &Service{queries: queries, sessions: sessions}
}

// Register hashes the password and inserts a new user.
func (s *Service) Register(ctx context.Context, p RegisterParams) (store.User, error) {
	hash, err := HashPassword(p.Password)
	if err != nil {
		return store.User{}, fmt.Errorf("hashing password: %w", err)
	}

	imageURL := strings.TrimSpace(p.ImageURL)
	if imageURL == "" {
		imageURL = store.DefaultUserImageURL
	}

	now := time.Now()
	user, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		Username:    p.Username,
		Email:       p.Email,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Description: p.Description,
		ImageUrl:    imageURL,
		Password:    hash,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return store.User{}, ErrDuplicateUsername
		}
		return store.User{}, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user matching username and password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*store.User, error) {
	user, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if store.IsNotFound(err) {
			burnHash(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := CheckPassword(password, user.Password)
	if err != nil || !ok {
		// A corrupt stored hash is indistinguishable from a wrong password to the caller.
		return nil, ErrInvalidCredentials
	}

	if NeedsRehash(user.Password) {
		s.upgradeHash(ctx, &user, password)
	}
	return &user, nil
}

func (s *Service) upgradeHash(ctx context.Context, user *store.User, password string) {
	hash, err := HashPassword(password)
	if err != nil {
		return
	}
	if err := s.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
		Password:  hash,
		UpdatedAt: time.Now(),
		ID:        user.ID,
	}); err != nil {
		return
	}
	user.Password = hash
}

// Login binds user to the current session. The token is renewed first to
// prevent session fixation.
func (s *Service) Login(ctx context.Context, user *store.User) error {
	if err := s.sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	s.sessions.Put(ctx, SessionKeyUserID, user.ID)
	return nil
}

// Logout clears the logged-in user. Calling it without a login is a no-op apart from the token renewal.
func (s *Service) Logout(ctx context.Context) error {
	s.sessions.Remove(ctx, SessionKeyUserID)
	if err := s.sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	return nil
}

// CurrentUser resolves the session's user. It returns (nil, nil) when nobody
// is logged in or the stored ID no longer matches a row.
func (s *Service) CurrentUser(ctx context.Context) (*store.User, error) {
	userID := s.sessions.GetInt64(ctx, SessionKeyUserID)
	if userID == 0 {
		return nil, nil
	}

	user, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		if store.IsNotFound(err) {
			s.sessions.Remove(ctx, SessionKeyUserID)
			return nil, nil
		}
		return nil, fmt.Errorf("loading current user: %w", err)
	}
	return &user, nil
}
