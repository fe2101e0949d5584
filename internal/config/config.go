// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application settings from CAFE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"super-secret-key-super-secret-key",
}

// ErrWeakSecret is returned when CAFE_SESSION_SECRET is too short or a published example value.
var ErrWeakSecret = errors.New("weak session secret")

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"CAFE_DB_PATH" envDefault:"./data/cafe.db"`
	SessionSecret string `env:"CAFE_SESSION_SECRET,required"`
	ServerHost    string `env:"CAFE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"CAFE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"CAFE_ENV" envDefault:"development"`
	LogLevel      string `env:"CAFE_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL    string `env:"CAFE_REDIS_URL"`                       // Optional Redis URL for the city cache
	CachePrefix string `env:"CAFE_CACHE_PREFIX" envDefault:"cafe:"` // Redis key prefix
	CacheTTL    int    `env:"CAFE_CACHE_TTL" envDefault:"3600"`     // Cache TTL in seconds

	// Audit events older than this are pruned by the scheduler
	EventRetentionDays int `env:"CAFE_EVENT_RETENTION_DAYS" envDefault:"90"`

	DoSeed bool `env:"CAFE_DO_SEED" envDefault:"false"` // Insert sample cafes on an empty database
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// EventRetention returns how long audit events are kept.
func (c Config) EventRetention() time.Duration {
	return time.Duration(c.EventRetentionDays) * 24 * time.Hour
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validateSecret(cfg.SessionSecret); err != nil {
		return nil, err
	}

	if cfg.EventRetentionDays < 1 {
		return nil, fmt.Errorf("CAFE_EVENT_RETENTION_DAYS must be positive, got %d", cfg.EventRetentionDays)
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("CAFE_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

func validateSecret(secret string) error {
	if len(secret) < MinSessionSecretLength {
		return fmt.Errorf("%w: CAFE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			ErrWeakSecret, MinSessionSecretLength, len(secret))
	}
	for _, weak := range knownWeakSecrets {
		if secret == weak {
			return fmt.Errorf("%w: CAFE_SESSION_SECRET is a known example value", ErrWeakSecret)
		}
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	classes := []string{
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"0123456789",
		"!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\",
	}
	n := 0
	for _, chars := range classes {
		if strings.ContainsAny(s, chars) {
			n++
		}
	}
	return n >= 3
}
