package cache

import (
	"fmt"
	"log/slog"
	"time"
)

// Config selects and configures the cache backend.
type Config struct {
	// RedisURL enables the Redis backend when set, e.g. redis://localhost:6379/0
	RedisURL string

	// Prefix is the Redis key prefix
	Prefix string

	DefaultTTL      time.Duration
	CleanupInterval time.Duration
}

// DefaultConfig returns an in-memory configuration.
func DefaultConfig() Config {
	return Config{
		Prefix:          "cafe:",
		DefaultTTL:      time.Hour,
		CleanupInterval: time.Minute,
	}
}

// New creates a Redis cache when RedisURL is set, otherwise a memory cache.
// The returned string names the backend.
func New(cfg Config) (Cache, string, error) {
	if cfg.RedisURL == "" {
		return NewMemoryCache(cfg.DefaultTTL, cfg.CleanupInterval), "memory", nil
	}

	opts := DefaultRedisOptions()
	opts.URL = cfg.RedisURL
	if cfg.Prefix != "" {
		opts.Prefix = cfg.Prefix
	}
	if cfg.DefaultTTL > 0 {
		opts.DefaultTTL = cfg.DefaultTTL
	}

	rc, err := NewRedisCache(opts)
	if err != nil {
		return nil, "", fmt.Errorf("connecting to redis: %w", err)
	}
	return rc, "redis", nil
}

// NewWithFallback behaves like New but falls back to memory if Redis is unreachable.
func NewWithFallback(cfg Config, logger *slog.Logger) (Cache, string) {
	c, backend, err := New(cfg)
	if err == nil {
		return c, backend
	}
	logger.Warn("redis cache unavailable, using memory cache", "error", err)
	return NewMemoryCache(cfg.DefaultTTL, cfg.CleanupInterval), "memory"
}
