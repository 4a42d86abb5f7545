package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// ErrNotInitialized is returned when the limiter or handle is invoked
// before the connection has been established.
var ErrNotInitialized = errors.New("redis: connection not initialized")

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Handle owns the Redis client for the lifetime of the process, mirroring
// the Mongo connection handle: created once at startup, passed by
// injection, closed once at shutdown. No package-level client.
type Handle struct {
	client *redis.Client
}

// Connect initialises a Redis client, validates connectivity with a ping,
// and returns the lifecycle handle. A default timeout is applied when none
// is provided.
func Connect(ctx context.Context, cfg Config) (*Handle, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Handle{client: client}, nil
}

// Client returns the underlying client for consumers bound to it.
func (h *Handle) Client() *redis.Client {
	return h.client
}

// Ping verifies the connection is still healthy (readiness probes).
func (h *Handle) Ping(ctx context.Context) error {
	if h == nil || h.client == nil {
		return ErrNotInitialized
	}
	return h.client.Ping(ctx).Err()
}

// Close releases the connection. Safe to call once at shutdown.
func (h *Handle) Close() error {
	if h == nil || h.client == nil {
		return nil
	}
	return h.client.Close()
}
