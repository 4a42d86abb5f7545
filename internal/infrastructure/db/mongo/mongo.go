package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// ErrNotInitialized is returned when a repository is invoked before the
// connection handle has been established.
var ErrNotInitialized = errors.New("mongo: connection not initialized")

// Config captures the minimal settings required to establish a MongoDB
// connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Handle owns the pooled client for the lifetime of the process. It is
// created once at startup, passed to repositories by injection, and closed
// once at shutdown. There is deliberately no package-level client.
type Handle struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes the client, verifies connectivity with a ping, and
// returns the lifecycle handle. A default timeout is applied when none is
// provided.
func Connect(ctx context.Context, cfg Config) (*Handle, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Handle{client: client, db: client.Database(cfg.Database)}, nil
}

// Database returns the selected database.
func (h *Handle) Database() *mongo.Database {
	return h.db
}

// Ping verifies the connection is still healthy (readiness probes).
func (h *Handle) Ping(ctx context.Context) error {
	if h == nil || h.client == nil {
		return ErrNotInitialized
	}
	return h.client.Ping(ctx, nil)
}

// Close releases the connection pool. Safe to call once at shutdown.
func (h *Handle) Close(ctx context.Context) error {
	if h == nil || h.client == nil {
		return nil
	}
	return h.client.Disconnect(ctx)
}
