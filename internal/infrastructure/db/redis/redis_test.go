package redis

import (
	"context"
	"errors"
	"testing"
)

func TestHandle_FailFastWhenUninitialized(t *testing.T) {
	var h *Handle
	if err := h.Ping(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("nil handle: expected ErrNotInitialized, got %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("nil handle close must be a no-op, got %v", err)
	}

	empty := &Handle{}
	if err := empty.Ping(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("empty handle: expected ErrNotInitialized, got %v", err)
	}
	if err := empty.Close(); err != nil {
		t.Fatalf("empty handle close must be a no-op, got %v", err)
	}
}

func TestLoginLimiter_FailFastWhenUninitialized(t *testing.T) {
	l := &LoginLimiter{}

	if _, err := l.IsBlocked(context.Background(), "g@example.com"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("IsBlocked: expected ErrNotInitialized, got %v", err)
	}
	if err := l.RecordFailure(context.Background(), "g@example.com"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("RecordFailure: expected ErrNotInitialized, got %v", err)
	}
	if err := l.Reset(context.Background(), "g@example.com"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Reset: expected ErrNotInitialized, got %v", err)
	}
}
