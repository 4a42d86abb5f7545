package ports

import (
	"context"

	"github.com/saferide/kids-api/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	// FindByGuardian returns a guardian's audit trail, newest first.
	FindByGuardian(ctx context.Context, guardianID string) ([]*domain.AuditEvent, error)
}

// AuditSink accepts audit events for asynchronous persistence. Record must
// not block the caller beyond buffering.
type AuditSink interface {
	Record(event domain.AuditEvent)
}
