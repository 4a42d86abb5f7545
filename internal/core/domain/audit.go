package domain

import "time"

const (
	AuditChildCreated = "child.created"
	AuditChildUpdated = "child.updated"
	AuditChildDeleted = "child.deleted"
)

// AuditEvent records a mutation of a guardian's data. Events for the same
// guardian are persisted in the order they occurred.
type AuditEvent struct {
	ID         string    `json:"id"`
	GuardianID string    `json:"guardian_id"`
	ChildID    string    `json:"child_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}
