package ports

import (
	"context"
	"time"

	"github.com/saferide/kids-api/internal/core/domain"
)

// CreateChildInput carries all data needed to register a child.
type CreateChildInput struct {
	Name              string
	DateOfBirth       time.Time
	HomeAddress       string
	HomeCoordinates   domain.GeoPoint
	SchoolName        string
	SchoolAddress     string
	SchoolCoordinates domain.GeoPoint
	PhotoURL          string
	Allergies         string
	Notes             string
}

// ChildView is the outward representation of a child. Age is derived from
// the date of birth at read time, never persisted.
type ChildView struct {
	ID                string
	GuardianID        string
	Name              string
	DateOfBirth       time.Time
	Age               int
	HomeAddress       string
	HomeCoordinates   domain.GeoPoint
	SchoolName        string
	SchoolAddress     string
	SchoolCoordinates domain.GeoPoint
	PhotoURL          string
	Allergies         string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ChildService defines the owner-scoped use cases over child records. The
// guardianID always comes from the verified caller identity, never from the
// request payload.
type ChildService interface {
	CreateChild(ctx context.Context, guardianID string, in CreateChildInput) (*ChildView, error)
	ListMyChildren(ctx context.Context, guardianID string) ([]*ChildView, error)
	GetChild(ctx context.Context, id, guardianID string) (*ChildView, error)
	UpdateChild(ctx context.Context, id, guardianID string, changes ChildUpdate) (*ChildView, error)
	DeleteChild(ctx context.Context, id, guardianID string) error
}
