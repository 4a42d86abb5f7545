package ports

import (
	"context"
	"time"

	"github.com/saferide/kids-api/internal/core/domain"
)

// ChildUpdate carries a partial update; nil fields are left untouched.
type ChildUpdate struct {
	Name              *string
	DateOfBirth       *time.Time
	HomeAddress       *string
	HomeCoordinates   *domain.GeoPoint
	SchoolName        *string
	SchoolAddress     *string
	SchoolCoordinates *domain.GeoPoint
	PhotoURL          *string
	Allergies         *string
	Notes             *string
}

// Empty reports whether the update carries no fields at all.
func (u ChildUpdate) Empty() bool {
	return u.Name == nil && u.DateOfBirth == nil &&
		u.HomeAddress == nil && u.HomeCoordinates == nil &&
		u.SchoolName == nil && u.SchoolAddress == nil && u.SchoolCoordinates == nil &&
		u.PhotoURL == nil && u.Allergies == nil && u.Notes == nil
}

// ChildRepository defines persistence for owner-scoped child records. Every
// read and mutation is filtered by guardianID; a record that is absent,
// soft-deleted, or owned by someone else surfaces as domain.ErrChildNotFound.
type ChildRepository interface {
	Insert(ctx context.Context, child *domain.Child) (*domain.Child, error)
	// FindByGuardian returns the guardian's active children, newest first.
	FindByGuardian(ctx context.Context, guardianID string) ([]*domain.Child, error)
	FindOne(ctx context.Context, id, guardianID string) (*domain.Child, error)
	// Update applies the non-nil fields of changes. A match that results in
	// no modification returns domain.ErrNoChanges.
	Update(ctx context.Context, id, guardianID string, changes ChildUpdate) (*domain.Child, error)
	// SoftDelete flips is_active to false. There is no way back.
	SoftDelete(ctx context.Context, id, guardianID string) error
}
