package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/saferide/kids-api/internal/core/domain"
	"github.com/saferide/kids-api/internal/core/ports"
)

const (
	maxChildAge     = 18
	maxNameLen      = 100
	maxAddrLen      = 500
	maxSchoolLen    = 200
	maxPhotoLen     = 1000
	maxAllergiesLen = 1000
	maxNotesLen     = 2000
)

// ChildService implements owner-scoped CRUD over child records.
type ChildService struct {
	children ports.ChildRepository
	users    ports.UserRepository
	audit    ports.AuditSink
	log      zerolog.Logger
	now      func() time.Time
}

func NewChildService(children ports.ChildRepository, users ports.UserRepository, log zerolog.Logger) *ChildService {
	return &ChildService{children: children, users: users, audit: nopSink{}, log: log, now: time.Now}
}

// WithClock overrides the time source used for age derivation and
// timestamps. Intended for tests.
func (s *ChildService) WithClock(now func() time.Time) *ChildService {
	s.now = now
	return s
}

// WithAudit routes mutation events to the given sink.
func (s *ChildService) WithAudit(sink ports.AuditSink) *ChildService {
	s.audit = sink
	return s
}

type nopSink struct{}

func (nopSink) Record(domain.AuditEvent) {}

func (s *ChildService) recordAudit(guardianID, childID, action string) {
	s.audit.Record(domain.AuditEvent{
		GuardianID: guardianID,
		ChildID:    childID,
		Action:     action,
		OccurredAt: s.now().UTC(),
	})
}

// CreateChild validates the payload, confirms the owner resolves to an
// active guardian, and stores the record. The owner check and the insert are
// two store round trips; a guardian deactivated in between still gets the
// child created. Accepted as a benign race for this domain.
func (s *ChildService) CreateChild(ctx context.Context, guardianID string, in ports.CreateChildInput) (*ports.ChildView, error) {
	now := s.now().UTC()

	if err := s.validateCreate(in, now); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, guardianID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, err
	}
	if owner.Role != domain.RoleGuardian || !owner.IsActive {
		return nil, domain.ErrOwnerNotFound
	}

	child := &domain.Child{
		GuardianID:        guardianID,
		Name:              in.Name,
		DateOfBirth:       in.DateOfBirth,
		HomeAddress:       in.HomeAddress,
		HomeCoordinates:   in.HomeCoordinates,
		SchoolName:        in.SchoolName,
		SchoolAddress:     in.SchoolAddress,
		SchoolCoordinates: in.SchoolCoordinates,
		PhotoURL:          in.PhotoURL,
		Allergies:         in.Allergies,
		Notes:             in.Notes,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.children.Insert(ctx, child)
	if err != nil {
		s.log.Error().Err(err).Str("guardian_id", guardianID).Msg("failed to create child")
		return nil, err
	}

	s.recordAudit(guardianID, created.ID, domain.AuditChildCreated)
	s.log.Info().Str("child_id", created.ID).Str("guardian_id", guardianID).Msg("child created")
	return s.view(created), nil
}

// ListMyChildren returns the guardian's active children, newest first.
func (s *ChildService) ListMyChildren(ctx context.Context, guardianID string) ([]*ports.ChildView, error) {
	children, err := s.children.FindByGuardian(ctx, guardianID)
	if err != nil {
		return nil, err
	}
	views := make([]*ports.ChildView, 0, len(children))
	for _, c := range children {
		views = append(views, s.view(c))
	}
	return views, nil
}

func (s *ChildService) GetChild(ctx context.Context, id, guardianID string) (*ports.ChildView, error) {
	child, err := s.children.FindOne(ctx, id, guardianID)
	if err != nil {
		return nil, err
	}
	return s.view(child), nil
}

// UpdateChild applies the non-nil fields of changes to an owned, active
// record. An empty change set on an owned record reports ErrNoChanges.
func (s *ChildService) UpdateChild(ctx context.Context, id, guardianID string, changes ports.ChildUpdate) (*ports.ChildView, error) {
	if changes.Empty() {
		// Ownership still decides the outcome: not-found wins over no-op.
		if _, err := s.children.FindOne(ctx, id, guardianID); err != nil {
			return nil, err
		}
		return nil, domain.ErrNoChanges
	}

	if err := s.validateUpdate(changes, s.now().UTC()); err != nil {
		return nil, err
	}

	updated, err := s.children.Update(ctx, id, guardianID, changes)
	if err != nil {
		return nil, err
	}

	s.recordAudit(guardianID, id, domain.AuditChildUpdated)
	s.log.Info().Str("child_id", id).Str("guardian_id", guardianID).Msg("child updated")
	return s.view(updated), nil
}

func (s *ChildService) DeleteChild(ctx context.Context, id, guardianID string) error {
	if err := s.children.SoftDelete(ctx, id, guardianID); err != nil {
		return err
	}
	s.recordAudit(guardianID, id, domain.AuditChildDeleted)
	s.log.Info().Str("child_id", id).Str("guardian_id", guardianID).Msg("child deactivated")
	return nil
}

func (s *ChildService) view(c *domain.Child) *ports.ChildView {
	return &ports.ChildView{
		ID:                c.ID,
		GuardianID:        c.GuardianID,
		Name:              c.Name,
		DateOfBirth:       c.DateOfBirth,
		Age:               c.AgeAt(s.now().UTC()),
		HomeAddress:       c.HomeAddress,
		HomeCoordinates:   c.HomeCoordinates,
		SchoolName:        c.SchoolName,
		SchoolAddress:     c.SchoolAddress,
		SchoolCoordinates: c.SchoolCoordinates,
		PhotoURL:          c.PhotoURL,
		Allergies:         c.Allergies,
		Notes:             c.Notes,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func (s *ChildService) validateCreate(in ports.CreateChildInput, now time.Time) error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validateDateOfBirth(in.DateOfBirth, now); err != nil {
		return err
	}
	if err := validateAddress("home_address", in.HomeAddress); err != nil {
		return err
	}
	if err := validateCoordinates("home_coordinates", in.HomeCoordinates); err != nil {
		return err
	}
	if in.SchoolName == "" || len(in.SchoolName) > maxSchoolLen {
		return &domain.ValidationError{Field: "school_name", Reason: "must be 1-200 characters"}
	}
	if err := validateAddress("school_address", in.SchoolAddress); err != nil {
		return err
	}
	if err := validateCoordinates("school_coordinates", in.SchoolCoordinates); err != nil {
		return err
	}
	if err := validatePhotoURL(in.PhotoURL); err != nil {
		return err
	}
	if len(in.Allergies) > maxAllergiesLen {
		return &domain.ValidationError{Field: "allergies", Reason: "must be at most 1000 characters"}
	}
	if len(in.Notes) > maxNotesLen {
		return &domain.ValidationError{Field: "notes", Reason: "must be at most 2000 characters"}
	}
	return nil
}

func (s *ChildService) validateUpdate(changes ports.ChildUpdate, now time.Time) error {
	if changes.Name != nil {
		if err := validateName(*changes.Name); err != nil {
			return err
		}
	}
	if changes.DateOfBirth != nil {
		if err := validateDateOfBirth(*changes.DateOfBirth, now); err != nil {
			return err
		}
	}
	if changes.HomeAddress != nil {
		if err := validateAddress("home_address", *changes.HomeAddress); err != nil {
			return err
		}
	}
	if changes.HomeCoordinates != nil {
		if err := validateCoordinates("home_coordinates", *changes.HomeCoordinates); err != nil {
			return err
		}
	}
	if changes.SchoolName != nil {
		if *changes.SchoolName == "" || len(*changes.SchoolName) > maxSchoolLen {
			return &domain.ValidationError{Field: "school_name", Reason: "must be 1-200 characters"}
		}
	}
	if changes.SchoolAddress != nil {
		if err := validateAddress("school_address", *changes.SchoolAddress); err != nil {
			return err
		}
	}
	if changes.SchoolCoordinates != nil {
		if err := validateCoordinates("school_coordinates", *changes.SchoolCoordinates); err != nil {
			return err
		}
	}
	if changes.PhotoURL != nil {
		if err := validatePhotoURL(*changes.PhotoURL); err != nil {
			return err
		}
	}
	if changes.Allergies != nil && len(*changes.Allergies) > maxAllergiesLen {
		return &domain.ValidationError{Field: "allergies", Reason: "must be at most 1000 characters"}
	}
	if changes.Notes != nil && len(*changes.Notes) > maxNotesLen {
		return &domain.ValidationError{Field: "notes", Reason: "must be at most 2000 characters"}
	}
	return nil
}

func validateName(name string) error {
	if name == "" || len(name) > maxNameLen {
		return &domain.ValidationError{Field: "name", Reason: "must be 1-100 characters"}
	}
	return nil
}

func validateAddress(field, addr string) error {
	if addr == "" || len(addr) > maxAddrLen {
		return &domain.ValidationError{Field: field, Reason: "must be 1-500 characters"}
	}
	return nil
}

func validateCoordinates(field string, p domain.GeoPoint) error {
	if !p.InBounds() {
		return &domain.ValidationError{Field: field, Reason: "longitude must be in [-180,180] and latitude in [-90,90]"}
	}
	return nil
}

func validateDateOfBirth(dob, now time.Time) error {
	probe := domain.Child{DateOfBirth: dob}
	age := probe.AgeAt(now)
	if age < 0 {
		return &domain.ValidationError{Field: "date_of_birth", Reason: "cannot be in the future"}
	}
	if age > maxChildAge {
		return &domain.ValidationError{Field: "date_of_birth", Reason: "child must be 18 years old or younger"}
	}
	return nil
}

func validatePhotoURL(url string) error {
	if url == "" {
		return nil
	}
	if len(url) > maxPhotoLen {
		return &domain.ValidationError{Field: "photo_url", Reason: "must be at most 1000 characters"}
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return &domain.ValidationError{Field: "photo_url", Reason: "must start with http:// or https://"}
	}
	return nil
}
