package handler

import (
	"time"

	"github.com/saferide/kids-api/internal/core/domain"
	"github.com/saferide/kids-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// Coordinates travel as [longitude, latitude] pairs, the GeoJSON order the
// mobile clients have always sent.

type createChildRequest struct {
	Name              string    `json:"name" validate:"required,max=100"`
	DateOfBirth       string    `json:"date_of_birth" validate:"required"`
	HomeAddress       string    `json:"home_address" validate:"required,max=500"`
	HomeCoordinates   []float64 `json:"home_coordinates" validate:"required,len=2"`
	SchoolName        string    `json:"school_name" validate:"required,max=200"`
	SchoolAddress     string    `json:"school_address" validate:"required,max=500"`
	SchoolCoordinates []float64 `json:"school_coordinates" validate:"required,len=2"`
	PhotoURL          string    `json:"photo_url" validate:"omitempty,max=1000"`
	Allergies         string    `json:"allergies" validate:"omitempty,max=1000"`
	Notes             string    `json:"notes" validate:"omitempty,max=2000"`
}

type updateChildRequest struct {
	Name              *string   `json:"name" validate:"omitempty,max=100"`
	DateOfBirth       *string   `json:"date_of_birth"`
	HomeAddress       *string   `json:"home_address" validate:"omitempty,max=500"`
	HomeCoordinates   []float64 `json:"home_coordinates" validate:"omitempty,len=2"`
	SchoolName        *string   `json:"school_name" validate:"omitempty,max=200"`
	SchoolAddress     *string   `json:"school_address" validate:"omitempty,max=500"`
	SchoolCoordinates []float64 `json:"school_coordinates" validate:"omitempty,len=2"`
	PhotoURL          *string   `json:"photo_url" validate:"omitempty,max=1000"`
	Allergies         *string   `json:"allergies" validate:"omitempty,max=1000"`
	Notes             *string   `json:"notes" validate:"omitempty,max=2000"`
}

type childResponse struct {
	ID                string    `json:"id"`
	GuardianID        string    `json:"guardian_id"`
	Name              string    `json:"name"`
	DateOfBirth       string    `json:"date_of_birth"`
	Age               int       `json:"age"`
	HomeAddress       string    `json:"home_address"`
	HomeCoordinates   []float64 `json:"home_coordinates"`
	SchoolName        string    `json:"school_name"`
	SchoolAddress     string    `json:"school_address"`
	SchoolCoordinates []float64 `json:"school_coordinates"`
	PhotoURL          string    `json:"photo_url,omitempty"`
	Allergies         string    `json:"allergies,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         string    `json:"created_at"`
	UpdatedAt         string    `json:"updated_at"`
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Reason: "must be a valid date in YYYY-MM-DD format"}
	}
	return t.UTC(), nil
}

func toGeoPoint(pair []float64) domain.GeoPoint {
	return domain.GeoPoint{Lng: pair[0], Lat: pair[1]}
}

func fromGeoPoint(p domain.GeoPoint) []float64 {
	return []float64{p.Lng, p.Lat}
}

func (r createChildRequest) toInput() (ports.CreateChildInput, error) {
	dob, err := parseDate("date_of_birth", r.DateOfBirth)
	if err != nil {
		return ports.CreateChildInput{}, err
	}
	return ports.CreateChildInput{
		Name:              r.Name,
		DateOfBirth:       dob,
		HomeAddress:       r.HomeAddress,
		HomeCoordinates:   toGeoPoint(r.HomeCoordinates),
		SchoolName:        r.SchoolName,
		SchoolAddress:     r.SchoolAddress,
		SchoolCoordinates: toGeoPoint(r.SchoolCoordinates),
		PhotoURL:          r.PhotoURL,
		Allergies:         r.Allergies,
		Notes:             r.Notes,
	}, nil
}

func (r updateChildRequest) toUpdate() (ports.ChildUpdate, error) {
	changes := ports.ChildUpdate{
		Name:          r.Name,
		HomeAddress:   r.HomeAddress,
		SchoolName:    r.SchoolName,
		SchoolAddress: r.SchoolAddress,
		PhotoURL:      r.PhotoURL,
		Allergies:     r.Allergies,
		Notes:         r.Notes,
	}
	if r.DateOfBirth != nil {
		dob, err := parseDate("date_of_birth", *r.DateOfBirth)
		if err != nil {
			return ports.ChildUpdate{}, err
		}
		changes.DateOfBirth = &dob
	}
	if r.HomeCoordinates != nil {
		p := toGeoPoint(r.HomeCoordinates)
		changes.HomeCoordinates = &p
	}
	if r.SchoolCoordinates != nil {
		p := toGeoPoint(r.SchoolCoordinates)
		changes.SchoolCoordinates = &p
	}
	return changes, nil
}

func newChildResponse(v *ports.ChildView) childResponse {
	return childResponse{
		ID:                v.ID,
		GuardianID:        v.GuardianID,
		Name:              v.Name,
		DateOfBirth:       v.DateOfBirth.Format(dateLayout),
		Age:               v.Age,
		HomeAddress:       v.HomeAddress,
		HomeCoordinates:   fromGeoPoint(v.HomeCoordinates),
		SchoolName:        v.SchoolName,
		SchoolAddress:     v.SchoolAddress,
		SchoolCoordinates: fromGeoPoint(v.SchoolCoordinates),
		PhotoURL:          v.PhotoURL,
		Allergies:         v.Allergies,
		Notes:             v.Notes,
		CreatedAt:         v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
