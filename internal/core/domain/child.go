package domain

import "time"

// GeoPoint is a longitude/latitude pair, matching the [lng, lat] order the
// mobile clients send (GeoJSON convention).
type GeoPoint struct {
	Lng float64 `json:"lng" bson:"lng"`
	Lat float64 `json:"lat" bson:"lat"`
}

// InBounds reports whether the point lies inside the inclusive valid range.
func (p GeoPoint) InBounds() bool {
	return p.Lng >= -180 && p.Lng <= 180 && p.Lat >= -90 && p.Lat <= 90
}

// Child is a dependent record owned by exactly one guardian. GuardianID is a
// reference by value to the owning User, not a lifetime coupling. IsActive is
// the soft-delete marker: the only transition is true -> false.
type Child struct {
	ID                string    `json:"id"`
	GuardianID        string    `json:"guardian_id"`
	Name              string    `json:"name"`
	DateOfBirth       time.Time `json:"date_of_birth"`
	HomeAddress       string    `json:"home_address"`
	HomeCoordinates   GeoPoint  `json:"home_coordinates"`
	SchoolName        string    `json:"school_name"`
	SchoolAddress     string    `json:"school_address"`
	SchoolCoordinates GeoPoint  `json:"school_coordinates"`
	PhotoURL          string    `json:"photo_url,omitempty"`
	Allergies         string    `json:"allergies,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AgeAt returns the whole years between the child's date of birth and now,
// accounting for whether the birthday has occurred yet this year. Age is
// never stored; callers recompute it at read time.
func (c *Child) AgeAt(now time.Time) int {
	age := now.Year() - c.DateOfBirth.Year()
	if now.Month() < c.DateOfBirth.Month() ||
		(now.Month() == c.DateOfBirth.Month() && now.Day() < c.DateOfBirth.Day()) {
		age--
	}
	return age
}
