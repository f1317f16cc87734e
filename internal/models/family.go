package models

import "time"

// Family represents a family record as stored.
type Family struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Color string `json:"color" db:"color"`
}

// FamilyInfo is the display-only slice of a family used when
// enriching bookings.
type FamilyInfo struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// MissingFamilyName is the sentinel shown when a user has no resolvable
// family association.
const MissingFamilyName = "Family is missing"

// MissingFamily returns the sentinel used when resolution fails at any hop.
func MissingFamily() FamilyInfo {
	return FamilyInfo{Name: MissingFamilyName}
}

// UserProfile is the per-user profile document, keyed by email. It only
// carries the family association today.
type UserProfile struct {
	Email     string    `json:"email" db:"email"`
	FamilyID  *string   `json:"familyId" db:"family_id"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
