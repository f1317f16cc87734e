package models

import (
	"time"
)

// House identifies one of the two bookable houses.
type House string

const (
	HouseSerra  House = "SERRA"
	HouseSolaro House = "SOLARO"
)

// Valid reports whether the house is one of the known units.
func (h House) Valid() bool {
	return h == HouseSerra || h == HouseSolaro
}

// Label returns the display name for the house. Unknown values pass
// through unchanged so stored data from a future house survives display.
func (h House) Label() string {
	switch h {
	case HouseSerra:
		return "La Serra"
	case HouseSolaro:
		return "Solaro"
	default:
		return string(h)
	}
}

// Booking represents a reservation of a house for a date range.
// UserID is set once at creation and is the sole ownership anchor.
type Booking struct {
	ID           string    `json:"id" db:"id"`
	House        House     `json:"house" db:"house"`
	DateFrom     time.Time `json:"dateFrom" db:"date_from"`
	DateTo       time.Time `json:"dateTo" db:"date_to"`
	UserID       string    `json:"userId" db:"user_id"`
	Notes        *string   `json:"notes" db:"notes"`
	NumberPeople *int      `json:"numberPeople" db:"number_people"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// BookingRequest carries the client-supplied fields of a create or
// update, before date parsing. Dates arrive as ISO-8601 strings.
type BookingRequest struct {
	House        string `json:"house" validate:"required"`
	DateFrom     string `json:"dateFrom" validate:"required"`
	DateTo       string `json:"dateTo" validate:"required"`
	Notes        string `json:"notes"`
	NumberPeople string `json:"numberPeople"`
}

// BookingUpdate is the set of mutable booking fields. Omitted optional
// fields reset to null rather than keeping the stored value.
type BookingUpdate struct {
	House        House
	DateFrom     time.Time
	DateTo       time.Time
	Notes        *string
	NumberPeople *int
}

// EnrichedBooking is a booking augmented with display-only data about
// its owner, recomputed on every read.
type EnrichedBooking struct {
	ID           string    `json:"id"`
	House        House     `json:"house"`
	DateFrom     time.Time `json:"dateFrom"`
	DateTo       time.Time `json:"dateTo"`
	UserID       string    `json:"userId"`
	UserEmail    string    `json:"userEmail"`
	UserName     string    `json:"userName"`
	FamilyName   string    `json:"familyName,omitempty"`
	FamilyColor  string    `json:"familyColor,omitempty"`
	Notes        *string   `json:"notes"`
	NumberPeople *int      `json:"numberPeople"`
}
