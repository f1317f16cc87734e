// Package calendar turns persisted bookings into calendar-displayable
// events. Projection is a pure function of the bookings and a clock
// instant; nothing here touches the store.
package calendar

import (
	"time"

	"github.com/dbertella/bbs/internal/models"
)

// Status classifies a booking relative to an instant.
type Status string

const (
	StatusPast     Status = "past"
	StatusCurrent  Status = "current"
	StatusUpcoming Status = "upcoming"
)

// StatusOf returns the temporal status of a date range at the given
// instant. The three cases are exhaustive and mutually exclusive:
// upcoming iff start > now, past iff end < now, else current.
func StatusOf(start, end, now time.Time) Status {
	switch {
	case start.After(now):
		return StatusUpcoming
	case end.Before(now):
		return StatusPast
	default:
		return StatusCurrent
	}
}

// Event is a calendar-ready view of a booking. It is derived on every
// read and never persisted.
type Event struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Start           string  `json:"start"`
	End             string  `json:"end"`
	BackgroundColor string  `json:"backgroundColor"`
	BorderColor     string  `json:"borderColor"`
	TextColor       string  `json:"textColor"`
	URL             string  `json:"url"`
	UserName        string  `json:"userName,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

type colorPair struct {
	background string
	border     string
}

type paletteKey struct {
	house  models.House
	status Status
}

// palette maps (house, status) to a color pair. Past bookings are gray
// whatever the house; current bookings use a darker hue than upcoming
// ones so the ongoing stay stands out.
var palette = map[paletteKey]colorPair{
	{models.HouseSerra, StatusPast}:      {"#9e9e9e", "#757575"},
	{models.HouseSerra, StatusUpcoming}:  {"#66bb6a", "#43a047"},
	{models.HouseSerra, StatusCurrent}:   {"#2e7d32", "#1b5e20"},
	{models.HouseSolaro, StatusPast}:     {"#9e9e9e", "#757575"},
	{models.HouseSolaro, StatusUpcoming}: {"#42a5f5", "#1e88e5"},
	{models.HouseSolaro, StatusCurrent}:  {"#1565c0", "#0d47a1"},
}

// Colors a house outside the fixed palette falls back to.
var defaultColors = map[Status]colorPair{
	StatusPast:     {"#9e9e9e", "#757575"},
	StatusUpcoming: {"#90a4ae", "#607d8b"},
	StatusCurrent:  {"#455a64", "#263238"},
}

func colorsFor(house models.House, status Status) colorPair {
	if pair, ok := palette[paletteKey{house, status}]; ok {
		return pair
	}
	return defaultColors[status]
}

// Project converts bookings into calendar events evaluated at now.
func Project(bookings []models.EnrichedBooking, now time.Time) []Event {
	events := make([]Event, 0, len(bookings))
	for _, b := range bookings {
		status := StatusOf(b.DateFrom, b.DateTo, now)
		colors := colorsFor(b.House, status)

		events = append(events, Event{
			ID:              b.ID,
			Title:           b.House.Label(),
			Start:           b.DateFrom.Format(time.RFC3339),
			End:             b.DateTo.Format(time.RFC3339),
			BackgroundColor: colors.background,
			BorderColor:     colors.border,
			TextColor:       "#ffffff",
			URL:             "/bookings/" + b.ID,
			UserName:        b.UserName,
			Notes:           b.Notes,
		})
	}
	return events
}
