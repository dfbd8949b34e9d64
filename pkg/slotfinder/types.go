package slotfinder

import (
	"errors"
	"time"
)

// BusyInterval is time already taken by a calendar event.
type BusyInterval struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Label  string    `json:"label,omitempty"`
	AllDay bool      `json:"all_day,omitempty"`
}

// Slot is a free range of DurationMinutes offered for booking.
type Slot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
}

// In returns the slot converted to loc.
func (s Slot) In(loc *time.Location) Slot {
	return Slot{Start: s.Start.In(loc), End: s.End.In(loc), DurationMinutes: s.DurationMinutes}
}

// BusinessHours bounds the hours in which slots may be offered.
type BusinessHours struct {
	OpenHour  int `json:"open_hour"`
	CloseHour int `json:"close_hour"`
}

// DefaultBusinessHours is 09:00-17:00.
var DefaultBusinessHours = BusinessHours{OpenHour: 9, CloseHour: 17}

var ErrInvalidBusinessHours = errors.New("business hours must satisfy 0 <= open < close <= 23")

// Validate checks 0 <= OpenHour < CloseHour <= 23.
func (h BusinessHours) Validate() error {
	if h.OpenHour < 0 || h.CloseHour > 23 || h.OpenHour >= h.CloseHour {
		return ErrInvalidBusinessHours
	}
	return nil
}

// RawInterval is an interval as a calendar API reports it. DateTime fields
// win over Date fields.
type RawInterval struct {
	StartDateTime string
	EndDateTime   string
	StartDate     string
	EndDate       string
	Label         string
}
