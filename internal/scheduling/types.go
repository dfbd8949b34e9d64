package scheduling

import (
	"time"

	"tailortalk/internal/model"
	"tailortalk/pkg/datemath"
	"tailortalk/pkg/slotfinder"
)

const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480
)

// Calendar views accepted by CalendarLink.
const (
	ViewDay    = "day"
	ViewWeek   = "week"
	ViewMonth  = "month"
	ViewAgenda = "agenda"
)

// ResolveInput resolves a phrase to a search window without touching the calendar.
type ResolveInput struct {
	Phrase   string
	Timezone string
	FullWeek bool
}

type ResolveOutput struct {
	Window datemath.Window
	Rule   datemath.Rule
}

// SearchSlotsInput asks for free slots matching a date phrase.
// DurationMinutes of zero uses the configured default.
type SearchSlotsInput struct {
	Phrase          string
	DurationMinutes int
	Timezone        string
	FullWeek        bool
}

type SearchSlotsOutput struct {
	Window   datemath.Window
	Rule     datemath.Rule
	Timezone string
	Slots    []slotfinder.Slot
	Busy     []slotfinder.BusyInterval
}

// BookInput creates an event. Timezone names the zone the event is shown in.
type BookInput struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []string
	Timezone    string
}

type BookOutput struct {
	Event model.Event
}

// ListEventsInput lists events on the day Phrase resolves to (default today).
// DaysAhead > 1 extends the range to that many days from the resolved start.
type ListEventsInput struct {
	Phrase    string
	DaysAhead int
	Timezone  string
	Query     string
}

type ListEventsOutput struct {
	Window datemath.Window
	Events []model.Event
}

// VerifyMeetingInput checks that a meeting with Title exists on the day
// Phrase resolves to.
type VerifyMeetingInput struct {
	Title    string
	Phrase   string
	Timezone string
}

type VerifyMeetingOutput struct {
	Found   bool
	Matches []model.Event
}

type LinkInput struct {
	View string
	Date time.Time
}

type LinkOutput struct {
	URL string
}

// TimeInfo describes the current moment in a timezone.
type TimeInfo struct {
	Timezone  string
	Now       time.Time
	Date      string
	Time      string
	Weekday   string
	Formatted string
}
