package repository

import (
	"time"

	"tailortalk/pkg/datemath"
)

// ListEventsOptions selects events on the primary calendar.
type ListEventsOptions struct {
	Window datemath.Window
	Query  string // free text match on title and description
	Limit  int    // default 50
}

// CreateEventOptions holds the parameters for a new event.
type CreateEventOptions struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string // IANA name sent with the event times
	Attendees   []string
}
