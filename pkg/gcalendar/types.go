package gcalendar

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "Asia/Kolkata"
	Attendees   []string
}

// EventTime is the start or end of an event as the API reports it:
// DateTime for timed events, Date for all-day events.
type EventTime struct {
	DateTime string
	Date     string
	TimeZone string
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	Location    string
	Status      string
	StartTime   time.Time // zero when the API value cannot be parsed
	EndTime     time.Time
	AllDay      bool
	RawStart    EventTime
	RawEnd      EventTime
	Attendees   []string
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
	Query      string
}

// FreeBusyRequest asks for busy ranges of several calendars.
type FreeBusyRequest struct {
	CalendarIDs []string
	TimeMin     time.Time
	TimeMax     time.Time
}

// BusyRange is one raw busy block from the free/busy API.
type BusyRange struct {
	Start string
	End   string
}

// FreeBusy is the busy list of a single calendar.
type FreeBusy struct {
	CalendarID string
	Busy       []BusyRange
	Errors     []string
}
