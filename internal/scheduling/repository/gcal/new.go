package gcal

import (
	"context"

	"tailortalk/internal/scheduling/repository"
	"tailortalk/pkg/gcalendar"
	pkgLog "tailortalk/pkg/log"
)

// Client is the part of *gcalendar.Client this repository needs.
type Client interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
	GetEvent(ctx context.Context, calID, eventID string) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calID, eventID string) error
	QueryFreeBusy(ctx context.Context, req gcalendar.FreeBusyRequest) ([]gcalendar.FreeBusy, error)
	Ping(ctx context.Context, calID string) error
}

type implRepository struct {
	client          Client
	calendarID      string
	busyCalendarIDs []string
	l               pkgLog.Logger
}

// New creates a Google Calendar backed repository. Events on calendarID are
// read and written; busyCalendarIDs only contribute free/busy blocks.
func New(client Client, calendarID string, busyCalendarIDs []string, l pkgLog.Logger) repository.CalendarRepository {
	if calendarID == "" {
		calendarID = gcalendar.DefaultCalendarID
	}
	return &implRepository{
		client:          client,
		calendarID:      calendarID,
		busyCalendarIDs: busyCalendarIDs,
		l:               l,
	}
}
