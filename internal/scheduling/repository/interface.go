package repository

import (
	"context"

	"tailortalk/internal/model"
	"tailortalk/pkg/datemath"
	"tailortalk/pkg/slotfinder"
)

// CalendarRepository is the calendar provider the scheduler talks to.
type CalendarRepository interface {
	// ListBusy returns every interval inside window that blocks a slot.
	ListBusy(ctx context.Context, window datemath.Window) ([]slotfinder.BusyInterval, error)
	ListEvents(ctx context.Context, opt ListEventsOptions) ([]model.Event, error)
	CreateEvent(ctx context.Context, opt CreateEventOptions) (model.Event, error)
	GetEvent(ctx context.Context, eventID string) (model.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	Ping(ctx context.Context) error
}
