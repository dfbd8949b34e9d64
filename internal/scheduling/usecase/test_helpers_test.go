package usecase

import (
	"context"
	"time"

	"tailortalk/internal/model"
	"tailortalk/internal/scheduling/repository"
	"tailortalk/pkg/datemath"
	"tailortalk/pkg/metrics"
	"tailortalk/pkg/slotfinder"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock calendar repository for testing
type mockCalendar struct {
	busy    []slotfinder.BusyInterval
	events  []model.Event
	err     error
	created repository.CreateEventOptions
	deleted string

	busyWindow   datemath.Window
	listedWindow datemath.Window
	busyCalls    int
}

func (m *mockCalendar) ListBusy(ctx context.Context, window datemath.Window) ([]slotfinder.BusyInterval, error) {
	m.busyCalls++
	m.busyWindow = window
	return m.busy, m.err
}

func (m *mockCalendar) ListEvents(ctx context.Context, opt repository.ListEventsOptions) ([]model.Event, error) {
	m.listedWindow = opt.Window
	return m.events, m.err
}

func (m *mockCalendar) CreateEvent(ctx context.Context, opt repository.CreateEventOptions) (model.Event, error) {
	m.created = opt
	if m.err != nil {
		return model.Event{}, m.err
	}
	return model.Event{ID: "evt-1", Title: opt.Title, Start: opt.Start, End: opt.End, Link: "https://calendar.google.com/event?eid=1"}, nil
}

func (m *mockCalendar) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	return model.Event{ID: eventID}, m.err
}

func (m *mockCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	m.deleted = eventID
	return m.err
}

func (m *mockCalendar) Ping(ctx context.Context) error {
	return m.err
}

// thursday is 2026-10-15 08:00 UTC.
var thursday = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

func newTestUseCase(repo *mockCalendar, now time.Time) *implUseCase {
	uc := New(&mockLogger{}, repo, Config{
		Timezone:               "UTC",
		BusinessHours:          slotfinder.DefaultBusinessHours,
		EndOfBusinessHour:      17,
		DefaultDurationMinutes: 60,
		MaxSlots:               10,
	}, metrics.New())
	uc.now = func() time.Time { return now }
	return uc
}
