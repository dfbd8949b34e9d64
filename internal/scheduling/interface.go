package scheduling

import (
	"context"
	"time"
)

// UseCase defines the business logic interface for the scheduling domain.
type UseCase interface {
	// Resolve turns a date phrase into a search window in the given timezone.
	Resolve(ctx context.Context, input ResolveInput) (ResolveOutput, error)

	// SearchSlots resolves the phrase, fetches busy intervals and returns free slots.
	SearchSlots(ctx context.Context, input SearchSlotsInput) (SearchSlotsOutput, error)

	// Book creates a calendar event.
	Book(ctx context.Context, input BookInput) (BookOutput, error)

	// ListEvents returns the events inside a resolved window.
	ListEvents(ctx context.Context, input ListEventsInput) (ListEventsOutput, error)

	// VerifyMeeting looks for an event whose title matches, case-insensitively.
	VerifyMeeting(ctx context.Context, input VerifyMeetingInput) (VerifyMeetingOutput, error)

	// CancelEvent deletes an event by id.
	CancelEvent(ctx context.Context, eventID string) error

	// CalendarLink builds a Google Calendar web URL for a view and date.
	CalendarLink(input LinkInput) (LinkOutput, error)

	// CurrentTime reports the current time in a timezone.
	CurrentTime(timezone string) (TimeInfo, error)

	// Ping reports whether the calendar provider is reachable.
	Ping(ctx context.Context) error

	// DefaultTimezone is the configured fallback timezone.
	DefaultTimezone() string

	// Now is the usecase clock.
	Now() time.Time
}
