package usecase

import (
	"context"
	"fmt"
	"strings"

	"tailortalk/internal/scheduling"
)

const calendarBaseURL = "https://calendar.google.com/calendar/u/0/r"

// CalendarLink builds a Google Calendar web URL. A zero Date means today in
// the default timezone.
func (uc *implUseCase) CalendarLink(input scheduling.LinkInput) (scheduling.LinkOutput, error) {
	view := strings.ToLower(strings.TrimSpace(input.View))
	if view == "" {
		view = scheduling.ViewWeek
	}

	date := input.Date
	if date.IsZero() {
		loc, _, _ := uc.location("")
		date = uc.now().In(loc)
	}

	switch view {
	case scheduling.ViewDay, scheduling.ViewWeek, scheduling.ViewMonth:
		return scheduling.LinkOutput{URL: fmt.Sprintf("%s/%s/%s", calendarBaseURL, view, date.Format("2006/01/02"))}, nil
	case scheduling.ViewAgenda:
		return scheduling.LinkOutput{URL: calendarBaseURL + "/agenda"}, nil
	default:
		return scheduling.LinkOutput{}, scheduling.ErrInvalidView
	}
}

// CurrentTime reports the current time in timezone (default when empty).
func (uc *implUseCase) CurrentTime(timezone string) (scheduling.TimeInfo, error) {
	loc, tz, err := uc.location(timezone)
	if err != nil {
		return scheduling.TimeInfo{}, err
	}

	now := uc.now().In(loc)
	return scheduling.TimeInfo{
		Timezone:  tz,
		Now:       now,
		Date:      now.Format("Monday, January 02, 2006"),
		Time:      now.Format("03:04 PM"),
		Weekday:   now.Weekday().String(),
		Formatted: fmt.Sprintf("%s at %s %s", now.Format("Monday, January 02, 2006"), now.Format("03:04 PM"), tz),
	}, nil
}

func (uc *implUseCase) Ping(ctx context.Context) error {
	return uc.repo.Ping(ctx)
}
