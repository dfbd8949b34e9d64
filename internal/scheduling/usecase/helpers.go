package usecase

import (
	"strings"
	"time"

	"tailortalk/internal/scheduling"
	"tailortalk/pkg/datemath"
)

// location resolves a timezone name, falling back to the configured default
// when empty. Unknown names are an error.
func (uc *implUseCase) location(name string) (*time.Location, string, error) {
	if strings.TrimSpace(name) == "" {
		name = uc.timezone
	}
	loc, ok := datemath.LoadZone(name)
	if !ok {
		return nil, "", scheduling.ErrInvalidTimezone
	}
	return loc, datemath.ZoneName(name), nil
}

// notBefore moves the window start up to the first half-hour mark at or
// after now, so slots already in the past are never offered.
func notBefore(w datemath.Window, now time.Time) datemath.Window {
	if !now.After(w.Start) {
		return w
	}
	local := now.In(w.Start.Location())
	mark := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, local.Location())
	for mark.Before(local) {
		mark = mark.Add(30 * time.Minute)
	}
	w.Start = mark
	return w
}
