package slotfinder

import (
	"strings"
	"time"
)

const (
	naiveLayout = "2006-01-02T15:04:05"
	dateLayout  = "2006-01-02"
)

// ParseBusy converts raw calendar intervals into BusyIntervals.
//
// Timestamps without an offset are taken as UTC. Date-only entries are
// all-day and span 00:00:00-23:59:59 UTC of their start date. Entries that
// cannot be parsed, or that end before they start, are skipped on their own.
func ParseBusy(raw []RawInterval) []BusyInterval {
	out := make([]BusyInterval, 0, len(raw))
	for _, r := range raw {
		b, ok := parseInterval(r)
		if !ok {
			continue
		}
		out = append(out, b)
	}
	return out
}

func parseInterval(r RawInterval) (BusyInterval, bool) {
	if r.StartDateTime != "" || r.EndDateTime != "" {
		start, err := parseTimestamp(r.StartDateTime)
		if err != nil {
			return BusyInterval{}, false
		}
		end, err := parseTimestamp(r.EndDateTime)
		if err != nil || end.Before(start) {
			return BusyInterval{}, false
		}
		return BusyInterval{Start: start, End: end, Label: r.Label}, true
	}

	if r.StartDate == "" {
		return BusyInterval{}, false
	}
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(r.StartDate), time.UTC)
	if err != nil {
		return BusyInterval{}, false
	}
	last := lastCoveredDay(d, r.EndDate)
	return BusyInterval{
		Start:  d,
		End:    time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, time.UTC),
		Label:  r.Label,
		AllDay: true,
	}, true
}

// lastCoveredDay returns the final day of an all-day event. The end date is
// exclusive, so an event ending on the 4th covers through the 3rd.
func lastCoveredDay(start time.Time, endDate string) time.Time {
	if strings.TrimSpace(endDate) == "" {
		return start
	}
	end, err := time.ParseInLocation(dateLayout, strings.TrimSpace(endDate), time.UTC)
	if err != nil || !end.After(start) {
		return start
	}
	return end.AddDate(0, 0, -1)
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(naiveLayout, s, time.UTC)
}
