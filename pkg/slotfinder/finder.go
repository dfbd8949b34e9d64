package slotfinder

import (
	"sort"
	"time"

	"tailortalk/pkg/datemath"
)

const (
	DefaultMaxSlots = 10
	DefaultStride   = 30 * time.Minute
	DefaultEdgeStep = 15 * time.Minute
)

// Finder walks business hours looking for free slots. The zero value is not
// usable; use New.
type Finder struct {
	maxSlots int
	stride   time.Duration
	edgeStep time.Duration
}

// New creates a Finder. maxSlots <= 0 uses DefaultMaxSlots.
func New(maxSlots int) *Finder {
	if maxSlots <= 0 {
		maxSlots = DefaultMaxSlots
	}
	return &Finder{
		maxSlots: maxSlots,
		stride:   DefaultStride,
		edgeStep: DefaultEdgeStep,
	}
}

// Find is New(DefaultMaxSlots).Find.
func Find(window datemath.Window, busy []BusyInterval, durationMinutes int, hours BusinessHours) []Slot {
	return New(DefaultMaxSlots).Find(window, busy, durationMinutes, hours)
}

// Find returns up to maxSlots chronological slots of durationMinutes inside
// window that overlap no busy interval, start on a weekday and end by the
// close hour. Candidate starts advance on a 30 minute stride, so returned
// slots may overlap each other. Days are computed in window.Start's location.
// The sweep stops at the earlier of window.End and the close hour on
// window.End's date, so a window ending at midnight leaves that day out.
func (f *Finder) Find(window datemath.Window, busy []BusyInterval, durationMinutes int, hours BusinessHours) []Slot {
	slots := []Slot{}
	if !window.Valid() || durationMinutes <= 0 || hours.Validate() != nil {
		return slots
	}

	loc := window.Start.Location()
	duration := time.Duration(durationMinutes) * time.Minute
	sorted := sortedBusy(busy)

	endDay := window.End.In(loc)
	limit := atHour(endDay, hours.CloseHour)
	if window.End.Before(limit) {
		limit = window.End
	}

	cursor := window.Start
	if open := atHour(window.Start, hours.OpenHour); cursor.Before(open) {
		cursor = open
	}

	for cursor.Before(limit) && len(slots) < f.maxSlots {
		local := cursor.In(loc)

		if isWeekend(local.Weekday()) {
			cursor = atHour(nextDay(local), hours.OpenHour)
			continue
		}
		if open := atHour(local, hours.OpenHour); local.Before(open) {
			cursor = open
			continue
		}
		closeAt := atHour(local, hours.CloseHour)
		if !local.Before(closeAt) {
			cursor = atHour(nextDay(local), hours.OpenHour)
			continue
		}

		candidateEnd := local.Add(duration)
		if b, ok := firstOverlap(sorted, local, candidateEnd); ok {
			// overlap implies b.End > cursor, so this always advances
			cursor = b.End.In(loc)
			continue
		}

		if !candidateEnd.After(closeAt) {
			slots = append(slots, Slot{Start: local, End: candidateEnd, DurationMinutes: durationMinutes})
			cursor = local.Add(f.stride)
			continue
		}

		cursor = local.Add(f.edgeStep)
	}

	return slots
}

// Overlaps is the half-open overlap test used by the finder.
func Overlaps(start, end time.Time, b BusyInterval) bool {
	return start.Before(b.End) && end.After(b.Start)
}

func firstOverlap(busy []BusyInterval, start, end time.Time) (BusyInterval, bool) {
	for _, b := range busy {
		if !b.Start.Before(end) {
			// sorted by start: nothing later can overlap
			break
		}
		if Overlaps(start, end, b) {
			return b, true
		}
	}
	return BusyInterval{}, false
}

func sortedBusy(busy []BusyInterval) []BusyInterval {
	out := make([]BusyInterval, 0, len(busy))
	for _, b := range busy {
		if b.Start.IsZero() || b.End.IsZero() || !b.Start.Before(b.End) {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

func nextDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
