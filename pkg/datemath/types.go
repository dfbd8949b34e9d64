package datemath

import "time"

// Window is a [Start, End) search range. Both ends carry a location.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether Start is strictly before End.
func (w Window) Valid() bool {
	return w.Start.Before(w.End)
}

// In returns the window converted to loc.
func (w Window) In(loc *time.Location) Window {
	return Window{Start: w.Start.In(loc), End: w.End.In(loc)}
}

// RuleKind identifies which phrase pattern produced a window.
type RuleKind int

const (
	RuleDefault RuleKind = iota
	RuleExplicitDate
	RuleToday
	RuleTomorrow
	RuleNextWeek
	RuleWeekday
)

func (k RuleKind) String() string {
	switch k {
	case RuleExplicitDate:
		return "explicit_date"
	case RuleToday:
		return "today"
	case RuleTomorrow:
		return "tomorrow"
	case RuleNextWeek:
		return "next_week"
	case RuleWeekday:
		return "weekday"
	default:
		return "default"
	}
}

// Rule is the matched pattern. Only the fields of its Kind are set.
type Rule struct {
	Kind RuleKind

	// RuleExplicitDate
	Month time.Month
	Day   int

	// RuleWeekday
	Weekday time.Weekday
	Next    bool
}

// ResolveOptions tunes the window shape.
type ResolveOptions struct {
	// FullWeek turns next-week and default phrases into a five day window.
	FullWeek bool
}
