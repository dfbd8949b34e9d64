package datemath

import "time"

// DefaultEndOfBusinessHour is the hour after which a bare weekday equal to
// today means the same weekday next week.
const DefaultEndOfBusinessHour = 17

// Resolver turns date phrases into search windows. It holds no mutable state.
type Resolver struct {
	endOfBusinessHour int
}

// NewResolver creates a Resolver. Hours outside 0-23 use DefaultEndOfBusinessHour.
func NewResolver(endOfBusinessHour int) *Resolver {
	if endOfBusinessHour < 0 || endOfBusinessHour > 23 {
		endOfBusinessHour = DefaultEndOfBusinessHour
	}
	return &Resolver{endOfBusinessHour: endOfBusinessHour}
}

// Resolve returns the day window for phrase relative to ref, in ref's location.
func (r *Resolver) Resolve(phrase string, ref time.Time) Window {
	w, _ := r.ResolveWith(phrase, ref, ResolveOptions{})
	return w
}

// ResolveWith resolves phrase and also reports the rule that produced the
// window. It never fails: anything unexpected degrades to today's window.
func (r *Resolver) ResolveWith(phrase string, ref time.Time, opts ResolveOptions) (w Window, rule Rule) {
	defer func() {
		if recover() != nil {
			w, rule = dayWindow(ref), Rule{Kind: RuleDefault}
		}
	}()

	rule = Match(phrase)
	day := r.targetDay(rule, ref)

	if opts.FullWeek && (rule.Kind == RuleNextWeek || rule.Kind == RuleDefault) {
		return weekWindow(day), rule
	}
	return dayWindow(day), rule
}

func (r *Resolver) targetDay(rule Rule, ref time.Time) time.Time {
	today := StartOfDay(ref)

	switch rule.Kind {
	case RuleExplicitDate:
		return nextOccurrence(rule.Month, rule.Day, today)
	case RuleTomorrow:
		return addDays(today, 1)
	case RuleNextWeek:
		return addDays(today, 7)
	case RuleWeekday:
		offset := (int(rule.Weekday) - int(ref.Weekday()) + 7) % 7
		if offset == 0 && (rule.Next || ref.Hour() >= r.endOfBusinessHour) {
			offset = 7
		}
		return addDays(today, offset)
	default:
		return today
	}
}

// nextOccurrence finds month/day on or after today. Invalid days such as
// 30 February use the first of the month.
func nextOccurrence(month time.Month, day int, today time.Time) time.Time {
	candidate := calendarDate(today.Year(), month, day, today.Location())
	if candidate.Before(today) {
		candidate = calendarDate(today.Year()+1, month, day, today.Location())
	}
	return candidate
}

func calendarDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if day < 1 || t.Month() != month {
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	}
	return t
}

func addDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

func dayWindow(day time.Time) Window {
	start := StartOfDay(day)
	return Window{Start: start, End: EndOfDay(start)}
}

func weekWindow(day time.Time) Window {
	start := StartOfDay(day)
	return Window{Start: start, End: addDays(start, 5)}
}

// StartOfDay returns midnight of t's date in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999999 of t's date in t's location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999000, t.Location())
}
