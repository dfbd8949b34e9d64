package datemath

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthPattern = `january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec`

var (
	dayMonthRe = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthPattern + `)\b`)
	monthDayRe = regexp.MustCompile(`\b(` + monthPattern + `)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	todayRe    = regexp.MustCompile(`\btoday\b`)
	tomorrowRe = regexp.MustCompile(`\b(?:tomorrow|tmrw)\b`)
	nextWeekRe = regexp.MustCompile(`\bnext\s+week\b`)
	nextRe     = regexp.MustCompile(`\bnext\b`)
	weekdayRe  = regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tues|tue|wed|thurs|thur|thu|fri|sat|sun)s?\b`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday, "thu": time.Thursday,
	"fri": time.Friday, "sat": time.Saturday, "sun": time.Sunday,
}

// Match classifies phrase. The first matching rule wins:
// explicit date, today, tomorrow, next week, weekday, default.
func Match(phrase string) Rule {
	p := strings.ToLower(strings.TrimSpace(phrase))

	if rule, ok := matchExplicitDate(p); ok {
		return rule
	}

	switch {
	case todayRe.MatchString(p):
		return Rule{Kind: RuleToday}
	case tomorrowRe.MatchString(p):
		return Rule{Kind: RuleTomorrow}
	case nextWeekRe.MatchString(p):
		return Rule{Kind: RuleNextWeek}
	}

	if m := weekdayRe.FindStringSubmatch(p); m != nil {
		return Rule{
			Kind:    RuleWeekday,
			Weekday: weekdays[m[1][:3]],
			Next:    nextRe.MatchString(p),
		}
	}

	return Rule{Kind: RuleDefault}
}

func matchExplicitDate(p string) (Rule, bool) {
	if m := dayMonthRe.FindStringSubmatch(p); m != nil {
		day, err := strconv.Atoi(m[1])
		if err == nil {
			return Rule{Kind: RuleExplicitDate, Month: months[m[2][:3]], Day: day}, true
		}
	}
	if m := monthDayRe.FindStringSubmatch(p); m != nil {
		day, err := strconv.Atoi(m[2])
		if err == nil {
			return Rule{Kind: RuleExplicitDate, Month: months[m[1][:3]], Day: day}, true
		}
	}
	return Rule{}, false
}
