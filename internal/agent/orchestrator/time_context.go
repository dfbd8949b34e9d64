package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"tailortalk/internal/session"
)

// Date format
const (
	DateFormatISO     = "2006-01-02"
	DateFormatDisplay = "Monday, January 02, 2006"
	TimeFormatDisplay = "03:04 PM"
)

// buildTimeContext creates a temporal context string for LLM
func buildTimeContext(now time.Time, timezone string) string {
	// Week boundaries (Monday-Sunday)
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := now.AddDate(0, 0, -(weekday - 1))
	weekEnd := weekStart.AddDate(0, 0, 6)
	tomorrow := now.AddDate(0, 0, 1)

	return fmt.Sprintf(
		TimeContextTemplate,
		now.Format(DateFormatDisplay),
		now.Format(TimeFormatDisplay),
		timezone,
		now.Format(DateFormatISO),
		now.Weekday().String(),
		tomorrow.Format(DateFormatISO),
		weekStart.Format(DateFormatISO),
		weekEnd.Format(DateFormatISO),
		timezone,
	)
}

// buildSessionContext lists what the user has been offered so a bare
// number can be mapped to a slot.
func buildSessionContext(st session.State) string {
	loc := st.Location()
	var b strings.Builder

	if len(st.OfferedSlots) > 0 && st.Step == session.StepOffered {
		b.WriteString(OfferedSlotsHeader)
		for i, s := range st.OfferedSlots {
			fmt.Fprintf(&b, "\n%d. %s", i+1, formatSlot(s.Start.In(loc), st.Timezone))
		}
		b.WriteString(OfferedSlotsFooter)
	}

	if st.PendingBooking != nil && st.Step == session.StepSelected {
		fmt.Fprintf(&b, SelectedSlotTemplate, formatSlot(st.PendingBooking.Start.In(loc), st.Timezone))
	}

	return b.String()
}

func formatSlot(t time.Time, tz string) string {
	return fmt.Sprintf("%s at %s (%s)", t.Format(DateFormatDisplay), t.Format(TimeFormatDisplay), tz)
}
