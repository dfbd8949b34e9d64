package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tailortalk/internal/scheduling"
	"tailortalk/internal/session"
	"tailortalk/pkg/datemath"
)

const (
	fallbackMeetingTitle = "Meeting"
	maxListedSlots       = 5

	helpReply = "I can find free time in your calendar and book meetings. " +
		"Try \"Do you have time tomorrow?\" or \"Book a meeting next friday\"."
	calendarErrorReply = "I couldn't reach the calendar right now. Please try again in a moment."
)

var slotKeywords = []string{"slot", "free", "available", "availability", "book", "schedule", "meeting", "appointment", "call"}

var affirmatives = map[string]bool{
	"yes": true, "y": true, "yeah": true, "yep": true, "sure": true,
	"ok": true, "okay": true, "confirm": true, "book it": true, "please do": true,
}

// fallbackReply is the scheduling flow without an LLM: a date phrase
// searches, a number selects, "yes" books the selection.
func (uc *implUseCase) fallbackReply(ctx context.Context, st session.State, msg string) (string, session.State) {
	lower := strings.ToLower(strings.TrimSpace(msg))

	if st.Step == session.StepSelected && st.PendingBooking != nil {
		slot := *st.PendingBooking
		when := formatWhen(slot.Start.In(st.Location()), st.Timezone)

		if !affirmatives[strings.Trim(lower, ".! ")] {
			if _, isNumber := slotNumber(lower); !isNumber && wantsSlots(lower) {
				return uc.searchReply(ctx, st, msg)
			}
			return fmt.Sprintf("You picked %s. Reply \"yes\" to book it.", when), st
		}

		out, err := uc.scheduling.Book(ctx, scheduling.BookInput{
			Title:    fallbackMeetingTitle,
			Start:    slot.Start,
			End:      slot.End,
			Timezone: st.Timezone,
		})
		if err != nil {
			uc.l.Errorf(ctx, "chat.usecase.fallbackReply: book: %v", err)
			return calendarErrorReply, st
		}

		reply := fmt.Sprintf("Booked \"%s\" on %s.", out.Event.Title, when)
		if out.Event.Link != "" {
			reply += " " + out.Event.Link
		}
		return reply, st.WithBooked(out.Event.ID)
	}

	if wantsSlots(lower) {
		return uc.searchReply(ctx, st, msg)
	}
	return helpReply, st
}

func (uc *implUseCase) searchReply(ctx context.Context, st session.State, msg string) (string, session.State) {
	out, err := uc.scheduling.SearchSlots(ctx, scheduling.SearchSlotsInput{
		Phrase:   msg,
		Timezone: st.Timezone,
	})
	if err != nil {
		uc.l.Errorf(ctx, "chat.usecase.searchReply: %v", err)
		return calendarErrorReply, st
	}

	listed := out.Slots
	if len(listed) > maxListedSlots {
		listed = listed[:maxListedSlots]
	}
	next := st.WithOffer(out.Window, listed)
	if len(listed) == 0 {
		return fmt.Sprintf("I couldn't find any free slots on %s. Would another day work?",
			out.Window.Start.Format("Monday, January 02")), next
	}

	var b strings.Builder
	b.WriteString("Here are some available times:\n")
	for i, s := range listed {
		fmt.Fprintf(&b, "%d. %s\n", i+1, formatWhen(s.Start, out.Timezone))
	}
	b.WriteString("Reply with a number to pick one.")
	return b.String(), next
}

func wantsSlots(lower string) bool {
	if datemath.Match(lower).Kind != datemath.RuleDefault {
		return true
	}
	for _, k := range slotKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func formatWhen(t time.Time, tz string) string {
	return fmt.Sprintf("%s at %s (%s)", t.Format("Monday, January 02, 2006"), t.Format("03:04 PM"), tz)
}
