package tools

import (
	"context"
	"strings"
	"time"

	"tailortalk/internal/scheduling"
	"tailortalk/internal/session"
	pkgLog "tailortalk/pkg/log"
	"tailortalk/pkg/slotfinder"
)

const defaultMeetingTitle = "Meeting"

type BookMeetingTool struct {
	uc scheduling.UseCase
	l  pkgLog.Logger
}

func NewBookMeetingTool(uc scheduling.UseCase, l pkgLog.Logger) *BookMeetingTool {
	return &BookMeetingTool{uc: uc, l: l}
}

func (t *BookMeetingTool) Name() string {
	return "book_meeting"
}

func (t *BookMeetingTool) Description() string {
	return "Book a meeting in the calendar. Pass slot_number to book one of the slots offered by search_available_slots, or slot_start and slot_end as ISO 8601 timestamps. Only call after the user confirmed."
}

func (t *BookMeetingTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"slot_number": map[string]interface{}{
				"type":        "integer",
				"description": "1-based number of an offered slot",
			},
			"slot_start": map[string]interface{}{
				"type":        "string",
				"description": "Start time in ISO 8601 format",
			},
			"slot_end": map[string]interface{}{
				"type":        "string",
				"description": "End time in ISO 8601 format",
			},
			"title": map[string]interface{}{
				"type":        "string",
				"description": "Meeting title",
				"default":     defaultMeetingTitle,
			},
			"description": map[string]interface{}{
				"type":        "string",
				"description": "Meeting description",
			},
		},
	}
}

type BookMeetingInput struct {
	SlotNumber  int    `json:"slot_number"`
	SlotStart   string `json:"slot_start"`
	SlotEnd     string `json:"slot_end"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BookMeetingResult closes the booking flow on the session.
type BookMeetingResult struct {
	EventID  string `json:"event_id"`
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Display  string `json:"display"`
	Link     string `json:"link,omitempty"`
	Timezone string `json:"timezone"`
	Message  string `json:"message"`
}

func (r BookMeetingResult) Apply(st session.State) session.State {
	return st.WithBooked(r.EventID)
}

func (t *BookMeetingTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	var params BookMeetingInput
	if err := decodeParams(input, &params); err != nil {
		return nil, err
	}

	st, tz := sessionTimezone(ctx, t.uc)
	slot, err := t.pickSlot(st, params)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		title = defaultMeetingTitle
	}

	t.l.Infof(ctx, "book_meeting: %q at %s (%s)", title, slot.Start.Format(time.RFC3339), tz)

	out, err := t.uc.Book(ctx, scheduling.BookInput{
		Title:       title,
		Description: params.Description,
		Start:       slot.Start,
		End:         slot.End,
		Timezone:    tz,
	})
	if err != nil {
		return nil, err
	}

	loc := session.State{Timezone: tz}.Location()
	start := out.Event.Start.In(loc)
	return BookMeetingResult{
		EventID:  out.Event.ID,
		Title:    out.Event.Title,
		Start:    start.Format(time.RFC3339),
		End:      out.Event.End.In(loc).Format(time.RFC3339),
		Display:  formatWhen(start, tz),
		Link:     out.Event.Link,
		Timezone: tz,
		Message:  "Meeting booked.",
	}, nil
}

// pickSlot prefers an explicit slot number, then explicit times, then the
// slot the user already selected.
func (t *BookMeetingTool) pickSlot(st session.State, params BookMeetingInput) (slotfinder.Slot, error) {
	switch {
	case params.SlotNumber > 0:
		next, err := st.SelectSlot(params.SlotNumber)
		if err != nil {
			return slotfinder.Slot{}, err
		}
		return *next.PendingBooking, nil

	case params.SlotStart != "":
		start, err := parseTimestamp(params.SlotStart)
		if err != nil {
			return slotfinder.Slot{}, err
		}
		end := start.Add(time.Hour)
		if params.SlotEnd != "" {
			if end, err = parseTimestamp(params.SlotEnd); err != nil {
				return slotfinder.Slot{}, err
			}
		}
		if !end.After(start) {
			return slotfinder.Slot{}, scheduling.ErrInvalidTimeRange
		}
		return slotfinder.Slot{Start: start, End: end, DurationMinutes: int(end.Sub(start) / time.Minute)}, nil

	case st.PendingBooking != nil:
		return *st.PendingBooking, nil

	default:
		return slotfinder.Slot{}, errNoSlotSelected
	}
}
