package tools

import (
	"context"
	"fmt"
	"time"

	"tailortalk/internal/scheduling"
	"tailortalk/internal/session"
	"tailortalk/pkg/datemath"
	pkgLog "tailortalk/pkg/log"
	"tailortalk/pkg/slotfinder"
)

type SearchSlotsTool struct {
	uc scheduling.UseCase
	l  pkgLog.Logger
}

func NewSearchSlotsTool(uc scheduling.UseCase, l pkgLog.Logger) *SearchSlotsTool {
	return &SearchSlotsTool{uc: uc, l: l}
}

func (t *SearchSlotsTool) Name() string {
	return "search_available_slots"
}

func (t *SearchSlotsTool) Description() string {
	return "Find free meeting slots in the user's calendar for a date expression such as 'tomorrow', 'next friday' or '29th June'. Slots are numbered; the user may answer with a number to pick one."
}

func (t *SearchSlotsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date_preference": map[string]interface{}{
				"type":        "string",
				"description": "Natural language date, e.g. 'today', 'tomorrow', 'next week', 'monday', 'June 29'",
			},
			"duration_minutes": map[string]interface{}{
				"type":        "integer",
				"description": "Meeting length in minutes (15-480)",
				"default":     60,
			},
		},
		"required": []string{"date_preference"},
	}
}

type SearchSlotsInput struct {
	DatePreference  string `json:"date_preference"`
	DurationMinutes int    `json:"duration_minutes"`
}

type SlotView struct {
	Number          int    `json:"slot_number"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration_minutes"`
	Display         string `json:"display"`
}

// SearchSlotsResult offers the slots found and records them on the session.
type SearchSlotsResult struct {
	DatePreference string     `json:"date_preference"`
	Rule           string     `json:"rule"`
	Timezone       string     `json:"timezone"`
	SlotsFound     int        `json:"slots_found"`
	Slots          []SlotView `json:"slots"`
	Message        string     `json:"message"`

	window datemath.Window
	slots  []slotfinder.Slot
}

func (r SearchSlotsResult) Apply(st session.State) session.State {
	return st.WithOffer(r.window, r.slots)
}

func (t *SearchSlotsTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	var params SearchSlotsInput
	if err := decodeParams(input, &params); err != nil {
		return nil, err
	}

	_, tz := sessionTimezone(ctx, t.uc)
	t.l.Infof(ctx, "search_available_slots: %q for %d minutes (%s)", params.DatePreference, params.DurationMinutes, tz)

	out, err := t.uc.SearchSlots(ctx, scheduling.SearchSlotsInput{
		Phrase:          params.DatePreference,
		DurationMinutes: params.DurationMinutes,
		Timezone:        tz,
	})
	if err != nil {
		return nil, err
	}

	views := make([]SlotView, len(out.Slots))
	for i, s := range out.Slots {
		views[i] = SlotView{
			Number:          i + 1,
			Start:           s.Start.Format(time.RFC3339),
			End:             s.End.Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
			Display:         formatWhen(s.Start, out.Timezone),
		}
	}

	msg := fmt.Sprintf("Found %d available slots.", len(views))
	if len(views) == 0 {
		msg = "No available slots in business hours for that date. Suggest another day."
	}

	return SearchSlotsResult{
		DatePreference: params.DatePreference,
		Rule:           out.Rule.Kind.String(),
		Timezone:       out.Timezone,
		SlotsFound:     len(views),
		Slots:          views,
		Message:        msg,
		window:         out.Window,
		slots:          out.Slots,
	}, nil
}
