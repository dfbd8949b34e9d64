package tools

import (
	"context"
	"fmt"
	"strings"

	"tailortalk/internal/scheduling"
	pkgLog "tailortalk/pkg/log"
)

type CalendarEventsTool struct {
	uc scheduling.UseCase
	l  pkgLog.Logger
}

func NewCalendarEventsTool(uc scheduling.UseCase, l pkgLog.Logger) *CalendarEventsTool {
	return &CalendarEventsTool{uc: uc, l: l}
}

func (t *CalendarEventsTool) Name() string {
	return "get_calendar_events"
}

func (t *CalendarEventsTool) Description() string {
	return "List the events already in the user's calendar for a date, optionally spanning several days."
}

func (t *CalendarEventsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date_preference": map[string]interface{}{
				"type":        "string",
				"description": "Natural language date",
				"default":     "today",
			},
			"days_ahead": map[string]interface{}{
				"type":        "integer",
				"description": "Number of days to include starting at date_preference",
				"default":     1,
			},
		},
	}
}

type CalendarEventsInput struct {
	DatePreference string `json:"date_preference"`
	DaysAhead      int    `json:"days_ahead"`
}

type CalendarEventsOutput struct {
	Timezone   string      `json:"timezone"`
	EventCount int         `json:"event_count"`
	Events     []EventView `json:"events"`
	Summary    string      `json:"summary"`
}

func (t *CalendarEventsTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	var params CalendarEventsInput
	if err := decodeParams(input, &params); err != nil {
		return nil, err
	}

	_, tz := sessionTimezone(ctx, t.uc)
	t.l.Infof(ctx, "get_calendar_events: %q +%d days (%s)", params.DatePreference, params.DaysAhead, tz)

	out, err := t.uc.ListEvents(ctx, scheduling.ListEventsInput{
		Phrase:    params.DatePreference,
		DaysAhead: params.DaysAhead,
		Timezone:  tz,
	})
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("%d events scheduled.", len(out.Events))
	if len(out.Events) == 0 {
		summary = "The calendar is free for that period."
	}

	return CalendarEventsOutput{
		Timezone:   tz,
		EventCount: len(out.Events),
		Events:     newEventViews(out.Events, tz),
		Summary:    summary,
	}, nil
}

// ---

type VerifyMeetingTool struct {
	uc scheduling.UseCase
	l  pkgLog.Logger
}

func NewVerifyMeetingTool(uc scheduling.UseCase, l pkgLog.Logger) *VerifyMeetingTool {
	return &VerifyMeetingTool{uc: uc, l: l}
}

func (t *VerifyMeetingTool) Name() string {
	return "verify_meeting_exists"
}

func (t *VerifyMeetingTool) Description() string {
	return "Check whether a meeting with the given title exists in the calendar on a date. Use it to confirm a booking went through."
}

func (t *VerifyMeetingTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"meeting_title": map[string]interface{}{
				"type":        "string",
				"description": "Title, or part of it, to look for",
			},
			"date_preference": map[string]interface{}{
				"type":        "string",
				"description": "Natural language date",
				"default":     "tomorrow",
			},
		},
		"required": []string{"meeting_title"},
	}
}

type VerifyMeetingInput struct {
	MeetingTitle   string `json:"meeting_title"`
	DatePreference string `json:"date_preference"`
}

type VerifyMeetingOutput struct {
	Found   bool        `json:"found"`
	Matches []EventView `json:"matches"`
	Message string      `json:"message"`
}

func (t *VerifyMeetingTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	var params VerifyMeetingInput
	if err := decodeParams(input, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.MeetingTitle) == "" {
		return nil, errMissingTitle
	}

	_, tz := sessionTimezone(ctx, t.uc)

	out, err := t.uc.VerifyMeeting(ctx, scheduling.VerifyMeetingInput{
		Title:    params.MeetingTitle,
		Phrase:   params.DatePreference,
		Timezone: tz,
	})
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("No meeting matching %q found.", params.MeetingTitle)
	if out.Found {
		msg = fmt.Sprintf("Found %d meeting(s) matching %q.", len(out.Matches), params.MeetingTitle)
	}

	return VerifyMeetingOutput{
		Found:   out.Found,
		Matches: newEventViews(out.Matches, tz),
		Message: msg,
	}, nil
}
