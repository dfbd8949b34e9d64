package tools

import (
	"context"
	"fmt"
	"time"

	"tailortalk/internal/scheduling"
	pkgLog "tailortalk/pkg/log"
)

type OpenCalendarTool struct {
	uc scheduling.UseCase
	l  pkgLog.Logger
}

func NewOpenCalendarTool(uc scheduling.UseCase, l pkgLog.Logger) *OpenCalendarTool {
	return &OpenCalendarTool{uc: uc, l: l}
}

func (t *OpenCalendarTool) Name() string {
	return "open_google_calendar"
}

func (t *OpenCalendarTool) Description() string {
	return "Get a link that opens Google Calendar in the requested view."
}

func (t *OpenCalendarTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"view": map[string]interface{}{
				"type":        "string",
				"description": "Calendar view",
				"enum":        []string{scheduling.ViewDay, scheduling.ViewWeek, scheduling.ViewMonth, scheduling.ViewAgenda},
				"default":     scheduling.ViewWeek,
			},
			"date": map[string]interface{}{
				"type":        "string",
				"description": "Date to open in YYYY-MM-DD format, defaults to today",
			},
		},
	}
}

type OpenCalendarInput struct {
	View string `json:"view"`
	Date string `json:"date"`
}

type OpenCalendarOutput struct {
	URL  string `json:"url"`
	View string `json:"view"`
}

func (t *OpenCalendarTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	var params OpenCalendarInput
	if err := decodeParams(input, &params); err != nil {
		return nil, err
	}
	if params.View == "" {
		params.View = scheduling.ViewWeek
	}

	in := scheduling.LinkInput{View: params.View}
	if params.Date != "" {
		d, err := time.Parse("2006-01-02", params.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date format: %w", err)
		}
		in.Date = d
	}

	out, err := t.uc.CalendarLink(in)
	if err != nil {
		return nil, err
	}
	return OpenCalendarOutput{URL: out.URL, View: params.View}, nil
}
