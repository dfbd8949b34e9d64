package tools

import (
	"context"
	"fmt"

	"tailortalk/internal/scheduling"
	"tailortalk/internal/session"
	"tailortalk/pkg/datemath"
	pkgLog "tailortalk/pkg/log"
)

type CurrentTimeTool struct {
	uc scheduling.UseCase
	l  pkgLog.Logger
}

func NewCurrentTimeTool(uc scheduling.UseCase, l pkgLog.Logger) *CurrentTimeTool {
	return &CurrentTimeTool{uc: uc, l: l}
}

func (t *CurrentTimeTool) Name() string {
	return "get_current_time_info"
}

func (t *CurrentTimeTool) Description() string {
	return "Get the current date, time and weekday in the user's timezone."
}

func (t *CurrentTimeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

type CurrentTimeOutput struct {
	Timezone  string `json:"timezone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Weekday   string `json:"weekday"`
	Formatted string `json:"formatted"`
}

func (t *CurrentTimeTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	_, tz := sessionTimezone(ctx, t.uc)

	info, err := t.uc.CurrentTime(tz)
	if err != nil {
		return nil, err
	}
	return CurrentTimeOutput{
		Timezone:  info.Timezone,
		Date:      info.Date,
		Time:      info.Time,
		Weekday:   info.Weekday,
		Formatted: info.Formatted,
	}, nil
}

// ---

type ChangeTimezoneTool struct {
	uc scheduling.UseCase
	l  pkgLog.Logger
}

func NewChangeTimezoneTool(uc scheduling.UseCase, l pkgLog.Logger) *ChangeTimezoneTool {
	return &ChangeTimezoneTool{uc: uc, l: l}
}

func (t *ChangeTimezoneTool) Name() string {
	return "change_timezone"
}

func (t *ChangeTimezoneTool) Description() string {
	return "Change the user's timezone. Accepts IANA names (Europe/London) or abbreviations such as IST, PST, EST, GMT."
}

func (t *ChangeTimezoneTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"new_timezone": map[string]interface{}{
				"type":        "string",
				"description": "Timezone name or abbreviation",
			},
		},
		"required": []string{"new_timezone"},
	}
}

type ChangeTimezoneInput struct {
	NewTimezone string `json:"new_timezone"`
}

// ChangeTimezoneResult switches the session timezone.
type ChangeTimezoneResult struct {
	Previous    string `json:"previous_timezone"`
	Timezone    string `json:"timezone"`
	CurrentTime string `json:"current_time"`
	Message     string `json:"message"`
}

func (r ChangeTimezoneResult) Apply(st session.State) session.State {
	return st.WithTimezone(r.Timezone)
}

func (t *ChangeTimezoneTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	var params ChangeTimezoneInput
	if err := decodeParams(input, &params); err != nil {
		return nil, err
	}

	if _, ok := datemath.LoadZone(params.NewTimezone); !ok {
		return nil, fmt.Errorf("%w: %q", scheduling.ErrInvalidTimezone, params.NewTimezone)
	}

	_, previous := sessionTimezone(ctx, t.uc)
	tz := datemath.ZoneName(params.NewTimezone)

	info, err := t.uc.CurrentTime(tz)
	if err != nil {
		return nil, err
	}

	t.l.Infof(ctx, "change_timezone: %s -> %s", previous, tz)

	return ChangeTimezoneResult{
		Previous:    previous,
		Timezone:    tz,
		CurrentTime: info.Formatted,
		Message:     fmt.Sprintf("Timezone changed to %s.", tz),
	}, nil
}
