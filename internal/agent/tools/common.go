package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tailortalk/internal/agent"
	"tailortalk/internal/model"
	"tailortalk/internal/scheduling"
	"tailortalk/internal/session"
	pkgLog "tailortalk/pkg/log"
)

const (
	displayDateLayout = "Monday, January 02, 2006"
	displayTimeLayout = "03:04 PM"
	naiveLayout       = "2006-01-02T15:04:05"
)

var (
	errNoSlotSelected = errors.New("no slot selected: search for availability first or pass slot_start and slot_end")
	errMissingTitle   = errors.New("meeting_title is required")
)

// Register adds every scheduling tool to registry.
func Register(registry *agent.ToolRegistry, uc scheduling.UseCase, l pkgLog.Logger) {
	registry.Register(NewSearchSlotsTool(uc, l))
	registry.Register(NewBookMeetingTool(uc, l))
	registry.Register(NewCurrentTimeTool(uc, l))
	registry.Register(NewChangeTimezoneTool(uc, l))
	registry.Register(NewCalendarEventsTool(uc, l))
	registry.Register(NewVerifyMeetingTool(uc, l))
	registry.Register(NewOpenCalendarTool(uc, l))
}

// decodeParams maps loosely typed LLM arguments onto dst.
func decodeParams(params map[string]interface{}, dst interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}
	return nil
}

// sessionTimezone is the timezone of the calling session, or the default.
func sessionTimezone(ctx context.Context, uc scheduling.UseCase) (session.State, string) {
	st, ok := agent.StateFromContext(ctx)
	if !ok || st.Timezone == "" {
		return st, uc.DefaultTimezone()
	}
	return st, st.Timezone
}

func formatWhen(t time.Time, tz string) string {
	return fmt.Sprintf("%s at %s (%s)", t.Format(displayDateLayout), t.Format(displayTimeLayout), tz)
}

// parseTimestamp accepts RFC 3339. Timestamps without an offset are UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(naiveLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: expected ISO 8601", s)
	}
	return t, nil
}

type EventView struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Display string `json:"display"`
	AllDay  bool   `json:"all_day,omitempty"`
	Link    string `json:"link,omitempty"`
}

func newEventViews(events []model.Event, tz string) []EventView {
	loc := session.State{Timezone: tz}.Location()
	out := make([]EventView, len(events))
	for i, e := range events {
		var display string
		if e.AllDay {
			// all-day dates carry no zone
			display = e.Start.Format(displayDateLayout) + " (all day)"
		} else {
			e = e.In(loc)
			display = formatWhen(e.Start, tz)
		}
		out[i] = EventView{
			ID:      e.ID,
			Title:   e.Title,
			Start:   e.Start.Format(time.RFC3339),
			End:     e.End.Format(time.RFC3339),
			Display: display,
			AllDay:  e.AllDay,
			Link:    e.Link,
		}
	}
	return out
}
