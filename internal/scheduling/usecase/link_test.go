package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailortalk/internal/scheduling"
)

func TestCalendarLink(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{}, thursday)
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   scheduling.LinkInput
		want    string
		wantErr error
	}{
		{name: "day", input: scheduling.LinkInput{View: "day", Date: date}, want: "https://calendar.google.com/calendar/u/0/r/day/2026/03/09"},
		{name: "week default", input: scheduling.LinkInput{Date: date}, want: "https://calendar.google.com/calendar/u/0/r/week/2026/03/09"},
		{name: "month upper", input: scheduling.LinkInput{View: "MONTH", Date: date}, want: "https://calendar.google.com/calendar/u/0/r/month/2026/03/09"},
		{name: "agenda", input: scheduling.LinkInput{View: "agenda"}, want: "https://calendar.google.com/calendar/u/0/r/agenda"},
		{name: "today", input: scheduling.LinkInput{View: "day"}, want: "https://calendar.google.com/calendar/u/0/r/day/2026/10/15"},
		{name: "bad view", input: scheduling.LinkInput{View: "year"}, wantErr: scheduling.ErrInvalidView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.CalendarLink(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.URL)
		})
	}
}

func TestCurrentTime(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{}, thursday)

	info, err := uc.CurrentTime("IST")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", info.Timezone)
	assert.Equal(t, "Thursday", info.Weekday)
	assert.Equal(t, "01:30 PM", info.Time)
	assert.Equal(t, "Thursday, October 15, 2026 at 01:30 PM Asia/Kolkata", info.Formatted)

	_, err = uc.CurrentTime("Nowhere/City")
	assert.ErrorIs(t, err, scheduling.ErrInvalidTimezone)

	assert.Equal(t, "UTC", uc.DefaultTimezone())
	assert.True(t, uc.Now().Equal(thursday))
	assert.NoError(t, uc.Ping(context.Background()))
}
