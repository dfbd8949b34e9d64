package slotfinder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailortalk/pkg/datemath"
	"tailortalk/pkg/slotfinder"
)

// Wednesday 1 May 2024
func wednesday() datemath.Window {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return datemath.Window{Start: start, End: datemath.EndOfDay(start)}
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 5, 1, hour, minute, 0, 0, time.UTC)
}

func starts(slots []slotfinder.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.Format("Mon 15:04")
	}
	return out
}

func TestFind_EmptyDayStride(t *testing.T) {
	slots := slotfinder.New(20).Find(wednesday(), nil, 60, slotfinder.DefaultBusinessHours)

	want := []string{
		"Wed 09:00", "Wed 09:30", "Wed 10:00", "Wed 10:30", "Wed 11:00",
		"Wed 11:30", "Wed 12:00", "Wed 12:30", "Wed 13:00", "Wed 13:30",
		"Wed 14:00", "Wed 14:30", "Wed 15:00", "Wed 15:30", "Wed 16:00",
	}
	assert.Equal(t, want, starts(slots))
	for _, s := range slots {
		assert.Equal(t, 60*time.Minute, s.End.Sub(s.Start))
		assert.Equal(t, 60, s.DurationMinutes)
	}
}

func TestFind_CapsAtTen(t *testing.T) {
	slots := slotfinder.Find(wednesday(), nil, 30, slotfinder.DefaultBusinessHours)
	require.Len(t, slots, slotfinder.DefaultMaxSlots)
	assert.True(t, at(9, 0).Equal(slots[0].Start))
	assert.True(t, at(13, 30).Equal(slots[9].Start))
}

func TestFind_BusyTenToEleven(t *testing.T) {
	busy := []slotfinder.BusyInterval{{Start: at(10, 0), End: at(11, 0), Label: "standup"}}

	slots := slotfinder.New(20).Find(wednesday(), busy, 60, slotfinder.DefaultBusinessHours)

	// 09:00-10:00 only touches the meeting, so the half-open test keeps it.
	assert.Equal(t, []string{
		"Wed 09:00", "Wed 11:00", "Wed 11:30", "Wed 12:00", "Wed 12:30",
		"Wed 13:00", "Wed 13:30", "Wed 14:00", "Wed 14:30", "Wed 15:00",
		"Wed 15:30", "Wed 16:00",
	}, starts(slots))
}

func TestFind_NeverOverlapsBusy(t *testing.T) {
	busy := []slotfinder.BusyInterval{
		{Start: at(13, 0), End: at(14, 15)},
		{Start: at(9, 20), End: at(9, 50)},
		{Start: at(9, 40), End: at(10, 30)}, // overlaps the previous one
		{Start: at(15, 0), End: at(15, 5)},
	}

	for _, duration := range []int{15, 30, 45, 60, 90} {
		slots := slotfinder.New(50).Find(wednesday(), busy, duration, slotfinder.DefaultBusinessHours)
		require.NotEmpty(t, slots, "duration %d", duration)
		for _, s := range slots {
			for _, b := range busy {
				assert.False(t, slotfinder.Overlaps(s.Start, s.End, b), "slot %v-%v overlaps %v-%v", s.Start, s.End, b.Start, b.End)
			}
			assert.False(t, s.End.After(at(17, 0)), "slot %v ends after close", s.Start)
		}
	}
}

func TestFind_ExactBusyConsumesSlot(t *testing.T) {
	busy := []slotfinder.BusyInterval{{Start: at(9, 0), End: at(10, 0)}}
	slots := slotfinder.Find(wednesday(), busy, 60, slotfinder.DefaultBusinessHours)
	require.NotEmpty(t, slots)
	assert.True(t, at(10, 0).Equal(slots[0].Start))
}

func TestFind_SkipsWeekends(t *testing.T) {
	// Friday 3 May to Tuesday 7 May
	w := datemath.Window{
		Start: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		End:   datemath.EndOfDay(time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)),
	}
	slots := slotfinder.New(100).Find(w, nil, 60, slotfinder.DefaultBusinessHours)

	require.NotEmpty(t, slots)
	days := map[time.Weekday]int{}
	for _, s := range slots {
		assert.NotEqual(t, time.Saturday, s.Start.Weekday())
		assert.NotEqual(t, time.Sunday, s.Start.Weekday())
		days[s.Start.Weekday()]++
	}
	assert.Equal(t, map[time.Weekday]int{time.Friday: 15, time.Monday: 15, time.Tuesday: 15}, days)
}

func TestFind_NoOvernightSlots(t *testing.T) {
	w := datemath.Window{
		Start: time.Date(2024, 5, 1, 16, 30, 0, 0, time.UTC),
		End:   datemath.EndOfDay(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)),
	}
	slots := slotfinder.Find(w, nil, 60, slotfinder.DefaultBusinessHours)
	require.NotEmpty(t, slots)
	assert.True(t, time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC).Equal(slots[0].Start))
}

func TestFind_StartsMidDay(t *testing.T) {
	w := datemath.Window{Start: at(14, 20), End: datemath.EndOfDay(at(0, 0))}
	slots := slotfinder.Find(w, nil, 60, slotfinder.DefaultBusinessHours)
	assert.Equal(t, []string{"Wed 14:20", "Wed 14:50", "Wed 15:20", "Wed 15:50"}, starts(slots))
}

func TestFind_WeekWindowStopsAtEnd(t *testing.T) {
	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC) // Monday
	w := datemath.Window{Start: start, End: start.AddDate(0, 0, 5)}
	slots := slotfinder.New(1000).Find(w, nil, 60, slotfinder.DefaultBusinessHours)
	require.Len(t, slots, 5*15)
	assert.Equal(t, time.Friday, slots[len(slots)-1].Start.Weekday())
}

func TestFind_DegenerateInputs(t *testing.T) {
	w := wednesday()
	tests := []struct {
		name     string
		window   datemath.Window
		duration int
		hours    slotfinder.BusinessHours
	}{
		{name: "start equals end", window: datemath.Window{Start: at(9, 0), End: at(9, 0)}, duration: 60, hours: slotfinder.DefaultBusinessHours},
		{name: "start after end", window: datemath.Window{Start: at(12, 0), End: at(9, 0)}, duration: 60, hours: slotfinder.DefaultBusinessHours},
		{name: "zero duration", window: w, duration: 0, hours: slotfinder.DefaultBusinessHours},
		{name: "longer than business day", window: w, duration: 9 * 60, hours: slotfinder.DefaultBusinessHours},
		{name: "inverted hours", window: w, duration: 60, hours: slotfinder.BusinessHours{OpenHour: 17, CloseHour: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := slotfinder.Find(tt.window, nil, tt.duration, tt.hours)
			assert.NotNil(t, slots)
			assert.Empty(t, slots)
		})
	}
}

func TestFind_Idempotent(t *testing.T) {
	busy := []slotfinder.BusyInterval{
		{Start: at(12, 0), End: at(13, 0)},
		{Start: at(10, 0), End: at(10, 30)},
	}
	snapshot := append([]slotfinder.BusyInterval(nil), busy...)

	first := slotfinder.Find(wednesday(), busy, 45, slotfinder.DefaultBusinessHours)
	second := slotfinder.Find(wednesday(), busy, 45, slotfinder.DefaultBusinessHours)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, busy, "input must not be reordered")
}

func TestFind_LocalBusinessHours(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, loc)
	w := datemath.Window{Start: start, End: datemath.EndOfDay(start)}
	// 09:00-10:00 IST expressed in UTC
	busy := []slotfinder.BusyInterval{{Start: time.Date(2024, 5, 1, 3, 30, 0, 0, time.UTC), End: time.Date(2024, 5, 1, 4, 30, 0, 0, time.UTC)}}

	slots := slotfinder.Find(w, busy, 60, slotfinder.DefaultBusinessHours)
	require.NotEmpty(t, slots)
	assert.True(t, time.Date(2024, 5, 1, 10, 0, 0, 0, loc).Equal(slots[0].Start))
	assert.Equal(t, loc.String(), slots[0].Start.Location().String())
}

func TestBusinessHoursValidate(t *testing.T) {
	assert.NoError(t, slotfinder.DefaultBusinessHours.Validate())
	assert.ErrorIs(t, slotfinder.BusinessHours{OpenHour: 9, CloseHour: 9}.Validate(), slotfinder.ErrInvalidBusinessHours)
	assert.ErrorIs(t, slotfinder.BusinessHours{OpenHour: -1, CloseHour: 9}.Validate(), slotfinder.ErrInvalidBusinessHours)
	assert.ErrorIs(t, slotfinder.BusinessHours{OpenHour: 8, CloseHour: 24}.Validate(), slotfinder.ErrInvalidBusinessHours)
}

func TestFind_MultiDayAllDayEvent(t *testing.T) {
	// Conference Wed 1 to Fri 3 May; the end date is exclusive.
	busy := slotfinder.ParseBusy([]slotfinder.RawInterval{
		{StartDate: "2024-05-01", EndDate: "2024-05-04", Label: "conference"},
	})
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	w := datemath.Window{Start: start, End: start.AddDate(0, 0, 7)}

	slots := slotfinder.Find(w, busy, 60, slotfinder.DefaultBusinessHours)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.False(t, s.Start.Before(time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)), "slot %s inside the conference", s.Start)
	}
	assert.Equal(t, "Mon 09:00", starts(slots)[0])
}
