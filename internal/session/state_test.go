package session_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailortalk/internal/session"
	"tailortalk/pkg/datemath"
	"tailortalk/pkg/slotfinder"
)

func offer() (datemath.Window, []slotfinder.Slot) {
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	window := datemath.Window{Start: day, End: day.Add(24*time.Hour - time.Microsecond)}
	slots := []slotfinder.Slot{
		{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour), DurationMinutes: 60},
		{Start: day.Add(9*time.Hour + 30*time.Minute), End: day.Add(10*time.Hour + 30*time.Minute), DurationMinutes: 60},
	}
	return window, slots
}

func TestNew(t *testing.T) {
	s := session.New("abc", "IST")

	assert.Equal(t, "abc", s.SessionID)
	assert.Equal(t, "Asia/Kolkata", s.Timezone)
	assert.Equal(t, session.StepInitial, s.Step)
	assert.Empty(t, s.History)
	assert.Equal(t, "Asia/Kolkata", s.Location().String())
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	base := session.New("abc", "UTC").WithUserMessage("hello")
	window, slots := offer()

	offered := base.WithOffer(window, slots)
	slots[0].DurationMinutes = 999

	assert.Len(t, base.History, 1)
	assert.Nil(t, base.LastWindow)
	assert.Empty(t, base.OfferedSlots)
	assert.Equal(t, session.StepInitial, base.Step)

	assert.Equal(t, session.StepOffered, offered.Step)
	require.Len(t, offered.OfferedSlots, 2)
	assert.Equal(t, 60, offered.OfferedSlots[0].DurationMinutes)

	withReply := offered.WithAssistantMessage("pick one")
	assert.Len(t, offered.History, 1)
	assert.Len(t, withReply.History, 2)
}

func TestWithOffer_Empty(t *testing.T) {
	window, _ := offer()
	s := session.New("abc", "UTC").WithOffer(window, nil)

	assert.Equal(t, session.StepSearching, s.Step)
	require.NotNil(t, s.LastWindow)
	assert.True(t, s.LastWindow.Start.Equal(window.Start))
}

func TestSelectSlot(t *testing.T) {
	window, slots := offer()
	offered := session.New("abc", "UTC").WithOffer(window, slots)

	tests := []struct {
		name    string
		state   session.State
		index   int
		wantErr error
	}{
		{name: "first", state: offered, index: 1},
		{name: "last", state: offered, index: 2},
		{name: "zero", state: offered, index: 0, wantErr: session.ErrSlotOutOfRange},
		{name: "too large", state: offered, index: 3, wantErr: session.ErrSlotOutOfRange},
		{name: "nothing offered", state: session.New("abc", "UTC"), index: 1, wantErr: session.ErrNoOfferedSlots},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.state.SelectSlot(tt.index)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got.PendingBooking)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, session.StepSelected, got.Step)
			require.NotNil(t, got.PendingBooking)
			assert.True(t, got.PendingBooking.Start.Equal(slots[tt.index-1].Start))
			assert.Nil(t, tt.state.PendingBooking)
		})
	}
}

func TestWithBookedAndReset(t *testing.T) {
	window, slots := offer()
	selected, err := session.New("abc", "PST").WithOffer(window, slots).SelectSlot(1)
	require.NoError(t, err)

	booked := selected.WithBooked("evt-1")
	assert.Equal(t, session.StepBooked, booked.Step)
	assert.Equal(t, "evt-1", booked.LastEventID)
	assert.Nil(t, booked.PendingBooking)
	assert.Empty(t, booked.OfferedSlots)

	reset := booked.WithUserMessage("thanks").Reset()
	assert.Equal(t, "abc", reset.SessionID)
	assert.Equal(t, "US/Pacific", reset.Timezone)
	assert.Equal(t, session.StepInitial, reset.Step)
	assert.Empty(t, reset.History)
	assert.Empty(t, reset.LastEventID)
}

func TestHistoryIsCapped(t *testing.T) {
	s := session.New("abc", "UTC")
	for i := 0; i < session.MaxHistory+5; i++ {
		s = s.WithUserMessage(fmt.Sprintf("message %d", i))
	}

	require.Len(t, s.History, session.MaxHistory)
	assert.Equal(t, "message 5", s.History[0].Content)
	assert.Equal(t, fmt.Sprintf("message %d", session.MaxHistory+4), s.LastUserMessage())
}

func TestBlankMessagesAreIgnored(t *testing.T) {
	s := session.New("abc", "UTC").WithUserMessage("   ").WithAssistantMessage("")
	assert.Empty(t, s.History)
	assert.Equal(t, "", s.LastUserMessage())
}

func TestWithTimezone(t *testing.T) {
	s := session.New("abc", "UTC").WithTimezone("jst")
	assert.Equal(t, "Asia/Tokyo", s.Timezone)

	unknown := s.WithTimezone("Mars/Olympus")
	assert.Equal(t, "UTC", unknown.Location().String())
}
