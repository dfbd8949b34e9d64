package session

import (
	"strings"
	"time"

	"tailortalk/pkg/datemath"
	"tailortalk/pkg/slotfinder"
)

// MaxHistory bounds the number of turns kept per session.
const MaxHistory = 20

// Step is where a conversation is in the booking flow.
type Step string

const (
	StepInitial   Step = "initial"
	StepSearching Step = "searching"
	StepOffered   Step = "offered"
	StepSelected  Step = "selected"
	StepBooked    Step = "booked"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in the conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State is the conversation record for one session. It is a value: every
// transition returns a new State and leaves the receiver untouched.
type State struct {
	SessionID      string            `json:"session_id"`
	Timezone       string            `json:"timezone"`
	History        []Turn            `json:"history"`
	Step           Step              `json:"step"`
	LastWindow     *datemath.Window  `json:"last_window,omitempty"`
	OfferedSlots   []slotfinder.Slot `json:"offered_slots,omitempty"`
	PendingBooking *slotfinder.Slot  `json:"pending_booking,omitempty"`
	LastEventID    string            `json:"last_event_id,omitempty"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// New returns the initial state for a session.
func New(sessionID, timezone string) State {
	return State{
		SessionID: sessionID,
		Timezone:  datemath.ZoneName(timezone),
		History:   []Turn{},
		Step:      StepInitial,
	}
}

// Location resolves the session timezone, falling back to UTC.
func (s State) Location() *time.Location {
	loc, _ := datemath.LoadZone(s.Timezone)
	return loc
}

func (s State) WithUserMessage(content string) State {
	return s.appendTurn(Turn{Role: RoleUser, Content: content})
}

func (s State) WithAssistantMessage(content string) State {
	return s.appendTurn(Turn{Role: RoleAssistant, Content: content})
}

// WithTimezone switches the session timezone. Offered slots keep their
// instants; only their presentation changes.
func (s State) WithTimezone(name string) State {
	next := s.clone()
	next.Timezone = datemath.ZoneName(name)
	return next
}

// WithSearch records the window being searched.
func (s State) WithSearch(window datemath.Window) State {
	next := s.clone()
	w := window
	next.LastWindow = &w
	next.Step = StepSearching
	return next
}

// WithOffer records the window searched and the slots shown to the user.
// An empty offer leaves the session searching.
func (s State) WithOffer(window datemath.Window, slots []slotfinder.Slot) State {
	next := s.WithSearch(window)
	next.OfferedSlots = append([]slotfinder.Slot(nil), slots...)
	next.PendingBooking = nil
	if len(slots) > 0 {
		next.Step = StepOffered
	}
	return next
}

// SelectSlot picks the 1-based index from the current offer.
func (s State) SelectSlot(index int) (State, error) {
	if len(s.OfferedSlots) == 0 {
		return s, ErrNoOfferedSlots
	}
	if index < 1 || index > len(s.OfferedSlots) {
		return s, ErrSlotOutOfRange
	}
	next := s.clone()
	slot := s.OfferedSlots[index-1]
	next.PendingBooking = &slot
	next.Step = StepSelected
	return next, nil
}

// WithBooked closes the booking flow with the created event.
func (s State) WithBooked(eventID string) State {
	next := s.clone()
	next.LastEventID = eventID
	next.OfferedSlots = nil
	next.PendingBooking = nil
	next.Step = StepBooked
	return next
}

// Reset clears the conversation but keeps the session id and timezone.
func (s State) Reset() State {
	return New(s.SessionID, s.Timezone)
}

// Touch stamps the state with the time it was stored.
func (s State) Touch(at time.Time) State {
	next := s.clone()
	next.UpdatedAt = at
	return next
}

// LastUserMessage returns the most recent user turn, if any.
func (s State) LastUserMessage() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleUser {
			return s.History[i].Content
		}
	}
	return ""
}

func (s State) appendTurn(t Turn) State {
	next := s.clone()
	t.Content = strings.TrimSpace(t.Content)
	if t.Content == "" {
		return next
	}
	next.History = append(next.History, t)
	if len(next.History) > MaxHistory {
		next.History = next.History[len(next.History)-MaxHistory:]
	}
	return next
}

func (s State) clone() State {
	next := s
	next.History = append(make([]Turn, 0, len(s.History)+1), s.History...)
	if s.OfferedSlots != nil {
		next.OfferedSlots = append([]slotfinder.Slot(nil), s.OfferedSlots...)
	}
	if s.LastWindow != nil {
		w := *s.LastWindow
		next.LastWindow = &w
	}
	if s.PendingBooking != nil {
		p := *s.PendingBooking
		next.PendingBooking = &p
	}
	return next
}
