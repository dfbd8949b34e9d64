package http

import (
	"fmt"
	"time"

	"tailortalk/internal/chat"
	"tailortalk/internal/session"
	"tailortalk/pkg/datemath"
	"tailortalk/pkg/response"
	"tailortalk/pkg/slotfinder"
)

// --- Request DTOs ---

type chatReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"  binding:"required"`
	Timezone  string `json:"timezone"`
}

func (r chatReq) validate() error { return nil }

func (r chatReq) toInput() chat.ChatInput {
	return chat.ChatInput{
		SessionID: r.SessionID,
		Message:   r.Message,
		Timezone:  r.Timezone,
		Channel:   chat.ChannelHTTP,
	}
}

// --- Response DTOs ---

type turnResp struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type slotResp struct {
	Number          int               `json:"slot_number"`
	Start           response.DateTime `json:"start"`
	End             response.DateTime `json:"end"`
	DurationMinutes int               `json:"duration_minutes"`
	Display         string            `json:"display"`
}

type chatResp struct {
	SessionID      string     `json:"session_id"`
	Reply          string     `json:"response"`
	Step           string     `json:"step"`
	Timezone       string     `json:"timezone"`
	AvailableSlots []slotResp `json:"available_slots"`
	History        []turnResp `json:"conversation_history"`
}

func (h *handler) newChatResp(out chat.ChatOutput) chatResp {
	return chatResp{
		SessionID:      out.SessionID,
		Reply:          out.Reply,
		Step:           string(out.Step),
		Timezone:       out.Timezone,
		AvailableSlots: newSlotResps(out.AvailableSlots, out.Timezone),
		History:        newTurnResps(out.History),
	}
}

type sessionResp struct {
	SessionID      string     `json:"session_id"`
	Step           string     `json:"step"`
	Timezone       string     `json:"timezone"`
	OfferedSlots   []slotResp `json:"offered_slots"`
	PendingBooking *slotResp  `json:"pending_booking,omitempty"`
	LastEventID    string     `json:"last_event_id,omitempty"`
	History        []turnResp `json:"conversation_history"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (h *handler) newSessionResp(st session.State) sessionResp {
	resp := sessionResp{
		SessionID:    st.SessionID,
		Step:         string(st.Step),
		Timezone:     st.Timezone,
		OfferedSlots: newSlotResps(st.OfferedSlots, st.Timezone),
		LastEventID:  st.LastEventID,
		History:      newTurnResps(st.History),
		UpdatedAt:    st.UpdatedAt,
	}
	if st.PendingBooking != nil {
		pending := newSlotResps([]slotfinder.Slot{*st.PendingBooking}, st.Timezone)[0]
		pending.Number = 0
		resp.PendingBooking = &pending
	}
	return resp
}

func newSlotResps(slots []slotfinder.Slot, tz string) []slotResp {
	loc, _ := datemath.LoadZone(tz)
	out := make([]slotResp, len(slots))
	for i, s := range slots {
		s = s.In(loc)
		out[i] = slotResp{
			Number:          i + 1,
			Start:           response.DateTime(s.Start),
			End:             response.DateTime(s.End),
			DurationMinutes: s.DurationMinutes,
			Display:         fmt.Sprintf("%s at %s (%s)", s.Start.Format("Monday, January 02, 2006"), s.Start.Format("03:04 PM"), tz),
		}
	}
	return out
}

func newTurnResps(turns []session.Turn) []turnResp {
	out := make([]turnResp, len(turns))
	for i, t := range turns {
		out[i] = turnResp{Role: t.Role, Content: t.Content}
	}
	return out
}
