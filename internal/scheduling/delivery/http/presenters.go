package http

import (
	"fmt"
	"time"

	"tailortalk/internal/model"
	"tailortalk/internal/scheduling"
	"tailortalk/pkg/datemath"
	"tailortalk/pkg/response"
	"tailortalk/pkg/slotfinder"
)

// --- Request DTOs ---

type resolveReq struct {
	Phrase   string `json:"phrase"`
	Timezone string `json:"timezone"`
	FullWeek bool   `json:"full_week"`
}

func (r resolveReq) validate() error { return nil }

func (r resolveReq) toInput() scheduling.ResolveInput {
	return scheduling.ResolveInput{
		Phrase:   r.Phrase,
		Timezone: r.Timezone,
		FullWeek: r.FullWeek,
	}
}

// ---

type searchSlotsReq struct {
	Phrase          string `form:"phrase"`
	DurationMinutes int    `form:"duration"`
	Timezone        string `form:"timezone"`
	FullWeek        bool   `form:"full_week"`
}

func (r searchSlotsReq) validate() error { return nil }

func (r searchSlotsReq) toInput() scheduling.SearchSlotsInput {
	return scheduling.SearchSlotsInput{
		Phrase:          r.Phrase,
		DurationMinutes: r.DurationMinutes,
		Timezone:        r.Timezone,
		FullWeek:        r.FullWeek,
	}
}

// ---

type bookReq struct {
	Title       string    `json:"title"       binding:"max=255"`
	Description string    `json:"description" binding:"max=2000"`
	Start       time.Time `json:"start"       binding:"required"`
	End         time.Time `json:"end"         binding:"required"`
	Attendees   []string  `json:"attendees"   binding:"omitempty,dive,email"`
	Timezone    string    `json:"timezone"`
}

func (r bookReq) validate() error {
	if !r.End.After(r.Start) {
		return scheduling.ErrInvalidTimeRange
	}
	return nil
}

func (r bookReq) toInput() scheduling.BookInput {
	return scheduling.BookInput{
		Title:       r.Title,
		Description: r.Description,
		Start:       r.Start,
		End:         r.End,
		Attendees:   r.Attendees,
		Timezone:    r.Timezone,
	}
}

// ---

type listEventsReq struct {
	Phrase    string `form:"phrase"`
	DaysAhead int    `form:"days_ahead" binding:"omitempty,min=1,max=31"`
	Timezone  string `form:"timezone"`
	Query     string `form:"query"`
}

func (r listEventsReq) validate() error { return nil }

func (r listEventsReq) toInput() scheduling.ListEventsInput {
	return scheduling.ListEventsInput{
		Phrase:    r.Phrase,
		DaysAhead: r.DaysAhead,
		Timezone:  r.Timezone,
		Query:     r.Query,
	}
}

// ---

type verifyReq struct {
	Title    string `form:"title"`
	Phrase   string `form:"phrase"`
	Timezone string `form:"timezone"`
}

func (r verifyReq) validate() error { return nil }

func (r verifyReq) toInput() scheduling.VerifyMeetingInput {
	return scheduling.VerifyMeetingInput{
		Title:    r.Title,
		Phrase:   r.Phrase,
		Timezone: r.Timezone,
	}
}

// ---

type linkReq struct {
	View string `form:"view" binding:"omitempty,oneof=day week month agenda"`
	Date string `form:"date"`
}

func (r linkReq) validate() error {
	if r.Date == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	return nil
}

func (r linkReq) toInput() scheduling.LinkInput {
	in := scheduling.LinkInput{View: r.View}
	if r.Date != "" {
		in.Date, _ = time.Parse("2006-01-02", r.Date)
	}
	return in
}

// --- Response DTOs ---

type windowResp struct {
	Start response.DateTime `json:"start"`
	End   response.DateTime `json:"end"`
}

func newWindowResp(w datemath.Window) windowResp {
	return windowResp{Start: response.DateTime(w.Start), End: response.DateTime(w.End)}
}

type resolveResp struct {
	Rule   string     `json:"rule"`
	Window windowResp `json:"window"`
}

func (h *handler) newResolveResp(out scheduling.ResolveOutput) resolveResp {
	return resolveResp{Rule: out.Rule.Kind.String(), Window: newWindowResp(out.Window)}
}

type slotResp struct {
	Number          int               `json:"slot_number"`
	Start           response.DateTime `json:"start"`
	End             response.DateTime `json:"end"`
	DurationMinutes int               `json:"duration_minutes"`
	Display         string            `json:"display"`
}

func newSlotResps(slots []slotfinder.Slot, tz string) []slotResp {
	out := make([]slotResp, len(slots))
	for i, s := range slots {
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

type searchSlotsResp struct {
	Rule     string     `json:"rule"`
	Timezone string     `json:"timezone"`
	Window   windowResp `json:"window"`
	Slots    []slotResp `json:"slots"`
	Busy     int        `json:"busy_count"`
}

func (h *handler) newSearchSlotsResp(out scheduling.SearchSlotsOutput) searchSlotsResp {
	return searchSlotsResp{
		Rule:     out.Rule.Kind.String(),
		Timezone: out.Timezone,
		Window:   newWindowResp(out.Window),
		Slots:    newSlotResps(out.Slots, out.Timezone),
		Busy:     len(out.Busy),
	}
}

type eventResp struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Link        string            `json:"link,omitempty"`
	Location    string            `json:"location,omitempty"`
	Start       response.DateTime `json:"start"`
	End         response.DateTime `json:"end"`
	AllDay      bool              `json:"all_day"`
}

func newEventResp(e model.Event) eventResp {
	return eventResp{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Link:        e.Link,
		Location:    e.Location,
		Start:       response.DateTime(e.Start),
		End:         response.DateTime(e.End),
		AllDay:      e.AllDay,
	}
}

func newEventResps(events []model.Event) []eventResp {
	out := make([]eventResp, len(events))
	for i, e := range events {
		out[i] = newEventResp(e)
	}
	return out
}

type bookResp struct {
	Event eventResp `json:"event"`
}

func (h *handler) newBookResp(out scheduling.BookOutput) bookResp {
	return bookResp{Event: newEventResp(out.Event)}
}

type listEventsResp struct {
	Window windowResp  `json:"window"`
	Events []eventResp `json:"events"`
}

func (h *handler) newListEventsResp(out scheduling.ListEventsOutput) listEventsResp {
	return listEventsResp{Window: newWindowResp(out.Window), Events: newEventResps(out.Events)}
}

type verifyResp struct {
	Found   bool        `json:"found"`
	Matches []eventResp `json:"matches"`
}

func (h *handler) newVerifyResp(out scheduling.VerifyMeetingOutput) verifyResp {
	return verifyResp{Found: out.Found, Matches: newEventResps(out.Matches)}
}

type linkResp struct {
	URL string `json:"url"`
}

type timeResp struct {
	Timezone  string    `json:"timezone"`
	Now       time.Time `json:"now"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Weekday   string    `json:"weekday"`
	Formatted string    `json:"formatted"`
}

func (h *handler) newTimeResp(info scheduling.TimeInfo) timeResp {
	return timeResp{
		Timezone:  info.Timezone,
		Now:       info.Now,
		Date:      info.Date,
		Time:      info.Time,
		Weekday:   info.Weekday,
		Formatted: info.Formatted,
	}
}
