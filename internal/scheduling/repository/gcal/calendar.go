package gcal

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tailortalk/internal/model"
	"tailortalk/internal/scheduling"
	"tailortalk/internal/scheduling/repository"
	"tailortalk/pkg/datemath"
	"tailortalk/pkg/gcalendar"
	"tailortalk/pkg/slotfinder"
)

const defaultListLimit = 50

// ListBusy merges the events of the primary calendar with the free/busy
// blocks of the extra calendars. Both lookups run concurrently.
func (r *implRepository) ListBusy(ctx context.Context, window datemath.Window) ([]slotfinder.BusyInterval, error) {
	var (
		eventRaw []slotfinder.RawInterval
		extraRaw []slotfinder.RawInterval
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		events, err := r.client.ListEvents(gctx, gcalendar.ListEventsRequest{
			CalendarID: r.calendarID,
			TimeMin:    window.Start,
			TimeMax:    window.End,
		})
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		eventRaw = make([]slotfinder.RawInterval, 0, len(events))
		for _, e := range events {
			eventRaw = append(eventRaw, slotfinder.RawInterval{
				StartDateTime: e.RawStart.DateTime,
				EndDateTime:   e.RawEnd.DateTime,
				StartDate:     e.RawStart.Date,
				EndDate:       e.RawEnd.Date,
				Label:         e.Summary,
			})
		}
		return nil
	})

	if len(r.busyCalendarIDs) > 0 {
		g.Go(func() error {
			calendars, err := r.client.QueryFreeBusy(gctx, gcalendar.FreeBusyRequest{
				CalendarIDs: r.busyCalendarIDs,
				TimeMin:     window.Start,
				TimeMax:     window.End,
			})
			if err != nil {
				return fmt.Errorf("query free/busy: %w", err)
			}
			for _, c := range calendars {
				if len(c.Errors) > 0 {
					r.l.Warnf(gctx, "scheduling.gcal.ListBusy: calendar %s: %v", c.CalendarID, c.Errors)
				}
				for _, b := range c.Busy {
					extraRaw = append(extraRaw, slotfinder.RawInterval{
						StartDateTime: b.Start,
						EndDateTime:   b.End,
						Label:         "busy (" + c.CalendarID + ")",
					})
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.l.Errorf(ctx, "scheduling.gcal.ListBusy: %v", err)
		return nil, fmt.Errorf("%w: %v", scheduling.ErrCalendarUnavailable, err)
	}

	busy := slotfinder.ParseBusy(append(eventRaw, extraRaw...))
	if skipped := len(eventRaw) + len(extraRaw) - len(busy); skipped > 0 {
		r.l.Warnf(ctx, "scheduling.gcal.ListBusy: skipped %d malformed intervals", skipped)
	}
	return busy, nil
}

func (r *implRepository) ListEvents(ctx context.Context, opt repository.ListEventsOptions) ([]model.Event, error) {
	limit := opt.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	events, err := r.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: r.calendarID,
		TimeMin:    opt.Window.Start,
		TimeMax:    opt.Window.End,
		MaxResults: int64(limit),
		Query:      opt.Query,
	})
	if err != nil {
		r.l.Errorf(ctx, "scheduling.gcal.ListEvents: %v", err)
		return nil, fmt.Errorf("%w: %v", scheduling.ErrCalendarUnavailable, err)
	}

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		out = append(out, toModel(e))
	}
	return out, nil
}

func (r *implRepository) CreateEvent(ctx context.Context, opt repository.CreateEventOptions) (model.Event, error) {
	created, err := r.client.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  r.calendarID,
		Summary:     opt.Title,
		Description: opt.Description,
		StartTime:   opt.Start,
		EndTime:     opt.End,
		Timezone:    opt.Timezone,
		Attendees:   opt.Attendees,
	})
	if err != nil {
		r.l.Errorf(ctx, "scheduling.gcal.CreateEvent: %v", err)
		return model.Event{}, fmt.Errorf("%w: %v", scheduling.ErrCalendarUnavailable, err)
	}

	event := toModel(*created)
	if event.Start.IsZero() {
		event.Start, event.End = opt.Start, opt.End
	}
	return event, nil
}

func (r *implRepository) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	e, err := r.client.GetEvent(ctx, r.calendarID, eventID)
	if err != nil {
		return model.Event{}, mapClientError(err)
	}
	return toModel(*e), nil
}

func (r *implRepository) DeleteEvent(ctx context.Context, eventID string) error {
	if err := r.client.DeleteEvent(ctx, r.calendarID, eventID); err != nil {
		return mapClientError(err)
	}
	return nil
}

func (r *implRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, r.calendarID); err != nil {
		return fmt.Errorf("%w: %v", scheduling.ErrCalendarUnavailable, err)
	}
	return nil
}

func mapClientError(err error) error {
	if errors.Is(err, gcalendar.ErrEventNotFound) {
		return scheduling.ErrEventNotFound
	}
	return fmt.Errorf("%w: %v", scheduling.ErrCalendarUnavailable, err)
}

func toModel(e gcalendar.Event) model.Event {
	return model.Event{
		ID:          e.ID,
		Title:       e.Summary,
		Description: e.Description,
		Link:        e.HtmlLink,
		Location:    e.Location,
		Start:       e.StartTime,
		End:         e.EndTime,
		AllDay:      e.AllDay,
		Attendees:   e.Attendees,
	}
}
