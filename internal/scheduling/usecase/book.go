package usecase

import (
	"context"
	"fmt"
	"strings"

	"tailortalk/internal/scheduling"
	"tailortalk/internal/scheduling/repository"
)

const (
	defaultTitle    = "Meeting"
	bookingFootnote = "Scheduled via TailorTalk in %s"
)

// Book creates the event on the calendar.
func (uc *implUseCase) Book(ctx context.Context, input scheduling.BookInput) (scheduling.BookOutput, error) {
	if input.Start.IsZero() || !input.End.After(input.Start) {
		return scheduling.BookOutput{}, scheduling.ErrInvalidTimeRange
	}

	loc, tz, err := uc.location(input.Timezone)
	if err != nil {
		return scheduling.BookOutput{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = defaultTitle
	}

	footnote := fmt.Sprintf(bookingFootnote, tz)
	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = footnote
	} else {
		description += " (" + footnote + ")"
	}

	event, err := uc.repo.CreateEvent(ctx, repository.CreateEventOptions{
		Title:       title,
		Description: description,
		Start:       input.Start.In(loc),
		End:         input.End.In(loc),
		Timezone:    tz,
		Attendees:   input.Attendees,
	})
	uc.metrics.ObserveBooking(err)
	if err != nil {
		uc.l.Errorf(ctx, "Book: CreateEvent: %v", err)
		return scheduling.BookOutput{}, err
	}

	uc.l.Infof(ctx, "Book: created event %s at %s", event.ID, event.Start)
	return scheduling.BookOutput{Event: event.In(loc)}, nil
}

func (uc *implUseCase) CancelEvent(ctx context.Context, eventID string) error {
	if strings.TrimSpace(eventID) == "" {
		return scheduling.ErrEventNotFound
	}
	if err := uc.repo.DeleteEvent(ctx, eventID); err != nil {
		uc.l.Warnf(ctx, "CancelEvent: %s: %v", eventID, err)
		return err
	}
	uc.l.Infof(ctx, "CancelEvent: deleted %s", eventID)
	return nil
}
