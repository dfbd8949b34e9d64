package usecase

import (
	"context"
	"strings"

	"tailortalk/internal/model"
	"tailortalk/internal/scheduling"
	"tailortalk/internal/scheduling/repository"
	"tailortalk/pkg/datemath"
)

const defaultEventsPhrase = "today"

// ListEvents returns the events in the resolved window, in the caller's zone.
func (uc *implUseCase) ListEvents(ctx context.Context, input scheduling.ListEventsInput) (scheduling.ListEventsOutput, error) {
	loc, _, err := uc.location(input.Timezone)
	if err != nil {
		return scheduling.ListEventsOutput{}, err
	}

	phrase := strings.TrimSpace(input.Phrase)
	if phrase == "" {
		phrase = defaultEventsPhrase
	}
	window := uc.resolver.Resolve(phrase, uc.now().In(loc))
	if input.DaysAhead > 1 {
		window.End = datemath.EndOfDay(window.Start.AddDate(0, 0, input.DaysAhead-1))
	}

	events, err := uc.repo.ListEvents(ctx, repository.ListEventsOptions{Window: window, Query: input.Query})
	if err != nil {
		uc.l.Errorf(ctx, "ListEvents: %v", err)
		return scheduling.ListEventsOutput{}, err
	}

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		out = append(out, e.In(loc))
	}
	return scheduling.ListEventsOutput{Window: window, Events: out}, nil
}

// VerifyMeeting matches titles by case-insensitive substring. An empty title
// matches every event in the window.
func (uc *implUseCase) VerifyMeeting(ctx context.Context, input scheduling.VerifyMeetingInput) (scheduling.VerifyMeetingOutput, error) {
	phrase := input.Phrase
	if strings.TrimSpace(phrase) == "" {
		phrase = "tomorrow"
	}

	listed, err := uc.ListEvents(ctx, scheduling.ListEventsInput{Phrase: phrase, Timezone: input.Timezone})
	if err != nil {
		return scheduling.VerifyMeetingOutput{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(input.Title))
	matches := make([]model.Event, 0)
	for _, e := range listed.Events {
		if needle == "" || strings.Contains(strings.ToLower(e.Title), needle) {
			matches = append(matches, e)
		}
	}

	return scheduling.VerifyMeetingOutput{Found: len(matches) > 0, Matches: matches}, nil
}
