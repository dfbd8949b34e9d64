package usecase

import (
	"context"

	"tailortalk/internal/scheduling"
	"tailortalk/pkg/datemath"
	"tailortalk/pkg/slotfinder"
)

func (uc *implUseCase) Resolve(ctx context.Context, input scheduling.ResolveInput) (scheduling.ResolveOutput, error) {
	loc, _, err := uc.location(input.Timezone)
	if err != nil {
		return scheduling.ResolveOutput{}, err
	}

	window, rule := uc.resolver.ResolveWith(input.Phrase, uc.now().In(loc), datemath.ResolveOptions{FullWeek: input.FullWeek})
	uc.l.Debugf(ctx, "Resolve: phrase=%q rule=%s window=%s..%s", input.Phrase, rule.Kind, window.Start, window.End)

	return scheduling.ResolveOutput{Window: window, Rule: rule}, nil
}

// SearchSlots resolves the phrase, fetches busy intervals for the window and
// runs the slot finder over them.
func (uc *implUseCase) SearchSlots(ctx context.Context, input scheduling.SearchSlotsInput) (scheduling.SearchSlotsOutput, error) {
	duration := input.DurationMinutes
	if duration == 0 {
		duration = uc.defaultDuration
	}
	if duration < scheduling.MinDurationMinutes || duration > scheduling.MaxDurationMinutes {
		return scheduling.SearchSlotsOutput{}, scheduling.ErrInvalidDuration
	}

	loc, tz, err := uc.location(input.Timezone)
	if err != nil {
		return scheduling.SearchSlotsOutput{}, err
	}

	now := uc.now().In(loc)
	window, rule := uc.resolver.ResolveWith(input.Phrase, now, datemath.ResolveOptions{FullWeek: input.FullWeek})
	uc.l.Infof(ctx, "SearchSlots: phrase=%q rule=%s tz=%s duration=%d", input.Phrase, rule.Kind, tz, duration)

	out := scheduling.SearchSlotsOutput{
		Window:   window,
		Rule:     rule,
		Timezone: tz,
		Slots:    []slotfinder.Slot{},
	}

	searchable := notBefore(window, now)
	if !searchable.Valid() {
		uc.metrics.ObserveSlotSearch(rule.Kind.String(), 0)
		return out, nil
	}

	busy, err := uc.repo.ListBusy(ctx, searchable)
	if err != nil {
		uc.l.Errorf(ctx, "SearchSlots: ListBusy: %v", err)
		return scheduling.SearchSlotsOutput{}, err
	}

	out.Busy = busy
	out.Slots = uc.finder.Find(searchable, busy, duration, uc.hours)
	uc.metrics.ObserveSlotSearch(rule.Kind.String(), len(out.Slots))

	uc.l.Infof(ctx, "SearchSlots: %d busy, %d slots", len(busy), len(out.Slots))
	return out, nil
}
