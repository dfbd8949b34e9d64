package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tailortalk/config"
	"tailortalk/internal/scheduling"
	"tailortalk/internal/scheduling/repository/gcal"
	schedulingUsecase "tailortalk/internal/scheduling/usecase"
	"tailortalk/pkg/gcalendar"
	"tailortalk/pkg/log"
	"tailortalk/pkg/slotfinder"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tailortalk",
		Short:        "Find free slots and inspect the calendar behind TailorTalk",
		SilenceUsage: true,
	}
	root.AddCommand(newSlotsCmd(), newEventsCmd(), newAuthCmd())
	return root
}

// newSchedulingUseCase builds the same scheduling stack the API uses, with
// a silent logger.
func newSchedulingUseCase(ctx context.Context) (scheduling.UseCase, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	client, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath,
		gcalendar.WithTokenPath(cfg.GoogleCalendar.TokenPath))
	if err != nil {
		return nil, fmt.Errorf("google calendar: %w", err)
	}

	l := log.NewNop()
	repo := gcal.New(client, cfg.GoogleCalendar.CalendarID, cfg.GoogleCalendar.BusyCalendarIDs, l)
	return schedulingUsecase.New(l, repo, schedulingUsecase.Config{
		Timezone: cfg.Scheduling.Timezone,
		BusinessHours: slotfinder.BusinessHours{
			OpenHour:  cfg.Scheduling.OpenHour,
			CloseHour: cfg.Scheduling.CloseHour,
		},
		EndOfBusinessHour:      cfg.Scheduling.EndOfBusinessHour,
		DefaultDurationMinutes: cfg.Scheduling.DefaultDurationMinutes,
		MaxSlots:               cfg.Scheduling.MaxSlots,
	}, nil), nil
}
