package main

import (
	"github.com/spf13/cobra"

	"tailortalk/internal/scheduling"
	"tailortalk/pkg/datemath"
)

func newEventsCmd() *cobra.Command {
	var (
		phrase    string
		daysAhead int
		tz        string
		query     string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List calendar events for a date phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := newSchedulingUseCase(cmd.Context())
			if err != nil {
				return err
			}
			if tz == "" {
				tz = uc.DefaultTimezone()
			}
			out, err := uc.ListEvents(cmd.Context(), scheduling.ListEventsInput{
				Phrase:    phrase,
				DaysAhead: daysAhead,
				Timezone:  tz,
				Query:     query,
			})
			if err != nil {
				return err
			}
			loc, _ := datemath.LoadZone(tz)
			return printEvents(cmd.OutOrStdout(), out.Events, loc)
		},
	}

	cmd.Flags().StringVarP(&phrase, "phrase", "p", "today", "Date phrase")
	cmd.Flags().IntVar(&daysAhead, "days", 0, "Number of days to cover from the resolved date")
	cmd.Flags().StringVar(&tz, "tz", "", "Timezone, IANA name or alias such as IST")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Free-text filter")
	return cmd
}
