package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"tailortalk/internal/model"
	"tailortalk/internal/scheduling"
)

const displayLayout = "Monday, January 02, 2006 at 03:04 PM"

func newSlotsCmd() *cobra.Command {
	var (
		phrase   string
		duration int
		tz       string
		fullWeek bool
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List free slots for a date phrase",
		Example: `  tailortalk slots --phrase tomorrow
  tailortalk slots --phrase "next friday" --duration 30 --tz IST`,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := newSchedulingUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.SearchSlots(cmd.Context(), scheduling.SearchSlotsInput{
				Phrase:          phrase,
				DurationMinutes: duration,
				Timezone:        tz,
				FullWeek:        fullWeek,
			})
			if err != nil {
				return err
			}
			return printSlots(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&phrase, "phrase", "p", "today", "Date phrase such as tomorrow, next friday or 29th June")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Slot length in minutes (default from config)")
	cmd.Flags().StringVar(&tz, "tz", "", "Timezone, IANA name or alias such as IST")
	cmd.Flags().BoolVar(&fullWeek, "week", false, "Search five days instead of one")
	return cmd
}

func printSlots(w io.Writer, out scheduling.SearchSlotsOutput) error {
	loc, err := time.LoadLocation(out.Timezone)
	if err != nil {
		loc = time.UTC
	}

	fmt.Fprintf(w, "Window %s to %s (%s, rule %s)\n",
		out.Window.Start.In(loc).Format(time.RFC3339), out.Window.End.In(loc).Format(time.RFC3339), out.Timezone, out.Rule.Kind)
	if len(out.Slots) == 0 {
		_, err := fmt.Fprintln(w, "No free slots.")
		return err
	}
	for i, s := range out.Slots {
		if _, err := fmt.Fprintf(w, "%2d. %s - %s\n", i+1, s.Start.In(loc).Format(displayLayout), s.End.In(loc).Format("03:04 PM")); err != nil {
			return err
		}
	}
	return nil
}

func printEvents(w io.Writer, events []model.Event, loc *time.Location) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No events.")
		return err
	}
	for _, e := range events {
		when := e.Start.In(loc).Format(displayLayout)
		if e.AllDay {
			when = e.Start.Format("Monday, January 02, 2006") + " (all day)"
		}
		if _, err := fmt.Fprintf(w, "- %s: %s [%s]\n", when, e.Title, e.ID); err != nil {
			return err
		}
	}
	return nil
}
