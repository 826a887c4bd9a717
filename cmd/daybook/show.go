package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"daybook/internal/cli"
	"daybook/internal/derived"
	"daybook/internal/service"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID|TITLE",
		Short: "Show one event with all derived values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			event, err := resolveEvent(ctx, store, args[0])
			if err != nil {
				return err
			}

			tracker := derived.NewTracker(service.SystemClock())

			fmt.Println(cli.FormatTitle(event.Title)) //nolint:forbidigo // User-facing output

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() {
				if flushErr := w.Flush(); flushErr != nil {
					slog.Error("failed to flush table writer", "error", flushErr)
				}
			}()

			rows := []struct {
				label string
				value string
			}{
				{"ID", event.ID},
				{"Category", string(event.Category)},
				{"Recurring", fmt.Sprintf("%t", event.IsRecurring())},
				{"Pinned", fmt.Sprintf("%t", event.IsPinned)},
				{"Start date", event.StartDate.Format("2006-01-02")},
				{"Next target", tracker.NextTargetDate(event).Format("2006-01-02")},
				{"Countdown", tracker.Display(event)},
				{"Days passed", fmt.Sprintf("%d", tracker.TotalDaysPassed(event))},
				{"Anniversary", fmt.Sprintf("%d years, %d days", tracker.AnniversaryYears(event), tracker.AnniversaryDays(event))},
				{"Tag", event.Tag},
				{"Notes", event.Notes},
			}
			for _, row := range rows {
				if _, err := fmt.Fprintf(w, "%s\t%s\n", cli.SubtleStyle.Render(row.label), row.value); err != nil {
					return fmt.Errorf("failed to write row: %w", err)
				}
			}
			return nil
		},
	}
}
