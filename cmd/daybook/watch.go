package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"daybook/internal/derived"
	"daybook/internal/refresh"
	"daybook/internal/service"
	"daybook/internal/viewmodel"
)

func watchCmd() *cobra.Command {
	var intervalFlag time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the event list on screen, refreshed at midnight and periodically",
		Long: `Run until interrupted, re-rendering the event list whenever derived
state is invalidated: at local midnight, when day counts change, and on a
coarse periodic tick that keeps the display coherent within the day.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			clock := service.SystemClock()
			tracker := derived.NewTracker(clock)

			render := func() {
				events, fetchErr := store.GetAllEvents(ctx)
				if fetchErr != nil {
					slog.Error("failed to fetch events", "error", fetchErr)
					return
				}
				view := viewmodel.BuildListView(events, tracker, nil, "", true)
				fmt.Fprint(os.Stdout, "\033[H\033[2J") // clear screen
				if renderErr := renderListView(os.Stdout, view); renderErr != nil {
					slog.Error("failed to render events", "error", renderErr)
				}
			}

			coordinator := refresh.NewCoordinator(store, tracker, clock,
				refresh.WithInterval(intervalFlag),
				refresh.WithOnRefresh(render))
			if err := coordinator.Start(ctx); err != nil {
				return fmt.Errorf("failed to start refresh coordinator: %w", err)
			}
			defer coordinator.Stop()

			render()
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().DurationVar(&intervalFlag, "interval", refresh.DefaultInterval, "periodic refresh interval")

	return cmd
}
