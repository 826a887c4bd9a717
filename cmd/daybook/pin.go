package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"daybook/internal/cli"
)

func pinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin ID|TITLE",
		Short: "Toggle an event's pinned state",
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

			event.TogglePin()
			if err := saveEvent(ctx, store, event); err != nil {
				return err
			}

			state := "unpinned"
			if event.IsPinned {
				state = "pinned"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s %q", state, event.Title))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
