package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"daybook/internal/cli"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID|TITLE",
		Short: "Delete an event permanently",
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

			if err := store.DeleteEvent(ctx, event.ID); err != nil {
				return fmt.Errorf("failed to delete event: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %q", event.Title))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
