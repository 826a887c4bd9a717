package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"daybook/internal/cli"
	"daybook/internal/dates"
	"daybook/internal/model"
)

func editCmd() *cobra.Command {
	var (
		titleFlag    string
		startFlag    string
		targetFlag   string
		categoryFlag string
		notesFlag    string
		tagFlag      string
	)

	cmd := &cobra.Command{
		Use:   "edit ID|TITLE",
		Short: "Edit an event",
		Long: `Update event fields. Changing the category to or from birthday
recomputes the target date, since birthdays recur yearly and one-shot
events do not.`,
		Args: cobra.ExactArgs(1),
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

			var update model.EventUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &titleFlag
			}
			if cmd.Flags().Changed("start") {
				start, parseErr := parseDate(startFlag)
				if parseErr != nil {
					return parseErr
				}
				update.StartDate = &start
			}
			if cmd.Flags().Changed("target") {
				target, parseErr := parseDate(targetFlag)
				if parseErr != nil {
					return parseErr
				}
				update.TargetDate = &target
			}
			if cmd.Flags().Changed("category") {
				category, parseErr := model.ParseCategory(categoryFlag)
				if parseErr != nil {
					return parseErr
				}
				update.Category = &category
			}
			if cmd.Flags().Changed("notes") {
				update.Notes = &notesFlag
			}
			if cmd.Flags().Changed("tag") {
				update.Tag = &tagFlag
			}

			if err := event.ApplyUpdate(update); err != nil {
				return err
			}

			// Date or category edits change the projection; recompute the
			// stored target for recurring events before saving.
			if event.IsRecurring() {
				event.TargetDate = dates.NextOccurrenceOrAnchor(event.StartDate, time.Now())
			}

			if err := saveEvent(ctx, store, event); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated %q", event.Title))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringVar(&titleFlag, "title", "", "new title")
	cmd.Flags().StringVar(&startFlag, "start", "", "new start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&targetFlag, "target", "", "new target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "new category")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "new notes")
	cmd.Flags().StringVar(&tagFlag, "tag", "", "new tag")

	return cmd
}
