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

func addCmd() *cobra.Command {
	var (
		startFlag    string
		targetFlag   string
		categoryFlag string
		notesFlag    string
		tagFlag      string
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a new event",
		Long: `Create a tracked event. Birthday events recur yearly: their next target
date is projected from the start date's month and day, and --target is
ignored. One-shot events count down to --target (defaulting to the start
date).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			category, err := model.ParseCategory(categoryFlag)
			if err != nil {
				return err
			}

			startDate := time.Now()
			if startFlag != "" {
				if startDate, err = parseDate(startFlag); err != nil {
					return err
				}
			}

			// Target date is fixed at creation: projected for birthdays,
			// explicit (or the start date) otherwise.
			var targetDate time.Time
			if category == model.CategoryBirthday {
				targetDate = dates.NextOccurrenceOrAnchor(startDate, time.Now())
			} else if targetFlag != "" {
				if targetDate, err = parseDate(targetFlag); err != nil {
					return err
				}
			} else {
				targetDate = startDate
			}

			event, err := model.NewEvent(args[0], startDate, targetDate, category, notesFlag, tagFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			if err := store.CreateEvent(ctx, event); err != nil {
				return fmt.Errorf("failed to create event: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %q (%s), target %s",
				event.Title, event.Category, event.TargetDate.Format("2006-01-02")))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "start/anchor date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&targetFlag, "target", "", "target date for one-shot events (YYYY-MM-DD)")
	cmd.Flags().StringVar(&categoryFlag, "category", "general", "category (general, work, personal, birthday)")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&tagFlag, "tag", "", "tag label")

	return cmd
}
