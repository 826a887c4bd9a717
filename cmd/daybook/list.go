package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"daybook/internal/cli"
	"daybook/internal/derived"
	"daybook/internal/model"
	"daybook/internal/service"
	"daybook/internal/viewmodel"
)

func listCmd() *cobra.Command {
	var (
		categoryFlag string
		searchFlag   string
		byDateFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events with their countdowns",
		Long: `Display tracked events. Pinned events always sort first; the rest order
by title, or by target date with --by-date. --search matches title and
notes case-insensitively.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var category *model.Category
			if categoryFlag != "" {
				c, err := model.ParseCategory(categoryFlag)
				if err != nil {
					return err
				}
				category = &c
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

			events, err := store.GetAllEvents(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch events: %w", err)
			}

			tracker := derived.NewTracker(service.SystemClock())
			view := viewmodel.BuildListView(events, tracker, category, searchFlag, byDateFlag)
			return renderListView(os.Stdout, view)
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "filter by category")
	cmd.Flags().StringVar(&searchFlag, "search", "", "filter by title/notes substring")
	cmd.Flags().BoolVar(&byDateFlag, "by-date", false, "sort by target date instead of title")

	return cmd
}

func renderListView(out io.Writer, view viewmodel.ListView) error {
	if view.IsEmpty() {
		msg := "No events found. Use 'daybook add' to create one."
		if view.HasFilter() {
			msg = "No events match the current filter."
		}
		fmt.Fprintln(out, cli.InfoStyle.Render(msg))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle("Events"))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Title"),
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Target"),
		cli.HeaderStyle.Render("Countdown"),
		cli.HeaderStyle.Render("Tag")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 20),
		strings.Repeat("─", 8),
		strings.Repeat("─", 10),
		strings.Repeat("─", 16),
		strings.Repeat("─", 6)); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, item := range view.Items {
		title := item.Event.Title
		if item.Event.IsPinned {
			title = cli.PinnedStyle.Render(cli.PinIcon + " " + title)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			title,
			item.Event.Category,
			item.Event.TargetDate.Format("2006-01-02"),
			item.Countdown,
			item.Event.Tag); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}
