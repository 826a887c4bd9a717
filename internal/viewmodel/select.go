// Package viewmodel selects and orders events for presentation. It is
// pure: the renderer decides how rows look, this package decides which
// rows exist and in what order.
package viewmodel

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"daybook/internal/model"
)

// Select filters events by category and search text and returns them in
// display order: pinned events first, then by ascending target date when
// sortByDate is set, otherwise by locale-aware ascending title. The sort
// is stable, so events equal under both keys keep their input order.
//
// The two keys are compared independently (pin status first, then the
// secondary key) rather than folded into one boolean expression; the
// folded form is not a strict weak ordering when the keys disagree.
func Select(events []model.Event, category *model.Category, searchText string, sortByDate bool) []model.Event {
	selected := make([]model.Event, 0, len(events))
	for _, e := range events {
		if matches(&e, category, searchText) {
			selected = append(selected, e)
		}
	}

	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(selected, func(i, j int) bool {
		a, b := &selected[i], &selected[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		if sortByDate {
			return a.TargetDate.Before(b.TargetDate)
		}
		return coll.CompareString(a.Title, b.Title) < 0
	})

	return selected
}

func matches(e *model.Event, category *model.Category, searchText string) bool {
	if category != nil && e.Category != *category {
		return false
	}
	if searchText == "" {
		return true
	}
	needle := strings.ToLower(searchText)
	return strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(e.Notes), needle)
}
