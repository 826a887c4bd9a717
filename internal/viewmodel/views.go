package viewmodel

import (
	"daybook/internal/derived"
	"daybook/internal/model"
)

// ListItem is a single rendered row: the event plus its derived display
// values, resolved once so the renderer never touches the tracker.
type ListItem struct {
	Countdown string
	Event     model.Event
	Days      int
}

// ListView is the event list display data.
type ListView struct {
	SearchQuery string
	Items       []ListItem
	TotalCount  int
	SortByDate  bool
}

// IsEmpty returns true if no events matched the selection.
func (lv ListView) IsEmpty() bool {
	return len(lv.Items) == 0
}

// HasFilter returns true if any filter is active.
func (lv ListView) HasFilter() bool {
	return lv.SearchQuery != "" || lv.TotalCount != len(lv.Items)
}

// BuildListView selects, orders, and resolves derived state for a set of
// events in one pass.
func BuildListView(events []model.Event, tracker *derived.Tracker, category *model.Category, searchText string, sortByDate bool) ListView {
	selected := Select(events, category, searchText, sortByDate)

	items := make([]ListItem, 0, len(selected))
	for i := range selected {
		e := selected[i]
		items = append(items, ListItem{
			Event:     e,
			Days:      tracker.DaysRemaining(&e),
			Countdown: tracker.Display(&e),
		})
	}

	return ListView{
		Items:       items,
		TotalCount:  len(events),
		SearchQuery: searchText,
		SortByDate:  sortByDate,
	}
}
