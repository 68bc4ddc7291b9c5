package logic

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"eventscout/internal/domain"
)

// SortEvents returns events ordered by key. The input slice is never
// modified and ties keep their server order, so sorting is idempotent.
//
// SortDate compares the free-text date strings byte by byte. "Friday, June 6"
// sorts before "Saturday, June 14" because F < S, not because of the calendar.
func SortEvents(events []domain.Event, key domain.SortKey) []domain.Event {
	sorted := make([]domain.Event, len(events))
	copy(sorted, events)

	switch key {
	case domain.SortDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.Compare(sorted[i].DateTime, sorted[j].DateTime) < 0
		})

	case domain.SortName:
		c := collate.New(language.English, collate.Loose)
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Name, sorted[j].Name) < 0
		})

	default:
		// server order
	}

	return sorted
}
