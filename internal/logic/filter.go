package logic

import (
	"strings"

	"eventscout/internal/domain"
)

// Filter prefixes narrowing a query to a single field
const (
	DatePrefix     = "date:"
	LocationPrefix = "at:"
)

// MatchesFilter checks if an event matches the given filter query. A plain
// query matches name, date, location or description case-insensitively.
func MatchesFilter(event domain.Event, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	switch {
	case strings.HasPrefix(query, DatePrefix):
		return containsFold(event.DateTime, strings.TrimSpace(strings.TrimPrefix(query, DatePrefix)))
	case strings.HasPrefix(query, LocationPrefix):
		return containsFold(event.Location, strings.TrimSpace(strings.TrimPrefix(query, LocationPrefix)))
	}

	return containsFold(event.Name, query) ||
		containsFold(event.DateTime, query) ||
		containsFold(event.Location, query) ||
		containsFold(event.Description, query)
}

// FilterEvents returns the events matching query, in input order
func FilterEvents(events []domain.Event, query string) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if MatchesFilter(e, query) {
			out = append(out, e)
		}
	}
	return out
}

// DisplayEvents applies the filter and then the sort key
func DisplayEvents(events []domain.Event, key domain.SortKey, query string) []domain.Event {
	return SortEvents(FilterEvents(events, query), key)
}

func containsFold(s, lowerSubstr string) bool {
	return strings.Contains(strings.ToLower(s), lowerSubstr)
}
