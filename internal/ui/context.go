package ui

import (
	"eventscout/internal/domain"
	"eventscout/internal/session"
	"eventscout/internal/ui/input/types"
)

// modelContext implements the input Context over the model
type modelContext struct {
	m *Model
}

func (c modelContext) Status() session.Status {
	return c.m.session.Status
}

func (c modelContext) CurrentIndex() int {
	return c.m.navigator.GetSelectedIndex()
}

// TotalItems returns the number of events currently listed
func (c modelContext) TotalItems() int {
	return len(c.m.display)
}

// HasResults is true once a search succeeded, even with zero events
func (c modelContext) HasResults() bool {
	return c.m.session.Status == session.Success
}

func (c modelContext) FormFocus() types.FormField {
	return c.m.inputHandler.FormFocus()
}

func (c modelContext) CurrentSort() domain.SortKey {
	return c.m.sortKey
}

func (c modelContext) FilterQuery() string {
	return c.m.filterQuery
}
