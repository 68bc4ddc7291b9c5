package types

import "eventscout/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
	Mode Mode
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Form actions
type FocusFieldAction struct {
	Delta int // +1 next field, -1 previous field
}

func (a FocusFieldAction) Type() string { return "focus_field" }

type CycleMaxEventsAction struct {
	Delta int
}

func (a CycleMaxEventsAction) Type() string { return "cycle_max_events" }

type ToggleDescriptionsAction struct{}

func (a ToggleDescriptionsAction) Type() string { return "toggle_descriptions" }

type HighlightCityAction struct {
	Index int
}

func (a HighlightCityAction) Type() string { return "highlight_city" }

// PickCityAction copies a popular city into the city input
type PickCityAction struct {
	Index int
}

func (a PickCityAction) Type() string { return "pick_city" }

type SubmitSearchAction struct{}

func (a SubmitSearchAction) Type() string { return "submit_search" }

// Result actions
type RetryAction struct{}

func (a RetryAction) Type() string { return "retry" }

type OpenDetailAction struct{}

func (a OpenDetailAction) Type() string { return "open_detail" }

type OpenLinkAction struct{}

func (a OpenLinkAction) Type() string { return "open_link" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

// Sort actions
type SortByAction struct {
	Key domain.SortKey
}

func (a SortByAction) Type() string { return "sort_by" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }
