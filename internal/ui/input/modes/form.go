package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"eventscout/internal/domain"
	"eventscout/internal/session"
	"eventscout/internal/ui/input/types"
)

// FormMode drives the search form. Keys that are not form controls fall
// through to the city input while it has focus.
type FormMode struct {
	popularIndex int
}

func NewFormMode() *FormMode {
	return &FormMode{}
}

func (m *FormMode) Name() string {
	return "form"
}

func (m *FormMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// PopularIndex returns the highlighted quick pick
func (m *FormMode) PopularIndex() int {
	return m.popularIndex
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyTab, tea.KeyDown:
		return []types.Action{types.FocusFieldAction{Delta: 1}}, true
	case tea.KeyShiftTab, tea.KeyUp:
		return []types.Action{types.FocusFieldAction{Delta: -1}}, true
	case tea.KeyEsc:
		// Back to the results or error screen if there is one
		if ctx.Status() == session.Idle {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case tea.KeyEnter:
		if ctx.FormFocus() == types.FieldPopular {
			return []types.Action{types.PickCityAction{Index: m.popularIndex}}, true
		}
		return []types.Action{types.SubmitSearchAction{}}, true
	}

	switch ctx.FormFocus() {
	case types.FieldCity:
		// Typing goes to the city input
		return nil, false

	case types.FieldMaxEvents:
		switch msg.String() {
		case "left", "h":
			return []types.Action{types.CycleMaxEventsAction{Delta: -1}}, true
		case "right", "l", " ":
			return []types.Action{types.CycleMaxEventsAction{Delta: 1}}, true
		}

	case types.FieldDescriptions:
		switch msg.String() {
		case " ", "x", "left", "right", "h", "l":
			return []types.Action{types.ToggleDescriptionsAction{}}, true
		}

	case types.FieldPopular:
		switch msg.String() {
		case "left", "h":
			m.popularIndex = (m.popularIndex - 1 + len(domain.PopularCities)) % len(domain.PopularCities)
			return []types.Action{types.HighlightCityAction{Index: m.popularIndex}}, true
		case "right", "l":
			m.popularIndex = (m.popularIndex + 1) % len(domain.PopularCities)
			return []types.Action{types.HighlightCityAction{Index: m.popularIndex}}, true
		case " ":
			return []types.Action{types.PickCityAction{Index: m.popularIndex}}, true
		}
		if idx, ok := quickPickIndex(msg.String()); ok {
			m.popularIndex = idx
			return []types.Action{types.PickCityAction{Index: idx}}, true
		}
	}

	// Outside the city input the usual single-letter shortcuts apply
	switch msg.String() {
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	if idx, ok := quickPickIndex(msg.String()); ok {
		m.popularIndex = idx
		return []types.Action{types.PickCityAction{Index: idx}}, true
	}
	return nil, true
}

// quickPickIndex maps "1".."6" onto the popular city list
func quickPickIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	idx := int(key[0] - '1')
	if idx >= len(domain.PopularCities) {
		return 0, false
	}
	return idx, true
}
