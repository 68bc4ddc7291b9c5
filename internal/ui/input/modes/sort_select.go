package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"eventscout/internal/domain"
	"eventscout/internal/ui/input/types"
)

// SortSelectMode lets the user pick a sort key. Moving the highlight applies
// the key immediately; esc restores the key active on entry.
type SortSelectMode struct {
	sortIndex     int
	originalIndex int
}

func NewSortSelectMode() *SortSelectMode {
	return &SortSelectMode{}
}

func (m *SortSelectMode) Name() string {
	return "sort"
}

func (m *SortSelectMode) Enter(ctx types.Context) []types.Action {
	current := ctx.CurrentSort()
	m.sortIndex = 0
	m.originalIndex = 0
	for i, key := range domain.SortKeys {
		if key == current {
			m.sortIndex = i
			m.originalIndex = i
			break
		}
	}
	return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}
}

func (m *SortSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SortSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q":
		return []types.Action{
			types.SortByAction{Key: domain.SortKeys[m.originalIndex]},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "enter":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case "up", "k":
		return m.move(-1), true

	case "down", "j":
		return m.move(1), true
	}

	return nil, true
}

func (m *SortSelectMode) move(delta int) []types.Action {
	n := len(domain.SortKeys)
	m.sortIndex = (m.sortIndex + delta + n) % n
	return []types.Action{
		types.UpdateSortIndexAction{Index: m.sortIndex},
		types.SortByAction{Key: domain.SortKeys[m.sortIndex]},
	}
}
