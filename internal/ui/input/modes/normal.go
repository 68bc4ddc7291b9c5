package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"eventscout/internal/session"
	"eventscout/internal/ui/input/types"
)

// NormalMode handles the results list and the error screen
type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	m.lastKeyWasG = false
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		if ctx.FilterQuery() != "" {
			return []types.Action{types.ClearFilterAction{}}, true
		}
		return nil, false

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.Status() == session.Error {
			return []types.Action{types.RetryAction{}, types.ChangeModeAction{Mode: types.ModeForm}}, true
		}
		if ctx.TotalItems() > 0 {
			return []types.Action{types.OpenDetailAction{}}, true
		}
		return nil, false
	}

	// Handle string keys
	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		// gg jumps to the top
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "r":
		if ctx.Status() != session.Error {
			return nil, true
		}
		return []types.Action{types.RetryAction{}, types.ChangeModeAction{Mode: types.ModeForm}}, true

	case "e", "n":
		// Edit the search; the form keeps the last submitted values
		return []types.Action{types.ChangeModeAction{Mode: types.ModeForm}}, true

	case "s":
		if !ctx.HasResults() {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSort}}, true

	case "/", "F":
		if !ctx.HasResults() {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter}}, true

	case "o":
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.OpenLinkAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	m.lastKeyWasG = false
	return nil, false
}
