package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"eventscout/internal/ui/input/types"
)

// TextInputMode edits a single line owned by the input handler. Enter
// submits the line, esc cancels it, and both return to the results list.
type TextInputMode struct {
	mode  types.Mode
	name  string
	input *textinput.Model
}

// NewTextInputMode binds mode to input
func NewTextInputMode(mode types.Mode, name string, input *textinput.Model) TextInputMode {
	return TextInputMode{mode: mode, name: name, input: input}
}

func (m TextInputMode) Name() string {
	return m.name
}

// Enter starts from an empty, focused line
func (m TextInputMode) Enter(ctx types.Context) []types.Action {
	if m.input != nil {
		m.input.Reset()
		m.input.Focus()
	}
	return nil
}

func (m TextInputMode) Exit(ctx types.Context) []types.Action {
	if m.input != nil {
		m.input.Blur()
	}
	return nil
}

func (m TextInputMode) value() string {
	if m.input == nil {
		return ""
	}
	return m.input.Value()
}

func (m TextInputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	back := types.ChangeModeAction{Mode: types.ModeNormal}

	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{types.CancelTextAction{Mode: m.mode}, back}, true
	case "enter":
		return []types.Action{types.SubmitTextAction{Text: m.value(), Mode: m.mode}, back}, true
	}
	// not consumed: the handler types the key into the line
	return nil, false
}
