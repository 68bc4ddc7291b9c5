package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"eventscout/internal/ui/input/types"
)

// FilterMode edits the result filter. The list narrows on every keystroke.
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", ti),
	}
}

// Enter starts from the active filter so it can be refined
func (m *FilterMode) Enter(ctx types.Context) []types.Action {
	actions := m.TextInputMode.Enter(ctx)
	if m.input != nil {
		m.input.SetValue(ctx.FilterQuery())
		m.input.CursorEnd()
	}
	return actions
}
