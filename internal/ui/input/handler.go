package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"eventscout/internal/ui/input/modes"
	"eventscout/internal/ui/input/types"
)

// CityCharLimit bounds the city input
const CityCharLimit = 64

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	formFocus   types.FormField

	city   *textinput.Model // search form city input
	filter *textinput.Model // result filter input
}

func New() *Handler {
	city := textinput.New()
	city.Placeholder = "Enter city name..."
	city.Prompt = ""
	city.CharLimit = CityCharLimit

	filter := textinput.New()
	filter.Prompt = ""

	h := &Handler{
		currentMode: types.ModeForm,
		formFocus:   types.FieldCity,
		city:        &city,
		filter:      &filter,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeForm] = modes.NewFormMode()
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeFilter] = modes.NewFilterMode(h.filter)
	h.modes[types.ModeSort] = modes.NewSortSelectMode()

	h.city.Focus()
	return h
}

// HandleKey routes msg to the active mode. Mode changes and form focus moves
// are applied here; every other action is returned for the model to run.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmds []tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		switch a := action.(type) {
		case types.ChangeModeAction:
			modeActions, cmd := h.switchMode(a.Mode, ctx)
			allActions = append(allActions, modeActions...)
			cmds = append(cmds, cmd)
		case types.FocusFieldAction:
			cmds = append(cmds, h.moveFocus(a.Delta))
		case types.PickCityAction:
			// Picking a city hands focus back to the city input
			h.formFocus = types.FieldCity
			cmds = append(cmds, h.city.Focus())
			allActions = append(allActions, action)
		default:
			allActions = append(allActions, action)
		}
	}

	if !consumed {
		if ti := h.activeInput(); ti != nil {
			var cmd tea.Cmd
			*ti, cmd = ti.Update(msg)
			cmds = append(cmds, cmd)
			allActions = append(allActions, types.UpdateTextAction{Text: ti.Value(), Mode: h.currentMode})
		}
	}

	return allActions, tea.Batch(cmds...)
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context) ([]types.Action, tea.Cmd) {
	var actions []types.Action
	if current := h.modes[h.currentMode]; current != nil {
		actions = append(actions, current.Exit(ctx)...)
	}
	h.city.Blur()

	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}

	var cmd tea.Cmd
	switch {
	case mode == types.ModeForm && h.formFocus == types.FieldCity:
		cmd = h.city.Focus()
	case mode == types.ModeFilter:
		cmd = textinput.Blink
	}
	return actions, cmd
}

func (h *Handler) moveFocus(delta int) tea.Cmd {
	n := len(types.FormFields)
	h.formFocus = types.FormFields[(int(h.formFocus)+delta+n)%n]
	if h.formFocus == types.FieldCity {
		return h.city.Focus()
	}
	h.city.Blur()
	return nil
}

// activeInput returns the text input that receives unconsumed keys, if any
func (h *Handler) activeInput() *textinput.Model {
	switch {
	case h.currentMode == types.ModeFilter:
		return h.filter
	case h.currentMode == types.ModeForm && h.formFocus == types.FieldCity:
		return h.city
	default:
		return nil
	}
}

// SetMode switches mode outside of key handling, e.g. when a search finishes
func (h *Handler) SetMode(mode types.Mode, ctx types.Context) ([]types.Action, tea.Cmd) {
	if mode == h.currentMode {
		return nil, nil
	}
	return h.switchMode(mode, ctx)
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeForm
	}
	return h.currentMode
}

// FormFocus returns the focused search form control
func (h *Handler) FormFocus() types.FormField {
	return h.formFocus
}

// PopularIndex returns the highlighted popular city
func (h *Handler) PopularIndex() int {
	if form, ok := h.modes[types.ModeForm].(*modes.FormMode); ok {
		return form.PopularIndex()
	}
	return 0
}

// City returns the city input
func (h *Handler) City() *textinput.Model {
	return h.city
}

// SetCity replaces the city input value
func (h *Handler) SetCity(value string) {
	h.city.SetValue(value)
	h.city.CursorEnd()
}

// Filter returns the filter input
func (h *Handler) Filter() *textinput.Model {
	return h.filter
}

// Update handles non-keyboard messages, such as cursor blinks, for the active input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if ti := h.activeInput(); ti != nil {
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return cmd
	}
	return nil
}
