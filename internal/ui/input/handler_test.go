package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventscout/internal/domain"
	"eventscout/internal/session"
	"eventscout/internal/ui/input/types"
)

type fakeContext struct {
	status  session.Status
	index   int
	total   int
	focus   types.FormField
	sortKey domain.SortKey
	filter  string
}

func (c *fakeContext) Status() session.Status      { return c.status }
func (c *fakeContext) CurrentIndex() int           { return c.index }
func (c *fakeContext) TotalItems() int             { return c.total }
func (c *fakeContext) HasResults() bool            { return c.status == session.Success }
func (c *fakeContext) FormFocus() types.FormField  { return c.focus }
func (c *fakeContext) CurrentSort() domain.SortKey { return c.sortKey }
func (c *fakeContext) FilterQuery() string         { return c.filter }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(h *Handler, ctx *fakeContext, text string) {
	for _, r := range text {
		h.HandleKey(runes(string(r)), ctx)
	}
}

func TestHandler_StartsInFormWithCityFocused(t *testing.T) {
	h := New()
	assert.Equal(t, types.ModeForm, h.CurrentMode())
	assert.Equal(t, types.FieldCity, h.FormFocus())
	assert.True(t, h.City().Focused())
}

func TestHandler_TypingFillsCity(t *testing.T) {
	h := New()
	ctx := &fakeContext{}

	typeText(h, ctx, "qa")
	actions, _ := h.HandleKey(runes("z"), ctx)

	assert.Equal(t, "qaz", h.City().Value())
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "qaz", Mode: types.ModeForm}, actions[0])
}

func TestHandler_EnterSubmitsSearch(t *testing.T) {
	h := New()
	ctx := &fakeContext{}
	typeText(h, ctx, "Paris")

	actions, _ := h.HandleKey(key(tea.KeyEnter), ctx)

	assert.Equal(t, []types.Action{types.SubmitSearchAction{}}, actions)
}

func TestHandler_TabMovesFocusAndBlursCity(t *testing.T) {
	h := New()
	ctx := &fakeContext{}

	h.HandleKey(key(tea.KeyTab), ctx)
	assert.Equal(t, types.FieldMaxEvents, h.FormFocus())
	assert.False(t, h.City().Focused())

	// Letters no longer reach the city input
	ctx.focus = h.FormFocus()
	h.HandleKey(runes("x"), ctx)
	assert.Empty(t, h.City().Value())

	h.HandleKey(key(tea.KeyShiftTab), ctx)
	assert.Equal(t, types.FieldCity, h.FormFocus())
	assert.True(t, h.City().Focused())
}

func TestHandler_FocusWrapsAround(t *testing.T) {
	h := New()
	ctx := &fakeContext{}

	h.HandleKey(key(tea.KeyShiftTab), ctx)
	assert.Equal(t, types.FieldPopular, h.FormFocus())
	h.HandleKey(key(tea.KeyTab), ctx)
	assert.Equal(t, types.FieldCity, h.FormFocus())
}

func TestHandler_FormControls(t *testing.T) {
	h := New()
	ctx := &fakeContext{focus: types.FieldMaxEvents}

	actions, _ := h.HandleKey(key(tea.KeyRight), ctx)
	assert.Equal(t, []types.Action{types.CycleMaxEventsAction{Delta: 1}}, actions)

	ctx.focus = types.FieldDescriptions
	actions, _ = h.HandleKey(runes(" "), ctx)
	assert.Equal(t, []types.Action{types.ToggleDescriptionsAction{}}, actions)
}

func TestHandler_QuickPickRefocusesCity(t *testing.T) {
	h := New()
	ctx := &fakeContext{}
	h.HandleKey(key(tea.KeyTab), ctx)
	ctx.focus = h.FormFocus()

	actions, _ := h.HandleKey(runes("2"), ctx)

	assert.Equal(t, []types.Action{types.PickCityAction{Index: 1}}, actions)
	assert.Equal(t, types.FieldCity, h.FormFocus())
	assert.True(t, h.City().Focused())
	assert.Equal(t, 1, h.PopularIndex())
}

func TestHandler_DigitsAreTypedIntoCity(t *testing.T) {
	h := New()
	ctx := &fakeContext{}

	actions, _ := h.HandleKey(runes("2"), ctx)

	assert.Equal(t, "2", h.City().Value())
	require.Len(t, actions, 1)
	assert.IsType(t, types.UpdateTextAction{}, actions[0])
}

func TestHandler_PopularCityHighlight(t *testing.T) {
	h := New()
	ctx := &fakeContext{focus: types.FieldPopular}

	actions, _ := h.HandleKey(key(tea.KeyLeft), ctx)
	last := len(domain.PopularCities) - 1
	assert.Equal(t, []types.Action{types.HighlightCityAction{Index: last}}, actions)

	actions, _ = h.HandleKey(key(tea.KeyEnter), ctx)
	assert.Equal(t, []types.Action{types.PickCityAction{Index: last}}, actions)
}

func TestHandler_EscOnIdleFormStays(t *testing.T) {
	h := New()
	ctx := &fakeContext{status: session.Idle}

	actions, _ := h.HandleKey(key(tea.KeyEsc), ctx)

	assert.Empty(t, actions)
	assert.Equal(t, types.ModeForm, h.CurrentMode())
}

func TestHandler_EscReturnsToResults(t *testing.T) {
	h := New()
	ctx := &fakeContext{status: session.Success, total: 3}

	h.HandleKey(key(tea.KeyEsc), ctx)

	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.False(t, h.City().Focused())
}

func TestHandler_NormalNavigation(t *testing.T) {
	h := New()
	ctx := &fakeContext{status: session.Success, total: 3}
	h.SetMode(types.ModeNormal, ctx)

	actions, _ := h.HandleKey(runes("j"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)

	actions, _ = h.HandleKey(runes("G"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "end"}}, actions)

	actions, _ = h.HandleKey(runes("g"), ctx)
	assert.Empty(t, actions)
	actions, _ = h.HandleKey(runes("g"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "home"}}, actions)

	actions, _ = h.HandleKey(key(tea.KeyEnter), ctx)
	assert.Equal(t, []types.Action{types.OpenDetailAction{}}, actions)

	actions, _ = h.HandleKey(runes("o"), ctx)
	assert.Equal(t, []types.Action{types.OpenLinkAction{}}, actions)
}

func TestHandler_RetryOnlyFromError(t *testing.T) {
	h := New()
	ctx := &fakeContext{status: session.Success, total: 1}
	h.SetMode(types.ModeNormal, ctx)

	actions, _ := h.HandleKey(runes("r"), ctx)
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	ctx.status = session.Error
	actions, _ = h.HandleKey(runes("r"), ctx)
	assert.Equal(t, []types.Action{types.RetryAction{}}, actions)
	assert.Equal(t, types.ModeForm, h.CurrentMode())
	assert.True(t, h.City().Focused())
}

func TestHandler_SortSelect(t *testing.T) {
	h := New()
	ctx := &fakeContext{status: session.Success, total: 3, sortKey: domain.SortDate}
	h.SetMode(types.ModeNormal, ctx)

	actions, _ := h.HandleKey(runes("s"), ctx)
	assert.Equal(t, types.ModeSort, h.CurrentMode())
	assert.Equal(t, []types.Action{types.UpdateSortIndexAction{Index: 1}}, actions)

	actions, _ = h.HandleKey(key(tea.KeyDown), ctx)
	assert.Equal(t, []types.Action{
		types.UpdateSortIndexAction{Index: 2},
		types.SortByAction{Key: domain.SortName},
	}, actions)

	// Wraps to the first option
	actions, _ = h.HandleKey(runes("j"), ctx)
	assert.Contains(t, actions, types.SortByAction{Key: domain.SortDefault})

	// esc restores the key active on entry
	actions, _ = h.HandleKey(key(tea.KeyEsc), ctx)
	assert.Equal(t, []types.Action{types.SortByAction{Key: domain.SortDate}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestHandler_SortNeedsResults(t *testing.T) {
	h := New()
	ctx := &fakeContext{status: session.Error}
	h.SetMode(types.ModeNormal, ctx)

	h.HandleKey(runes("s"), ctx)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestHandler_FilterLifecycle(t *testing.T) {
	h := New()
	ctx := &fakeContext{status: session.Success, total: 3, filter: "jazz"}
	h.SetMode(types.ModeNormal, ctx)

	h.HandleKey(runes("/"), ctx)
	require.Equal(t, types.ModeFilter, h.CurrentMode())
	assert.Equal(t, "jazz", h.Filter().Value(), "filter mode starts from the active query")

	actions, _ := h.HandleKey(runes("y"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "jazzy", Mode: types.ModeFilter}}, actions)

	actions, _ = h.HandleKey(key(tea.KeyEnter), ctx)
	assert.Equal(t, []types.Action{types.SubmitTextAction{Text: "jazzy", Mode: types.ModeFilter}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestHandler_FilterCancel(t *testing.T) {
	h := New()
	ctx := &fakeContext{status: session.Success, total: 3}
	h.SetMode(types.ModeNormal, ctx)
	h.HandleKey(runes("/"), ctx)

	actions, _ := h.HandleKey(key(tea.KeyEsc), ctx)

	assert.Equal(t, []types.Action{types.CancelTextAction{Mode: types.ModeFilter}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestHandler_EscClearsActiveFilter(t *testing.T) {
	h := New()
	ctx := &fakeContext{status: session.Success, total: 3, filter: "rock"}
	h.SetMode(types.ModeNormal, ctx)

	actions, _ := h.HandleKey(key(tea.KeyEsc), ctx)
	assert.Equal(t, []types.Action{types.ClearFilterAction{}}, actions)
}

func TestHandler_Quit(t *testing.T) {
	h := New()
	ctx := &fakeContext{}

	actions, _ := h.HandleKey(key(tea.KeyCtrlC), ctx)
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)

	// q is text while the city input has focus
	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.IsType(t, types.UpdateTextAction{}, actions[0])

	h.SetMode(types.ModeNormal, &fakeContext{status: session.Success})
	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.QuitAction{}}, actions)
}
