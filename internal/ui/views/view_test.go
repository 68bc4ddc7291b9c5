package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eventscout/internal/domain"
	"eventscout/internal/session"
	"eventscout/internal/ui/input/types"
)

func TestRender_FormDisablesSubmitForBlankCity(t *testing.T) {
	r := NewRenderer()
	view := r.Render(ViewState{Width: 100, Height: 40, Mode: types.ModeForm, CityValue: "  ", MaxEvents: 10})

	assert.Contains(t, view, "Search Events")
	assert.Contains(t, view, "‹ 10 events ›")
}

func TestRender_LoadingShowsSpinnerLine(t *testing.T) {
	r := NewRenderer()
	view := r.Render(ViewState{
		Width: 100, Height: 40, Mode: types.ModeForm, Spinner: "*",
		Session: session.Session{Status: session.Loading, City: "Tokyo"},
	})

	assert.Contains(t, view, "* Discovering amazing events in Tokyo...")
	assert.Contains(t, view, "Searching...")
}

func TestRender_ErrorScreen(t *testing.T) {
	r := NewRenderer()
	view := r.Render(ViewState{
		Width: 100, Height: 40, Mode: types.ModeNormal,
		Session: session.Session{Status: session.Error, Message: "Error fetching events"},
	})

	assert.Contains(t, view, "Error fetching events")
	assert.Contains(t, view, "Suggestions:")
	assert.Contains(t, view, "Try Again")
}

func TestRender_ResultsScrollIndicators(t *testing.T) {
	events := make([]domain.Event, 10)
	for i := range events {
		events[i] = domain.Event{Name: string(rune('A' + i)), DateTime: "Monday"}
	}
	r := NewRenderer()
	view := r.Render(ViewState{
		Width: 100, Height: 60, Mode: types.ModeNormal,
		Session:       session.Session{Status: session.Success, City: "Rome", Events: events},
		Events:        events,
		SelectedIndex: 4,
		VisibleStart:  2,
		VisibleEnd:    6,
		MoreAbove:     true,
		MoreBelow:     true,
	})

	assert.Contains(t, view, "10 Events in Rome")
	assert.Contains(t, view, "↑ 2 more above ↑")
	assert.Contains(t, view, "↓ 4 more below ↓")
}

func TestRenderEventDetail(t *testing.T) {
	event := domain.Event{
		Name:        "Harbour Lights",
		DateTime:    "Friday, 8pm",
		Link:        "https://example.com/h",
		Description: "<p>Boats &amp; lanterns</p>",
	}

	withDesc := RenderEventDetail(event, true)
	assert.Contains(t, withDesc, "Harbour Lights")
	assert.Contains(t, withDesc, "Location not specified")
	assert.Contains(t, withDesc, domain.FallbackImageURL)
	assert.Contains(t, withDesc, "https://example.com/h")
	assert.Contains(t, withDesc, "Boats & lanterns")

	withoutDesc := RenderEventDetail(event, false)
	assert.NotContains(t, withoutDesc, "Boats")
}

func TestTruncateVisible(t *testing.T) {
	assert.Equal(t, "abc", truncateVisible("abc", 5))
	assert.Equal(t, "ab…", truncateVisible("abcdef", 3))
}
