package views

import (
	"fmt"
	"strings"

	"eventscout/internal/domain"
	"eventscout/internal/session"
	"eventscout/internal/ui/input/types"
)

// renderForm renders the search form. Controls are drawn disabled while a
// search is loading.
func (r *Renderer) renderForm(state ViewState) string {
	loading := state.Session.Status == session.Loading
	focused := func(field types.FormField) bool {
		return !loading && state.Mode == types.ModeForm && state.FormFocus == field
	}
	label := func(field types.FormField, text string) string {
		if focused(field) {
			return r.styles.FocusedLabel.Render("▸ " + text)
		}
		return r.styles.Label.Render("  " + text)
	}

	var b strings.Builder
	b.WriteString(r.styles.Heading.Render("Find Events Near You"))
	b.WriteString("\n\n")

	// City
	b.WriteString(label(types.FieldCity, "City"))
	b.WriteString("\n")
	inputStyle := r.styles.Input
	if focused(types.FieldCity) {
		inputStyle = r.styles.FocusedInput
	}
	city := state.CityInput
	if loading {
		city = r.styles.Dim.Render(state.CityValue)
	}
	b.WriteString(inputStyle.Width(min(contentWidth(state)-2, 50)).Render(city))
	b.WriteString("\n")

	// Quick picks
	b.WriteString(label(types.FieldPopular, "Popular"))
	b.WriteString(" ")
	for i, name := range domain.PopularCities {
		chip := fmt.Sprintf("%d %s", i+1, name)
		if focused(types.FieldPopular) && i == state.PopularIndex {
			b.WriteString(r.styles.ChipActive.Render(chip))
		} else {
			b.WriteString(r.styles.Chip.Render(chip))
		}
	}
	b.WriteString("\n\n")

	// Number of events
	b.WriteString(label(types.FieldMaxEvents, "Number of Events"))
	b.WriteString("  ")
	maxText := fmt.Sprintf("‹ %d events ›", state.MaxEvents)
	if focused(types.FieldMaxEvents) {
		b.WriteString(r.styles.Highlight.Render(maxText))
	} else {
		b.WriteString(maxText)
	}
	b.WriteString("\n")

	// Descriptions
	b.WriteString(label(types.FieldDescriptions, "Show descriptions"))
	b.WriteString("  ")
	box := "[ ]"
	if state.ShowDescriptions {
		box = "[x]"
	}
	if focused(types.FieldDescriptions) {
		b.WriteString(r.styles.Highlight.Render(box))
	} else {
		b.WriteString(box)
	}
	b.WriteString("\n\n")

	// Submit
	switch {
	case loading:
		b.WriteString(r.styles.ButtonOff.Render("Searching..."))
	case strings.TrimSpace(state.CityValue) == "":
		b.WriteString(r.styles.ButtonOff.Render("Search Events"))
	default:
		b.WriteString(r.styles.Button.Render("Search Events"))
	}

	return b.String()
}
