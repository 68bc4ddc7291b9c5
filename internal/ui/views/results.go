package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"eventscout/internal/domain"
	"eventscout/internal/logic"
	"eventscout/internal/ui/input/types"
)

// cardDescriptionLimit bounds the description shown in the inline card
const cardDescriptionLimit = 160

// renderResults renders the header, sort or filter controls, the event list
// and a card for the selected event
func (r *Renderer) renderResults(state ViewState) string {
	var b strings.Builder

	header := fmt.Sprintf("%d Events in %s", len(state.Session.Events), state.Session.City)
	b.WriteString(r.styles.Heading.Render(header))
	if state.FilterQuery != "" && len(state.Events) != len(state.Session.Events) {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("  (%d shown)", len(state.Events))))
	}
	b.WriteString("\n")

	switch state.Mode {
	case types.ModeSort:
		b.WriteString(r.renderSortOptions(state))
		b.WriteString("\n")
	case types.ModeFilter:
		b.WriteString(r.styles.Filter.Render("Filter: "))
		b.WriteString(state.FilterInput)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(state.Session.Events) == 0 {
		b.WriteString(r.styles.Dim.Render("No events found. Try a different search."))
		return b.String()
	}
	if len(state.Events) == 0 {
		b.WriteString(r.styles.Dim.Render("No events match the filter. Press esc to clear it."))
		return b.String()
	}

	b.WriteString(r.renderEventList(state))
	b.WriteString("\n\n")

	if state.SelectedIndex >= 0 && state.SelectedIndex < len(state.Events) {
		b.WriteString(r.renderEventCard(state.Events[state.SelectedIndex], state.Session.ShowDescriptions, contentWidth(state)))
	}
	return b.String()
}

func (r *Renderer) renderEventList(state ViewState) string {
	var lines []string
	width := contentWidth(state)

	if state.MoreAbove {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.VisibleStart)))
	}

	for i := state.VisibleStart; i < state.VisibleEnd && i < len(state.Events); i++ {
		lines = append(lines, r.renderEventRow(state.Events[i], i == state.SelectedIndex, width))
	}

	if state.MoreBelow {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", len(state.Events)-state.VisibleEnd)))
	}

	return strings.Join(lines, "\n")
}

func (r *Renderer) renderEventRow(event domain.Event, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	row := cursor + event.Name
	meta := r.styles.Dim.Render(fmt.Sprintf("  %s · %s", event.DateTime, event.LocationOrDefault()))
	if selected {
		row = r.styles.Highlight.Render(row)
	}
	line := row + meta
	if lipgloss.Width(line) > width {
		line = truncateVisible(cursor+event.Name+fmt.Sprintf("  %s · %s", event.DateTime, event.LocationOrDefault()), width)
		if selected {
			line = r.styles.Highlight.Render(line)
		}
	}
	if selected {
		return r.styles.SelectionBg.Render(line)
	}
	return line
}

// renderEventCard renders the selected event the way a result card shows it
func (r *Renderer) renderEventCard(event domain.Event, showDescription bool, width int) string {
	var b strings.Builder
	b.WriteString(r.styles.Heading.Render(event.Name))
	b.WriteString("\n")
	b.WriteString("📅 " + event.DateTime)
	b.WriteString("\n")
	b.WriteString("📍 " + event.LocationOrDefault())
	if showDescription {
		if desc := logic.CleanDescription(event.Description, cardDescriptionLimit); desc != "" {
			b.WriteString("\n\n")
			b.WriteString(desc)
		}
	}
	b.WriteString("\n\n")
	b.WriteString(r.styles.Dim.Render("Image: ") + event.ImageURL())
	if event.Link != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("View details: ") + r.styles.Link.Render(event.Link))
	}
	return r.styles.Card.Width(width - 2).Render(b.String())
}

// renderSortOptions renders the sort selector with the highlighted option
func (r *Renderer) renderSortOptions(state ViewState) string {
	var parts []string
	for i, key := range domain.SortKeys {
		if i == state.SortOptionIndex {
			parts = append(parts, r.styles.ChipActive.Render(key.Label()))
		} else {
			parts = append(parts, r.styles.Chip.Render(key.Label()))
		}
	}
	return "Sort By: " + strings.Join(parts, " ")
}

// truncateVisible cuts s to width runes, marking the cut with "…"
func truncateVisible(s string, width int) string {
	runes := []rune(s)
	if width <= 1 || len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
