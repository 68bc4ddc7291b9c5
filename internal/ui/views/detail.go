package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"eventscout/internal/domain"
	"eventscout/internal/logic"
)

// RenderEventDetail renders the full event for the pager. The description is
// included only when the search asked for descriptions.
func RenderEventDetail(event domain.Event, showDescription bool) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(event.Name))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("When:  "))
	b.WriteString(event.DateTime)
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Where: "))
	b.WriteString(event.LocationOrDefault())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Image: "))
	b.WriteString(event.ImageURL())
	b.WriteString("\n")
	if event.Link != "" {
		b.WriteString(labelStyle.Render("Link:  "))
		b.WriteString(event.Link)
		b.WriteString("\n")
	}
	if showDescription {
		if desc := logic.CleanDescription(event.Description, 0); desc != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Width(80).Render(desc))
			b.WriteString("\n")
		}
	}
	return b.String()
}
