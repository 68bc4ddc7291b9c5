package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"eventscout/internal/domain"
	"eventscout/internal/session"
	"eventscout/internal/ui/input/types"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Mode    types.Mode
	Session session.Session
	Warning string
	Status  string
	HelpBar string

	// Search form
	CityInput        string // rendered text input
	CityValue        string
	MaxEvents        int
	ShowDescriptions bool
	FormFocus        types.FormField
	PopularIndex     int
	Spinner          string

	// Results
	Events          []domain.Event // filtered and sorted
	SelectedIndex   int
	VisibleStart    int
	VisibleEnd      int
	MoreAbove       bool
	MoreBelow       bool
	SortKey         domain.SortKey
	SortOptionIndex int
	FilterInput     string // rendered filter input while editing
	FilterQuery     string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	if state.Warning != "" {
		content.WriteString(r.styles.Banner.Render(state.Warning))
		content.WriteString("\n\n")
	}

	switch {
	case state.Mode == types.ModeForm || state.Session.Status == session.Idle || state.Session.Status == session.Loading:
		content.WriteString(r.renderForm(state))
		if state.Session.Status == session.Loading {
			content.WriteString("\n\n")
			content.WriteString(r.renderLoading(state))
		}
	case state.Session.Status == session.Error:
		content.WriteString(r.renderError(state))
	default:
		content.WriteString(r.renderResults(state))
	}

	if state.Status != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.Status))
	}

	if state.HelpBar != "" {
		// Push the help bar to the bottom of the screen
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if padding := availableLines - currentLines - 1; padding > 0 {
			content.WriteString(strings.Repeat("\n", padding))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpBar))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderTitle builds the title line with the active filter and sort right-aligned
func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("eventscout")

	var right []string
	if state.Session.Status == session.Success {
		if state.FilterQuery != "" {
			right = append(right, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
		}
		if state.SortKey != domain.SortDefault {
			right = append(right, r.styles.Dim.Render(fmt.Sprintf("[Sort: %s]", state.SortKey.Label())))
		}
	}
	if len(right) == 0 {
		return logo
	}

	rightContent := strings.Join(right, "  ")
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	return logo + "  " + rightContent
}

func (r *Renderer) renderLoading(state ViewState) string {
	city := state.Session.City
	return r.styles.StatusLoading.Render(fmt.Sprintf("%s Discovering amazing events in %s...", state.Spinner, city))
}

func (r *Renderer) renderError(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.StatusError.Bold(true).Render("Oops! Something went wrong"))
	b.WriteString("\n")
	b.WriteString(state.Session.Message)
	b.WriteString("\n\n")

	var tips strings.Builder
	tips.WriteString(r.styles.Heading.Render("Suggestions:"))
	for _, tip := range session.Tips {
		tips.WriteString("\n• ")
		tips.WriteString(tip)
	}
	b.WriteString(r.styles.Tips.Render(tips.String()))
	b.WriteString("\n\n")
	b.WriteString(r.styles.Button.Render("Try Again (r)"))
	return b.String()
}

// contentWidth is the usable width inside the main container
func contentWidth(state ViewState) int {
	w := state.Width - 4
	if w <= 0 {
		w = 76
	}
	if w > 100 {
		w = 100
	}
	return w
}
