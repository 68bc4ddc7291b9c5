package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(keys, desc string) string {
		return fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-12s", keys)), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("eventscout Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search Form"))
	help.WriteString("\n")
	help.WriteString(line("Tab/S-Tab", "Move between fields"))
	help.WriteString(line("←/→", "Change number of events, toggle descriptions"))
	help.WriteString(line("Space", "Toggle descriptions, pick highlighted city"))
	help.WriteString(line("1-6", "Use a popular city (outside the city field)"))
	help.WriteString(line("Enter", "Search Events"))
	help.WriteString(line("Esc", "Back to the last results"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Results"))
	help.WriteString("\n")
	help.WriteString(line("↑/↓, j/k", "Navigate up/down"))
	help.WriteString(line("PgUp/PgDn", "Page up/down"))
	help.WriteString(line("gg/G", "Go to top/bottom"))
	help.WriteString(line("Enter", "Show event details"))
	help.WriteString(line("o", "Open event link in the browser"))
	help.WriteString(line("e, n", "New search"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Sort & Filter"))
	help.WriteString("\n")
	help.WriteString(line("s", "Sort: Default, Date (Earliest First), Name (A-Z)"))
	help.WriteString(line("/, F", "Filter events"))
	help.WriteString(line("Esc", "Clear filter"))
	help.WriteString("\n")

	filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(filterStyle.Render("  Filter examples: jazz, date:saturday, at:park"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Errors"))
	help.WriteString("\n")
	help.WriteString(line("r, Enter", "Try again"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line("?", "Show this help"))
	help.WriteString(line("q", "Quit"))
	help.WriteString(strings.TrimSuffix(line("Ctrl+C", "Quit from anywhere"), "\n"))

	return help.String()
}

// Pager shows long-form content full screen and returns when the user leaves it
type Pager interface {
	Page(content string) error
}

// OvPager pages content with the embedded ov viewer
type OvPager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewOvPager creates a pager; SetProgram must be called before use
func NewOvPager() *OvPager {
	return &OvPager{}
}

// SetProgram sets the program reference for terminal management
func (p *OvPager) SetProgram(program *tea.Program) {
	p.program = program
}

// Page releases the terminal to ov and restores it afterwards
func (p *OvPager) Page(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	configureVimKeyBindings(&config)
	root.SetConfig(config)

	return root.Run()
}

// configureVimKeyBindings adds j/k movement on top of ov's defaults
func configureVimKeyBindings(config *oviewer.Config) {
	if config.Keybind == nil {
		config.Keybind = make(map[string][]string)
	}
	config.Keybind["exit"] = []string{"Escape", "q"}
	config.Keybind["down"] = []string{"Enter", "Down", "ctrl+n", "j"}
	config.Keybind["up"] = []string{"Up", "ctrl+p", "k"}
}
