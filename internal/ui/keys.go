package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"eventscout/internal/session"
	"eventscout/internal/ui/input/types"
)

// keyMap holds the bindings shown in the help bar. Key dispatch itself lives
// in the input modes; these only describe it.
type keyMap struct {
	Submit     key.Binding
	NextField  key.Binding
	QuickPick  key.Binding
	Back       key.Binding
	Move       key.Binding
	Details    key.Binding
	OpenLink   key.Binding
	Sort       key.Binding
	Filter     key.Binding
	NewSearch  key.Binding
	Retry      key.Binding
	Accept     key.Binding
	Cancel     key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		NextField:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		QuickPick:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "popular city")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to results")),
		Move:       key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "move")),
		Details:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		OpenLink:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Filter:     key.NewBinding(key.WithKeys("/", "F"), key.WithHelp("/", "filter")),
		NewSearch:  key.NewBinding(key.WithKeys("e", "n"), key.WithHelp("e", "new search")),
		Retry:      key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "try again")),
		Accept:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// bindingsFor returns the bindings relevant to the current screen
func (k keyMap) bindingsFor(mode types.Mode, status session.Status, hasResults bool) []key.Binding {
	if status == session.Loading {
		return []key.Binding{k.ForceQuit}
	}
	switch mode {
	case types.ModeForm:
		bindings := []key.Binding{k.Submit, k.NextField, k.QuickPick}
		if status != session.Idle {
			bindings = append(bindings, k.Back)
		}
		return append(bindings, k.ForceQuit)
	case types.ModeFilter:
		return []key.Binding{k.Accept, k.Cancel}
	case types.ModeSort:
		return []key.Binding{k.Move, k.Accept, k.Cancel}
	}
	if status == session.Error {
		return []key.Binding{k.Retry, k.NewSearch, k.Help, k.Quit}
	}
	if !hasResults {
		return []key.Binding{k.NewSearch, k.Help, k.Quit}
	}
	return []key.Binding{k.Move, k.Details, k.OpenLink, k.Sort, k.Filter, k.NewSearch, k.Help, k.Quit}
}
