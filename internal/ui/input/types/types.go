package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"eventscout/internal/domain"
	"eventscout/internal/session"
)

// Mode represents an input mode
type Mode int

const (
	ModeForm Mode = iota
	ModeNormal
	ModeFilter
	ModeSort
)

func (m Mode) String() string {
	switch m {
	case ModeForm:
		return "form"
	case ModeNormal:
		return "normal"
	case ModeFilter:
		return "filter"
	case ModeSort:
		return "sort"
	default:
		return "unknown"
	}
}

// FormField is a focusable control on the search form
type FormField int

const (
	FieldCity FormField = iota
	FieldMaxEvents
	FieldDescriptions
	FieldPopular
)

// FormFields lists the form controls in tab order
var FormFields = []FormField{FieldCity, FieldMaxEvents, FieldDescriptions, FieldPopular}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	Status() session.Status
	CurrentIndex() int
	TotalItems() int
	HasResults() bool
	FormFocus() FormField
	CurrentSort() domain.SortKey
	FilterQuery() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	Enter(ctx Context) []Action
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
