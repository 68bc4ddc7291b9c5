package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"eventscout/internal/domain"
	"eventscout/internal/eventbus"
	"eventscout/internal/logic"
	"eventscout/internal/session"
	"eventscout/internal/ui/input"
	inputtypes "eventscout/internal/ui/input/types"
	uilogic "eventscout/internal/ui/logic"
	"eventscout/internal/ui/views"
)

// reservedLines is the screen height used by everything except the event list
const reservedLines = 22

// Options configure a Model
type Options struct {
	MaxEvents        int
	ShowDescriptions bool
	Sort             domain.SortKey
	Warning          string // banner shown above every screen

	Bus     eventbus.EventBus
	Logger  *zap.Logger
	Pager   Pager
	Browser Browser
}

// Model represents the UI state. Search state lives in the session
// controller; the model keeps a copy of the latest session for rendering.
type Model struct {
	ctx        context.Context
	controller *session.Controller
	bus        eventbus.EventBus
	logger     *zap.Logger

	session session.Session

	// Form values not held by the city input
	maxEvents        int
	showDescriptions bool

	// Result presentation
	sortKey      domain.SortKey
	sortIndex    int
	filterQuery  string
	filterBefore string // restored when filter editing is cancelled
	display      []domain.Event

	width         int
	height        int
	warning       string
	statusMessage string

	spinner      spinner.Model
	help         help.Model
	keys         keyMap
	navigator    *uilogic.Navigator
	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        Pager
	browser      Browser
}

// NewModel creates a new UI model. ctx bounds every search the model starts.
func NewModel(ctx context.Context, controller *session.Controller, opts Options) *Model {
	if opts.Bus == nil {
		opts.Bus = eventbus.NullBus{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Pager == nil {
		opts.Pager = NewOvPager()
	}
	if opts.Browser == nil {
		opts.Browser = SystemBrowser{}
	}
	if !domain.IsAllowedMaxEvents(opts.MaxEvents) {
		opts.MaxEvents = domain.DefaultMaxEvents
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:              ctx,
		controller:       controller,
		bus:              opts.Bus,
		logger:           opts.Logger,
		session:          controller.Session(),
		maxEvents:        opts.MaxEvents,
		showDescriptions: opts.ShowDescriptions,
		sortKey:          opts.Sort,
		warning:          opts.Warning,
		spinner:          sp,
		help:             help.New(),
		keys:             newKeyMap(),
		navigator:        uilogic.NewNavigator(),
		inputHandler:     input.New(),
		renderer:         views.NewRenderer(),
		helpRenderer:     NewHelpRenderer(),
		pager:            opts.Pager,
		browser:          opts.Browser,
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	if ov, ok := m.pager.(*OvPager); ok {
		ov.SetProgram(p)
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.navigator.SetViewportHeight(m.height - reservedLines)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case searchResultMsg:
		return m, m.dispatch(msg.result)

	case spinner.TickMsg:
		// The spinner stops once nothing is loading
		if m.session.Status != session.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.Error(msg.err))
			m.statusMessage = fmt.Sprintf("Pager error: %v", msg.err)
		}
		return m, nil

	case linkOpenedMsg:
		if msg.err != nil {
			m.logger.Warn("open link failed", zap.String("url", msg.url), zap.Error(msg.err))
			m.statusMessage = fmt.Sprintf("Could not open link: %v", msg.err)
		} else {
			m.statusMessage = "Opened " + msg.url
		}
		return m, nil

	default:
		// Cursor blinks and other input messages
		return m, m.inputHandler.Update(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.statusMessage = ""

	// The form is disabled while a search runs
	if m.session.Status == session.Loading {
		switch msg.String() {
		case "ctrl+c", "q":
			return m.quit()
		}
		return nil
	}

	ctx := modelContext{m: m}
	before := m.inputHandler.CurrentMode()
	actions, cmd := m.inputHandler.HandleKey(msg, ctx)
	if before != inputtypes.ModeFilter && m.inputHandler.CurrentMode() == inputtypes.ModeFilter {
		m.filterBefore = m.filterQuery
	}

	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}
	return tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Move(a.Direction)

	case inputtypes.SubmitSearchAction:
		return m.submit()

	case inputtypes.CycleMaxEventsAction:
		m.maxEvents = cycleMaxEvents(m.maxEvents, a.Delta)

	case inputtypes.ToggleDescriptionsAction:
		m.showDescriptions = !m.showDescriptions

	case inputtypes.PickCityAction:
		if a.Index >= 0 && a.Index < len(domain.PopularCities) {
			m.inputHandler.SetCity(domain.PopularCities[a.Index])
		}

	case inputtypes.RetryAction:
		return m.dispatch(session.Retry{})

	case inputtypes.UpdateTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.setFilter(a.Text)
		}

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.setFilter(strings.TrimSpace(a.Text))
		}

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.setFilter(m.filterBefore)
		}

	case inputtypes.ClearFilterAction:
		m.setFilter("")

	case inputtypes.SortByAction:
		m.setSort(a.Key)

	case inputtypes.UpdateSortIndexAction:
		m.sortIndex = a.Index

	case inputtypes.OpenDetailAction:
		if event, ok := m.selectedEvent(); ok {
			return m.page(views.RenderEventDetail(event, m.session.ShowDescriptions))
		}

	case inputtypes.OpenLinkAction:
		return m.openLink()

	case inputtypes.ToggleHelpAction:
		return m.page(m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		return m.quit()
	}
	return nil
}

// submit turns the form into a search. Blank cities never reach the controller.
func (m *Model) submit() tea.Cmd {
	city := m.inputHandler.City().Value()
	if strings.TrimSpace(city) == "" {
		m.statusMessage = "Enter a city to search"
		return nil
	}
	return m.dispatch(session.Submit{Params: domain.SearchParams{
		City:             city,
		MaxEvents:        m.maxEvents,
		ShowDescriptions: m.showDescriptions,
	}})
}

// dispatch feeds msg through the controller and reacts to the new session
func (m *Model) dispatch(msg session.Msg) tea.Cmd {
	prev := m.session
	next, req := m.controller.Dispatch(msg)
	m.session = next

	if next.Seq == prev.Seq && next.Status == prev.Status {
		// Stale result or rejected submit
		return nil
	}

	var cmds []tea.Cmd
	switch next.Status {
	case session.Loading:
		// A new result set starts unfiltered; the sort key carries over
		m.filterQuery = ""
		m.display = nil
		m.navigator.SetTotal(0)
		cmds = append(cmds, m.spinner.Tick)
	case session.Success:
		m.navigator.Reset()
		m.refreshDisplay()
		_, cmd := m.inputHandler.SetMode(inputtypes.ModeNormal, modelContext{m: m})
		cmds = append(cmds, cmd)
	case session.Error:
		m.display = nil
		m.navigator.SetTotal(0)
		_, cmd := m.inputHandler.SetMode(inputtypes.ModeNormal, modelContext{m: m})
		cmds = append(cmds, cmd)
	case session.Idle:
		_, cmd := m.inputHandler.SetMode(inputtypes.ModeForm, modelContext{m: m})
		cmds = append(cmds, cmd)
	}

	if req != nil {
		cmds = append(cmds, m.search(*req))
	}
	return tea.Batch(cmds...)
}

// search runs req off the update loop and reports back with a searchResultMsg
func (m *Model) search(req session.Request) tea.Cmd {
	ctx := m.ctx
	controller := m.controller
	return func() tea.Msg {
		return searchResultMsg{result: controller.Execute(ctx, req)}
	}
}

func (m *Model) setFilter(query string) {
	if query == m.filterQuery {
		return
	}
	m.filterQuery = query
	m.navigator.Reset()
	m.refreshDisplay()
}

func (m *Model) setSort(key domain.SortKey) {
	if key == m.sortKey {
		return
	}
	old := m.sortKey
	m.sortKey = key
	m.navigator.Reset()
	m.refreshDisplay()
	m.bus.Publish(eventbus.SortChangedEvent{OldKey: old, NewKey: key})
}

// refreshDisplay recomputes the listed events from the session
func (m *Model) refreshDisplay() {
	if m.session.Status != session.Success {
		m.display = nil
	} else {
		m.display = logic.DisplayEvents(m.session.Events, m.sortKey, m.filterQuery)
	}
	m.navigator.SetTotal(len(m.display))
}

func (m *Model) selectedEvent() (domain.Event, bool) {
	idx := m.navigator.GetSelectedIndex()
	if idx < 0 || idx >= len(m.display) {
		return domain.Event{}, false
	}
	return m.display[idx], true
}

func (m *Model) page(content string) tea.Cmd {
	pager := m.pager
	return func() tea.Msg {
		return pagerMsg{err: pager.Page(content)}
	}
}

func (m *Model) openLink() tea.Cmd {
	event, ok := m.selectedEvent()
	if !ok {
		return nil
	}
	if event.Link == "" {
		m.statusMessage = "This event has no link"
		return nil
	}
	browser := m.browser
	url := event.Link
	return func() tea.Msg {
		return linkOpenedMsg{url: url, err: browser.Open(url)}
	}
}

func (m *Model) quit() tea.Cmd {
	m.controller.Close()
	return tea.Quit
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	mode := m.inputHandler.CurrentMode()
	start, end := m.navigator.VisibleRange()
	city := m.inputHandler.City()

	state := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		Mode:             mode,
		Session:          m.session,
		Warning:          m.warning,
		Status:           m.statusMessage,
		HelpBar:          m.help.ShortHelpView(m.keys.bindingsFor(mode, m.session.Status, len(m.display) > 0)),
		CityInput:        city.View(),
		CityValue:        city.Value(),
		MaxEvents:        m.maxEvents,
		ShowDescriptions: m.showDescriptions,
		FormFocus:        m.inputHandler.FormFocus(),
		PopularIndex:     m.inputHandler.PopularIndex(),
		Spinner:          m.spinner.View(),
		Events:           m.display,
		SelectedIndex:    m.navigator.GetSelectedIndex(),
		VisibleStart:     start,
		VisibleEnd:       end,
		MoreAbove:        m.navigator.HasMoreAbove(),
		MoreBelow:        m.navigator.HasMoreBelow(),
		SortKey:          m.sortKey,
		SortOptionIndex:  m.sortIndex,
		FilterInput:      m.inputHandler.Filter().View(),
		FilterQuery:      m.filterQuery,
	}
	return m.renderer.Render(state)
}

// Session returns the session currently shown
func (m *Model) Session() session.Session {
	return m.session
}

// cycleMaxEvents steps through the allowed counts, wrapping in both directions
func cycleMaxEvents(current, delta int) int {
	n := len(domain.AllowedMaxEvents)
	for i, allowed := range domain.AllowedMaxEvents {
		if allowed == current {
			return domain.AllowedMaxEvents[((i+delta)%n+n)%n]
		}
	}
	return domain.AllowedMaxEvents[0]
}
