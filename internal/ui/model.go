package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"interestsearch/internal/config"
	"interestsearch/internal/domain"
	"interestsearch/internal/logging"
	"interestsearch/internal/provider"
	"interestsearch/internal/search"
	"interestsearch/internal/ui/logic"
	"interestsearch/internal/ui/views"
)

const defaultListHeight = 20

// Options configures the UI model
type Options struct {
	Provider   provider.Provider
	Config     *config.Config
	Controller *search.Controller // optional, built from Config when nil
	Logger     logrus.FieldLogger
}

// Model represents the UI state
type Model struct {
	ctl      *search.Controller
	provider provider.Provider
	config   *config.Config
	log      logrus.FieldLogger

	width       int
	height      int
	input       textinput.Model
	spinner     spinner.Model
	help        help.Model
	keys        keyMap
	listFocused bool

	navigator    *logic.Navigator
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        *Pager

	// items is the derived view, refreshed whenever the session changes
	items       []domain.Interest
	lastQuery   string
	debounceTag int
	started     bool
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	ctl := opts.Controller
	if ctl == nil {
		ctl = search.New(search.Options{PageSize: cfg.PageSize, Logger: log})
	}

	input := textinput.New()
	input.Prompt = "search: "
	input.Placeholder = "type to search interests"
	input.CharLimit = 100
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	input.Focus()

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("214"))),
	)

	m := &Model{
		ctl:          ctl,
		provider:     opts.Provider,
		config:       cfg,
		log:          log.WithField("component", "ui"),
		input:        input,
		spinner:      spin,
		help:         help.New(),
		keys:         newKeyMap(),
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(cfg.UI.ShowMatch),
		helpRenderer: NewHelpRenderer(),
		pager:        NewPager(),
	}
	m.navigator.SetViewportHeight(m.listHeight())
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Init starts the initial empty-query session
func (m *Model) Init() tea.Cmd {
	m.started = true
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.fetch(m.ctl.Start()))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(m.input.Prompt) - 4
		m.navigator.SetViewportHeight(m.listHeight())
		return m, m.loadMoreIfNeeded()

	case pageLoadedMsg:
		m.ctl.Resolve(msg.result)
		m.refreshItems()
		// after a failure wait for the user to scroll before retrying
		if m.ctl.LastError() != nil {
			return m, nil
		}
		return m, m.loadMoreIfNeeded()

	case debounceMsg:
		if msg.tag != m.debounceTag {
			return m, nil
		}
		return m, m.startQuery(msg.query)

	case pagerClosedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("pager failed")
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	// cursor blink and friends
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	typing := !m.listFocused
	if typing && (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) {
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		return m.moveVisual(true, 1)
	case key.Matches(msg, m.keys.Down):
		return m.moveVisual(false, 1)
	case key.Matches(msg, m.keys.PageUp):
		return m.moveVisual(true, m.navigator.GetViewportHeight())
	case key.Matches(msg, m.keys.PageDown):
		return m.moveVisual(false, m.navigator.GetViewportHeight())
	case key.Matches(msg, m.keys.Home):
		m.navigator.Home()
		return m.loadMoreIfNeeded()
	case key.Matches(msg, m.keys.End):
		m.navigator.End()
		return m.loadMoreIfNeeded()
	case key.Matches(msg, m.keys.Details):
		return m.showDetails()
	case key.Matches(msg, m.keys.Help):
		return m.pager.showCmd(m.helpRenderer.RenderHelpContent(m.keys))
	case key.Matches(msg, m.keys.Focus):
		return m.setListFocus(!m.listFocused)
	case key.Matches(msg, m.keys.Search):
		return m.setListFocus(false)
	}

	if typing {
		return m.updateInput(msg)
	}
	return nil
}

// moveVisual moves the cursor rows lines up or down on screen. In the
// inverted layout the first record is at the bottom, so up means further.
func (m *Model) moveVisual(up bool, rows int) tea.Cmd {
	delta := rows
	if up != m.config.UI.Inverted {
		delta = -rows
	}
	m.navigator.Move(delta)
	return m.loadMoreIfNeeded()
}

func (m *Model) setListFocus(focused bool) tea.Cmd {
	m.listFocused = focused
	if focused {
		m.input.Blur()
		return nil
	}
	return m.input.Focus()
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.lastQuery {
		m.lastQuery = value
		return tea.Batch(cmd, m.queryChanged(value))
	}
	return cmd
}

func (m *Model) queryChanged(query string) tea.Cmd {
	delay := m.config.UI.Debounce.Duration
	if delay <= 0 {
		return m.startQuery(query)
	}
	m.debounceTag++
	tag := m.debounceTag
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return debounceMsg{tag: tag, query: query}
	})
}

func (m *Model) startQuery(query string) tea.Cmd {
	t := m.ctl.QueryChanged(query)
	m.navigator.Reset()
	m.refreshItems()
	return m.fetch(t)
}

func (m *Model) loadMoreIfNeeded() tea.Cmd {
	if !m.started || !m.navigator.NearEnd(m.config.UI.ScrollThreshold) {
		return nil
	}
	return m.fetch(m.ctl.ScrollExhausted())
}

func (m *Model) showDetails() tea.Cmd {
	idx := m.navigator.GetSelectedIndex()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}
	return m.pager.showCmd(m.renderer.Details(m.items[idx]))
}

// fetch turns a ticket into a command that runs it against the provider
func (m *Model) fetch(t *search.Ticket) tea.Cmd {
	if t == nil {
		return nil
	}
	ticket := *t
	p := m.provider
	return func() tea.Msg {
		return pageLoadedMsg{result: search.Execute(context.Background(), p, ticket)}
	}
}

func (m *Model) refreshItems() {
	m.items = m.ctl.View()
	m.navigator.SetTotalItems(len(m.items))
}

func (m *Model) listHeight() int {
	if m.height <= 0 {
		return defaultListHeight
	}
	h := m.height - views.ChromeLines
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the UI
func (m *Model) View() string {
	return m.renderer.Render(views.ViewState{
		Width:      m.width,
		Height:     m.height,
		Items:      m.items,
		Cursor:     m.navigator.GetSelectedIndex(),
		Offset:     m.navigator.GetViewportOffset(),
		ListHeight: m.listHeight(),
		Inverted:   m.config.UI.Inverted,
		Query:      m.ctl.Query(),
		Input:      m.input.View(),
		Spinner:    m.spinner.View(),
		Progress:   m.ctl.Progress(),
		Failed:     m.ctl.LastError() != nil,
		Exhausted:  m.ctl.Exhausted(),
		Help:       m.help.View(m.keys),
	})
}
