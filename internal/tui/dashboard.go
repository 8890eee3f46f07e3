package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/choreboard/internal/analysis"
	"github.com/manav03panchal/choreboard/internal/dayview"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/output"
	"github.com/manav03panchal/choreboard/internal/query"
	"github.com/manav03panchal/choreboard/internal/storage"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// loadedMsg carries the data for one selected date.
type loadedMsg struct {
	date   string
	day    *dayview.DayView
	report analysis.Report
	names  map[int64]string
	err    error
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	day    *dayview.DayView
	report analysis.Report
	names  map[int64]string

	store storage.Store
	ctx   context.Context
	now   func() time.Time

	// UI state
	date       time.Time
	loading    bool
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	refreshInterval time.Duration
	loadTimeout     time.Duration
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Store           storage.Store
	Context         context.Context
	Now             func() time.Time
	RefreshInterval time.Duration
	LoadTimeout     time.Duration
}

// NewDashboardModel creates a new dashboard model positioned on today.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}
	if config.LoadTimeout == 0 {
		config.LoadTimeout = 5 * time.Second
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	m := &DashboardModel{
		store:           config.Store,
		ctx:             config.Context,
		now:             config.Now,
		refreshInterval: config.RefreshInterval,
		loadTimeout:     config.LoadTimeout,
		names:           make(map[int64]string),
	}
	m.date = m.today()
	return m
}

// Date returns the selected date as YYYY-MM-DD.
func (m *DashboardModel) Date() string {
	return m.date.Format(model.DateLayout)
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(
		m.tickCmd(),
		m.loadCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Clear expired messages
		if !m.messageExp.IsZero() && m.now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()

	case loadedMsg:
		// A response for a date the user has already moved away from is stale.
		if msg.date != m.Date() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.day = msg.day
		m.report = msg.report
		m.names = msg.names
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		return m, m.selectDate(m.date.AddDate(0, 0, -1))

	case "right", "l":
		return m, m.selectDate(m.date.AddDate(0, 0, 1))

	case "t":
		return m, m.selectDate(m.today())

	case "r":
		m.setMessage("Refreshed", time.Second)
		m.loading = true
		return m, m.loadCmd()
	}

	return m, nil
}

func (m *DashboardModel) selectDate(date time.Time) tea.Cmd {
	m.date = date
	m.loading = true
	return m.loadCmd()
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	isToday := m.Date() == m.today().Format(model.DateLayout)
	sections = append(sections, NewDayComponent(m.day, m.names, m.width, isToday).View())

	title := m.date.Format("January 2006")
	sections = append(sections, NewSummaryComponent(title, m.report, m.width).View())

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Choreboard")
	date := m.date.Format("Mon Jan 2, 2006")
	if m.loading {
		date += "  loading..."
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", StyleSubtitle.Render(date)) + "\n"
}

func (m *DashboardModel) today() time.Time {
	now := m.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// loadCmd reads the selected month in one query and derives the day from it.
func (m *DashboardModel) loadCmd() tea.Cmd {
	date := m.date
	return func() tea.Msg {
		return m.load(date)
	}
}

func (m *DashboardModel) load(date time.Time) loadedMsg {
	key := date.Format(model.DateLayout)
	msg := loadedMsg{date: key}

	ctx, cancel := context.WithTimeout(m.ctx, m.loadTimeout)
	defer cancel()

	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1)
	month := query.Criteria{}.WithRange(first.Format(model.DateLayout), last.Format(model.DateLayout))

	tasks, err := m.store.ListTasks(ctx, month)
	if err != nil {
		msg.err = err
		return msg
	}
	users, err := m.store.ListUsers(ctx)
	if err != nil {
		msg.err = err
		return msg
	}

	day, err := dayview.Bucketize(key, query.Filter(tasks, query.Criteria{}.ForDate(key)))
	if err != nil {
		msg.err = err
		return msg
	}

	msg.day = day
	msg.report = analysis.Analyze(tasks)
	msg.names = output.UserNames(users)
	return msg
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = m.now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the dashboard TUI and blocks until it exits.
func Run(config DashboardConfig) error {
	m := NewDashboardModel(config)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if config.Context != nil {
		opts = append(opts, tea.WithContext(config.Context))
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
