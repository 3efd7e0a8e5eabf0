package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/refresh"
)

// Default dimensions for the dashboard.
const (
	dashboardDefaultWidth  = 100
	dashboardDefaultHeight = 30
)

const statusTimeLayout = "2006-01-02 15:04:05"

// refreshRequestMsg asks the model to start a refresh cycle.
type refreshRequestMsg struct{}

// pollTickMsg fires on every poll interval.
type pollTickMsg time.Time

// autoRefreshMsg fires on every auto-refresh interval.
type autoRefreshMsg time.Time

// DashboardOptions configures a DashboardModel.
type DashboardOptions struct {
	Scenario  carbon.BudgetScenario
	StartYear int
	// AutoRefresh triggers a refresh on this period; zero disables it.
	AutoRefresh  time.Duration
	PollInterval time.Duration
	Logger       zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// DashboardModel is the Bubble Tea model for the CO2 dashboard. It owns the
// refresh coordinator: Start and Poll are only called from Update.
type DashboardModel struct {
	coord  *refresh.Coordinator
	logger zerolog.Logger
	now    func() time.Time

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	// Selectors
	scenario  carbon.BudgetScenario
	startYear int

	autoRefresh  time.Duration
	pollInterval time.Duration

	// Display state
	metrics     *carbon.Metrics
	pending     *refresh.Request
	status      string
	lastUpdated time.Time
	err         error
	showErr     bool

	width    int
	height   int
	quitting bool
}

// NewDashboardModel creates a dashboard driving coord.
func NewDashboardModel(coord *refresh.Coordinator, opts DashboardOptions) *DashboardModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = refresh.DefaultPollInterval
	}
	if !opts.Scenario.Valid() {
		opts.Scenario = carbon.DefaultScenario
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = InfoStyle

	return &DashboardModel{
		coord:        coord,
		logger:       opts.Logger,
		now:          opts.Now,
		keys:         defaultKeyMap(),
		help:         help.New(),
		spinner:      sp,
		scenario:     opts.Scenario,
		startYear:    carbon.ClampStartYear(opts.StartYear, opts.Now().Year()),
		autoRefresh:  opts.AutoRefresh,
		pollInterval: opts.PollInterval,
		status:       "Ready",
		width:        dashboardDefaultWidth,
		height:       dashboardDefaultHeight,
	}
}

// Init requests the initial load and starts the tickers.
func (m *DashboardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{requestRefresh, m.pollTick(), m.spinner.Tick}
	if m.autoRefresh > 0 {
		cmds = append(cmds, m.autoRefreshTick())
	}
	return tea.Batch(cmds...)
}

func requestRefresh() tea.Msg {
	return refreshRequestMsg{}
}

func (m *DashboardModel) pollTick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

func (m *DashboardModel) autoRefreshTick() tea.Cmd {
	return tea.Tick(m.autoRefresh, func(t time.Time) tea.Msg {
		return autoRefreshMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshRequestMsg:
		m.triggerRefresh()
		return m, nil

	case pollTickMsg:
		m.poll()
		return m, m.pollTick()

	case autoRefreshMsg:
		m.triggerRefresh()
		return m, m.autoRefreshTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *DashboardModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.triggerRefresh()

	case key.Matches(msg, m.keys.Budget):
		m.scenario = m.scenario.Next()

	case key.Matches(msg, m.keys.YearDown):
		m.startYear = carbon.ClampStartYear(m.startYear-1, m.now().Year())

	case key.Matches(msg, m.keys.YearUp):
		m.startYear = carbon.ClampStartYear(m.startYear+1, m.now().Year())

	case key.Matches(msg, m.keys.Dismiss):
		m.showErr = false

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// triggerRefresh snapshots the selectors into a request. A trigger while a
// refresh is in flight is ignored.
func (m *DashboardModel) triggerRefresh() {
	req := refresh.NewRequest(m.startYear, m.scenario, m.now())
	if !m.coord.Start(req) {
		return
	}
	m.pending = &req
	m.status = "Refreshing…"
}

func (m *DashboardModel) poll() {
	res, ok := m.coord.Poll()
	if !ok {
		return
	}
	m.pending = nil

	if !res.OK() {
		m.err = res.Err
		m.showErr = true
		m.status = "Error"
		m.logger.Error().Err(res.Err).Str("request_id", res.Request.ID).Msg("refresh failed")
		return
	}

	metrics := res.Metrics()
	m.metrics = &metrics
	m.err = nil
	m.showErr = false
	m.lastUpdated = m.now()
	m.status = "Updated " + m.lastUpdated.Format(statusTimeLayout)
	m.logger.Info().
		Str("request_id", res.Request.ID).
		Float64("ppm", metrics.LatestPPM).
		Dur("duration", res.Duration).
		Msg("refresh complete")
}

// Refreshing reports whether a refresh is in flight.
func (m *DashboardModel) Refreshing() bool {
	return m.coord.InFlight()
}

// Status returns the status line text.
func (m *DashboardModel) Status() string {
	return m.status
}

// Metrics returns the metrics from the last successful refresh, or nil.
func (m *DashboardModel) Metrics() *carbon.Metrics {
	return m.metrics
}

// Err returns the error from the last failed refresh, cleared on success.
func (m *DashboardModel) Err() error {
	return m.err
}

// Scenario returns the selected budget scenario.
func (m *DashboardModel) Scenario() carbon.BudgetScenario {
	return m.scenario
}

// StartYear returns the selected budget start year.
func (m *DashboardModel) StartYear() int {
	return m.startYear
}
