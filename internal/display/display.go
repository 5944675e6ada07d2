// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type renders one countdown as a card: the MM:SS readout, a
// status line and a row of buttons. It never mutates timer state itself;
// buttons call into a [domain.Controller], and the controller reports
// changes back through [UI.Notify].
package display

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(1, 4)

	timeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Foreground(lipgloss.Color("#d4d4d8"))

	timeWarningStyle = timeStyle.
				Foreground(lipgloss.Color("#fde68a"))

	timeDangerStyle = timeStyle.
			Foreground(lipgloss.Color("#fca5a5"))

	statusRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#bbf7d0"))

	statusPausedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#71717a")).
				Italic(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8")).
			Background(lipgloss.Color("#27272a")).
			Padding(0, 1).
			MarginRight(1)

	buttonFocusStyle = buttonStyle.
				Foreground(lipgloss.Color("#18181b")).
				Background(lipgloss.Color("#bae6fd"))

	buttonDisabledStyle = buttonStyle.
				Foreground(lipgloss.Color("#52525b"))
)

// timeStyleFor maps the countdown severity to a readout style.
func timeStyleFor(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityWarning:
		return timeWarningStyle
	case domain.SeverityDanger:
		return timeDangerStyle
	default:
		return timeStyle
	}
}

// buttonIcons prefixes button labels.
var buttonIcons = map[domain.Action]string{
	domain.ActionStart:   "▶ ",
	domain.ActionPause:   "⏸ ",
	domain.ActionStop:    "■ ",
	domain.ActionReset:   "↺ ",
	domain.ActionAddOne:  "",
	domain.ActionAddFive: "",
}

// ── UI ───────────────────────────────────────────────────────────

// UIOption configures the UI.
type UIOption func(*UI)

// WithAltScreen runs the program in the terminal's alternate screen.
func WithAltScreen(on bool) UIOption {
	return func(u *UI) {
		u.altScreen = on
	}
}

// UI manages the terminal through Bubble Tea.
//
// Create it with [NewUI], pass [UI.Notify] to the timer as its change
// callback, then call [UI.Run] (blocking).
type UI struct {
	log       *logger.Logger
	changes   chan struct{}
	altScreen bool
}

// NewUI creates the display. Call Run to start.
func NewUI(log *logger.Logger, opts ...UIOption) *UI {
	u := &UI{
		log:     log,
		changes: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Notify signals that the timer state changed. Never blocks; bursts of
// changes collapse into one redraw, which reads the latest state.
func (u *UI) Notify(domain.TimerState) {
	select {
	case u.changes <- struct{}{}:
	default:
	}
}

// Run starts the Bubble Tea event loop against ctrl. Blocks until the
// user quits or ctx is cancelled.
func (u *UI) Run(ctx context.Context, ctrl domain.Controller) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if u.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(newModel(ctrl, u.changes), opts...)
	u.log.Debug("display: starting program (alt-screen=%v)", u.altScreen)
	_, err := p.Run()
	u.log.Debug("display: program exited: %v", err)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ctrl    domain.Controller
	changes <-chan struct{}
	state   domain.TimerState
	keys    keyMap
	help    help.Model
	focus   int
	width   int
	height  int
}

// Messages.
type changeMsg struct{}

func newModel(ctrl domain.Controller, changes <-chan struct{}) model {
	m := model{
		ctrl:    ctrl,
		changes: changes,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.changes),
		tea.SetWindowTitle(m.title()),
	)
}

// waitForChange blocks until the controller reports a change.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		<-ch
		return changeMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case changeMsg:
		m.refresh()
		return m, tea.Batch(waitForChange(m.changes), tea.SetWindowTitle(m.title()))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	buttons := m.buttons()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.focus = (m.focus - 1 + len(buttons)) % len(buttons)
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.focus = (m.focus + 1) % len(buttons)
		return m, nil
	case key.Matches(msg, m.keys.Press):
		return m.press(buttons[m.focus])
	case key.Matches(msg, m.keys.Toggle):
		if m.state.IsRunning {
			return m.press(domain.ActionPause)
		}
		return m.press(domain.ActionStart)
	case key.Matches(msg, m.keys.Start):
		return m.press(domain.ActionStart)
	case key.Matches(msg, m.keys.Pause):
		return m.press(domain.ActionPause)
	case key.Matches(msg, m.keys.Stop):
		return m.press(domain.ActionStop)
	case key.Matches(msg, m.keys.Reset):
		return m.press(domain.ActionReset)
	case key.Matches(msg, m.keys.AddOne):
		return m.press(domain.ActionAddOne)
	case key.Matches(msg, m.keys.AddFive):
		return m.press(domain.ActionAddFive)
	}
	return m, nil
}

// press activates a button. Disabled buttons do nothing.
func (m model) press(a domain.Action) (tea.Model, tea.Cmd) {
	if !a.Enabled(m.state) {
		return m, nil
	}
	domain.Do(m.ctrl, a)
	m.refresh()
	return m, tea.SetWindowTitle(m.title())
}

// refresh pulls the latest state and syncs the key bindings with it.
func (m *model) refresh() {
	m.state = m.ctrl.State()
	m.keys.Start.SetEnabled(m.state.CanStart())
	m.keys.Pause.SetEnabled(m.state.IsRunning)
}

// buttons returns the visible controls in display order. Start and Pause
// share the first slot.
func (m model) buttons() []domain.Action {
	first := domain.ActionStart
	if m.state.IsRunning {
		first = domain.ActionPause
	}
	return []domain.Action{first, domain.ActionStop, domain.ActionReset, domain.ActionAddOne, domain.ActionAddFive}
}

func (m model) title() string {
	return "ottotimer · " + m.state.Display() + " " + m.state.Status()
}

func (m model) View() string {
	buttons := m.buttons()

	status := statusPausedStyle.Render(m.state.Status())
	if m.state.IsRunning {
		status = statusRunningStyle.Render(m.state.Status())
	}

	card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		timeStyleFor(m.state.Severity()).Render(m.state.Display()),
		status,
		"",
		m.renderRow(buttons[:3], 0),
		m.renderRow(buttons[3:], 3),
	))

	var b strings.Builder
	b.WriteString(card)
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))

	if m.width <= 0 || m.height <= 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// renderRow draws a row of buttons; offset is the index of the first one.
func (m model) renderRow(actions []domain.Action, offset int) string {
	parts := make([]string, 0, len(actions))
	for i, a := range actions {
		style := buttonStyle
		switch {
		case !a.Enabled(m.state):
			style = buttonDisabledStyle
		case offset+i == m.focus:
			style = buttonFocusStyle
		}
		parts = append(parts, style.Render(buttonIcons[a]+a.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
