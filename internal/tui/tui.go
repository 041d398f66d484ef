// Package tui is a read-only inspector for the running daemon: the layout
// tree, the focus path, and daemon status, refreshed over IPC.
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/strandwm/strand/internal/ipc"
	"github.com/strandwm/strand/internal/layout"
)

const pollInterval = time.Second

// Run starts the TUI main loop.
func Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// model is the root bubbletea model for the TUI.
type model struct {
	client *ipc.Client

	state     *layout.State
	status    *ipc.StatusData
	connected bool
	lastError string

	width  int
	height int
}

func newModel() model {
	return model{client: ipc.NewClient()}
}

// refreshMsg carries the result of one IPC poll.
type refreshMsg struct {
	state  *layout.State
	status *ipc.StatusData
	err    error
}

type tickMsg time.Time

func (m model) refresh() tea.Msg {
	state, err := m.client.GetState()
	if err != nil {
		return refreshMsg{err: err}
	}
	status, err := m.client.GetStatus()
	if err != nil {
		return refreshMsg{err: err}
	}
	return refreshMsg{state: state, status: status}
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.refresh, tick())
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.refresh
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case refreshMsg:
		if msg.err != nil {
			m.connected = false
			m.lastError = msg.err.Error()
		} else {
			m.connected = true
			m.lastError = ""
			m.state = msg.state
			m.status = msg.status
		}

	case tickMsg:
		return m, tea.Batch(m.refresh, tick())
	}

	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.connected, m.status, m.width)
	helpBar := renderHelpBar(m.width)

	contentHeight := m.height - lipgloss.Height(statusBar) - lipgloss.Height(helpBar)
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch {
	case !m.connected:
		content = renderDisconnected(m.lastError, m.width, contentHeight)
	case m.state == nil:
		content = ""
	default:
		content = lipgloss.NewStyle().
			Width(m.width).
			Height(contentHeight).
			MaxHeight(contentHeight).
			Render(renderState(m.state))
	}

	return lipgloss.JoinVertical(lipgloss.Left, statusBar, content, helpBar)
}
