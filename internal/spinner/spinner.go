// Package spinner provides a terminal spinner with a live status line,
// updating in place without polluting the terminal buffer. It is used while
// waiting for the server to boot.
package spinner

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Spinner displays a spinner next to the most recent status message.
type Spinner struct {
	program  *tea.Program
	statusCh chan string
	output   io.Writer
	stopOnce sync.Once
}

// New creates a new Spinner that writes to the given output (typically
// os.Stderr). If output is nil, os.Stderr is used.
func New(output io.Writer) *Spinner {
	if output == nil {
		output = os.Stderr
	}

	return &Spinner{
		statusCh: make(chan string, 16),
		output:   output,
	}
}

// SetStatus replaces the displayed status line. Never blocks; when the
// display lags, intermediate updates are dropped.
func (s *Spinner) SetStatus(status string) {
	select {
	case s.statusCh <- status:
	default:
	}
}

// Start begins the spinner display. This blocks until Stop() is called.
// Call this in a goroutine if you need to do work while the spinner runs.
func (s *Spinner) Start() error {
	// Get terminal width for truncation
	width := 80 // default
	if fd := int(os.Stderr.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}

	s.program = tea.NewProgram(newModel(s.statusCh, width),
		tea.WithOutput(s.output),
		tea.WithoutSignalHandler(), // Let parent handle signals
	)

	_, err := s.program.Run()
	return err
}

// Stop stops the spinner and clears its line from the terminal.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.statusCh)
		if s.program != nil {
			s.program.Quit()
		}
	})
}

// model is the bubbletea model for the spinner.
type model struct {
	spinner    spinner.Model
	statusLine string
	width      int
	statusCh   <-chan string
	quitting   bool
}

// statusMsg is sent when a new status update arrives.
type statusMsg string

// newModel creates a new spinner model.
func newModel(statusCh <-chan string, width int) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		spinner:  s,
		width:    width,
		statusCh: statusCh,
	}
}

// Init implements tea.Model.
//
//nolint:gocritic // hugeParam: tea.Model interface requires value receiver
func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForStatus(m.statusCh),
	)
}

// Update implements tea.Model.
//
//nolint:gocritic // hugeParam: tea.Model interface requires value receiver
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Allow ctrl+c to quit
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case statusMsg:
		m.statusLine = string(msg)
		return m, waitForStatus(m.statusCh)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.QuitMsg:
		m.quitting = true
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
//
//nolint:gocritic // hugeParam: tea.Model interface requires value receiver
func (m model) View() string {
	if m.quitting {
		return "" // Clear the line on exit
	}

	// Spinner is typically 2 chars + 1 space
	spinnerWidth := 3
	maxLineWidth := m.width - spinnerWidth
	if maxLineWidth < 10 {
		maxLineWidth = 10
	}

	line := truncate(m.statusLine, maxLineWidth)
	return m.spinner.View() + " " + line
}

// waitForStatus returns a command that waits for the next status update.
func waitForStatus(statusCh <-chan string) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-statusCh
		if !ok {
			return tea.Quit()
		}
		return statusMsg(status)
	}
}

// truncate shortens a string to fit within maxWidth.
// If truncated, it adds "..." at the end.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return ""
	}
	if len(s) <= maxWidth {
		return s
	}
	return s[:maxWidth-3] + "..."
}
