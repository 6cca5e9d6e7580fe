// Package progress shows a terminal progress bar while a simulation runs.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	padding  = 2
	maxWidth = 60
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))

// UpdateMsg reports how many rounds have been played
type UpdateMsg struct {
	Done  int
	Total int
}

// DoneMsg ends the program once the simulation has returned
type DoneMsg struct{}

// Model is the bubbletea model for the progress bar
type Model struct {
	bar         progress.Model
	done        int
	total       int
	finished    bool
	interrupted bool
	onInterrupt func()
}

// NewModel creates a progress model for total rounds. onInterrupt is called
// when the user presses ctrl+c and may be nil.
func NewModel(total int, onInterrupt func()) Model {
	return Model{
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxWidth)),
		total:       total,
		onInterrupt: onInterrupt,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UpdateMsg:
		m.done = msg.Done
		if msg.Total > 0 {
			m.total = msg.Total
		}
		return m, nil

	case DoneMsg:
		m.finished = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			if m.onInterrupt != nil {
				m.onInterrupt()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-padding*2-4, maxWidth)
		return m, nil
	}
	return m, nil
}

// Percent returns the completed fraction between 0 and 1
func (m Model) Percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(float64(m.done)/float64(m.total), 1)
}

// View implements tea.Model
func (m Model) View() string {
	pad := strings.Repeat(" ", padding)
	status := fmt.Sprintf("%d/%d rounds", m.done, m.total)
	if m.interrupted {
		status += " (interrupted)"
	}
	view := "\n" + pad + m.bar.ViewAs(m.Percent()) + "\n" + pad + helpStyle.Render(status) + "\n"
	if !m.finished && !m.interrupted {
		view += pad + helpStyle.Render("ctrl+c to stop") + "\n"
	}
	return view
}

// Bar runs a progress model as a bubbletea program
type Bar struct {
	program *tea.Program
	exited  chan struct{}
}

// New creates a progress bar drawing to out
func New(out io.Writer, total int, onInterrupt func()) *Bar {
	return &Bar{
		program: tea.NewProgram(NewModel(total, onInterrupt), tea.WithOutput(out)),
		exited:  make(chan struct{}),
	}
}

// Start runs the program in the background
func (b *Bar) Start() {
	go func() {
		defer close(b.exited)
		_, _ = b.program.Run()
	}()
}

// Update reports progress. It matches the simulator's progress callback and is
// safe for concurrent use.
func (b *Bar) Update(done, total int) {
	b.program.Send(UpdateMsg{Done: done, Total: total})
}

// Finish stops the program and waits for the terminal to be restored
func (b *Bar) Finish() {
	b.program.Send(DoneMsg{})
	<-b.exited
}
