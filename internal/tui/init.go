// internal/tui/init.go
//
// Interactive mode for `ogc init`. This is a small bubbletea program:
// a spinner while generators run in the background, then the run
// summary as the final frame.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ogcontrol/ogc/internal/generator"
	"github.com/ogcontrol/ogc/internal/runner"
)

type runDoneMsg struct {
	entries []runner.Entry
}

// InitModel drives the interactive init run.
type InitModel struct {
	registry *generator.Registry
	ctx      *generator.Context

	spinner spinner.Model
	total   int
	done    bool
	quit    bool
	entries []runner.Entry
}

// NewInitModel builds the model for one interactive run.
func NewInitModel(reg *generator.Registry, ctx *generator.Context) InitModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	return InitModel{
		registry: reg,
		ctx:      ctx,
		spinner:  sp,
		total:    len(reg.IDs()),
	}
}

// Entries returns the run outcomes once the program finishes.
func (m InitModel) Entries() []runner.Entry { return m.entries }

// Aborted reports whether the user quit before the run finished.
func (m InitModel) Aborted() bool { return m.quit && !m.done }

func (m InitModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runCmd())
}

func (m InitModel) runCmd() tea.Cmd {
	reg, ctx := m.registry, m.ctx
	return func() tea.Msg {
		return runDoneMsg{entries: runner.Run(reg, ctx)}
	}
}

func (m InitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
		return m, nil
	case runDoneMsg:
		m.done = true
		m.entries = msg.entries
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m InitModel) View() string {
	if m.done {
		return runner.Summary(m.entries)
	}
	return fmt.Sprintf("%s running %d generators... (q to cancel)\n", m.spinner.View(), m.total)
}

// RunInit executes the registry interactively and returns the outcomes.
func RunInit(reg *generator.Registry, ctx *generator.Context) ([]runner.Entry, error) {
	program := tea.NewProgram(NewInitModel(reg, ctx))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	model, ok := final.(InitModel)
	if !ok {
		return nil, fmt.Errorf("tui: unexpected final model %T", final)
	}
	if model.Aborted() {
		return nil, fmt.Errorf("tui: run cancelled")
	}
	return model.Entries(), nil
}
