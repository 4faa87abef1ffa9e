// Package banner renders the typed-text hero in a terminal.
package banner

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dtrivino/portfolio/internal/typed"
)

var (
	prefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	caretStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// StepMsg asks the model to advance the animation by one character.
type StepMsg struct{}

// Options customize the banner.
type Options struct {
	Prefix string
	Timing typed.Timing
}

// Model is a Bubble Tea model around typed.Step.
type Model struct {
	phrases []string
	opts    Options
	state   typed.State
	text    string
	width   int
	height  int
}

// New returns a banner model. It fails with typed.ErrNoPhrases for an
// empty phrase list. A zero Timing means typed.DefaultTiming.
func New(phrases []string, opts Options) (*Model, error) {
	if len(phrases) == 0 {
		return nil, typed.ErrNoPhrases
	}
	if opts.Timing == (typed.Timing{}) {
		opts.Timing = typed.DefaultTiming
	}
	return &Model{
		phrases: append([]string(nil), phrases...),
		opts:    opts,
	}, nil
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return StepMsg{} })
}

func (m *Model) Init() tea.Cmd {
	return tick(m.opts.Timing.Start)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	case StepMsg:
		var delay time.Duration
		m.state, m.text, delay = typed.Step(m.phrases, m.state, m.opts.Timing)
		return m, tick(delay)
	}
	return m, nil
}

func (m *Model) View() string {
	line := prefixStyle.Render(m.opts.Prefix) + textStyle.Render(m.text) + caretStyle.Render("▌")
	body := lipgloss.JoinVertical(lipgloss.Left, line, "", helpStyle.Render("q to quit"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body + "\n"
}

// Text is the currently displayed part of the phrase.
func (m *Model) Text() string { return m.text }

// State is the underlying animator state.
func (m *Model) State() typed.State { return m.state }
