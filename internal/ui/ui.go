package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Config wires a language session into the full-screen front-end.
// Execute receives the accumulated command text and returns whatever the
// command printed; ReadMore reports whether the text still needs lines.
type Config struct {
	Title      string
	Prompt     string
	MorePrompt string
	ReadMore   func(string) bool
	Execute    func(string) (string, error)
}

type replModel struct {
	cfg        Config
	input      textinput.Model
	view       viewport.Model
	spinner    spinner.Model
	transcript []string
	pending    []string
	width      int
	height     int
	busy       bool
	quitting   bool
	err        error
}

type resultMsg struct {
	output string
	err    error
}

// Run drives the read-eval loop inside an alternate-screen terminal UI
// until the user presses Ctrl-D or a command fails hard.
func Run(cfg Config) error {
	if cfg.Execute == nil {
		return fmt.Errorf("missing execute callback")
	}
	program := tea.NewProgram(newReplModel(cfg), tea.WithOutput(os.Stdout), tea.WithAltScreen())
	out, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := out.(*replModel); ok {
		return m.err
	}
	return nil
}

func newReplModel(cfg Config) *replModel {
	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return &replModel{
		cfg:     cfg,
		input:   ti,
		view:    viewport.New(80, 24),
		spinner: sp,
		width:   80,
		height:  24,
	}
}

func (m *replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.pending = m.pending[:0]
			m.input.Reset()
			m.input.Prompt = m.cfg.Prompt
			m.append("Interrupted.")
			m.refresh()
			return m, nil
		case "ctrl+d":
			if m.input.Value() == "" {
				m.quitting = true
				return m, tea.Quit
			}
		case "enter":
			if m.busy {
				return m, nil
			}
			return m, m.submitLine()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
	case resultMsg:
		m.busy = false
		if msg.output != "" {
			m.append(strings.TrimRight(msg.output, "\n"))
		}
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.refresh()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.input.Width = msg.Width - runewidth.StringWidth(m.cfg.Prompt) - 2
		}
		if msg.Height > 0 {
			m.height = msg.Height
			m.view.Width = m.width
			m.view.Height = max(msg.Height-3, 1)
		}
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitLine echoes the entered line, then either keeps collecting
// continuation lines or hands the finished command to Execute.
func (m *replModel) submitLine() tea.Cmd {
	line := m.input.Value()
	m.append(m.input.PromptStyle.Render(m.input.Prompt) + line)
	m.pending = append(m.pending, line)
	text := strings.Join(m.pending, "\n")
	m.input.Reset()
	if m.cfg.ReadMore != nil && m.cfg.ReadMore(text) {
		m.input.Prompt = m.cfg.MorePrompt
		m.refresh()
		return nil
	}
	m.pending = m.pending[:0]
	m.input.Prompt = m.cfg.Prompt
	m.busy = true
	m.refresh()
	return func() tea.Msg {
		out, err := m.cfg.Execute(text)
		return resultMsg{output: out, err: err}
	}
}

func (m *replModel) View() string {
	if m.quitting {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := truncate(m.cfg.Title, m.width-4)
	if m.busy {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(help.Render("enter: run  ctrl+c: interrupt  ctrl+d: exit"))
	return b.String()
}

func (m *replModel) append(block string) {
	m.transcript = append(m.transcript, strings.Split(block, "\n")...)
}

func (m *replModel) refresh() {
	m.view.SetContent(strings.Join(m.transcript, "\n"))
	m.view.GotoBottom()
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
