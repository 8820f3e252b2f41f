package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/arena/internal/script"
)

const historySize = 8

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(6).
			Align(lipgloss.Right)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	vacantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	guardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	err    error
}

type interactiveModel struct {
	session *script.Session
	input   textinput.Model
	history []historyEntry
}

func newInteractiveModel(session *script.Session) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "add 10 | get 0 | borrowmut 0 | release 0 ..."
	ti.Prompt = "> "
	ti.Width = 48
	ti.Focus()

	return &interactiveModel{
		session: session,
		input:   ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			m.execute(m.input.Value())
			m.input.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) execute(line string) {
	cmd, err := script.Parse(line)
	if errors.Is(err, script.ErrBlank) {
		return
	}

	entry := historyEntry{input: strings.TrimSpace(line)}
	if err != nil {
		entry.err = err
	} else {
		entry.output, entry.err = m.session.Exec(cmd)
	}

	m.history = append(m.history, entry)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	a := m.session.Arena()
	b.WriteString(titleStyle.Render("Arena Inspector"))
	b.WriteString(fmt.Sprintf(" %d slot(s), %d occupied\n\n", a.Slots(), a.Len()))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.renderSlots()),
		" ",
		panelStyle.Render(m.renderHistory()),
	))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter run • esc quit"))

	return b.String()
}

func (m *interactiveModel) renderSlots() string {
	slots := m.session.Slots()
	if len(slots) == 0 {
		return vacantStyle.Render("(empty arena)")
	}

	lines := make([]string, 0, len(slots))
	for _, s := range slots {
		line := indexStyle.Render(s.Index.String()) + "  "
		if !s.Occupied {
			line += vacantStyle.Render("vacant")
		} else {
			line += valueStyle.Render(fmt.Sprintf("%d", s.Value))
			if s.State != "" {
				line += " " + guardStyle.Render(s.State)
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *interactiveModel) renderHistory() string {
	if len(m.history) == 0 {
		return helpStyle.Render("no commands yet")
	}

	lines := make([]string, 0, len(m.history)*2)
	for _, h := range m.history {
		lines = append(lines, "> "+h.input)
		if h.err != nil {
			lines = append(lines, errorStyle.Render("  "+h.err.Error()))
		} else {
			for _, out := range strings.Split(h.output, "\n") {
				lines = append(lines, resultStyle.Render("  "+out))
			}
		}
	}
	return strings.Join(lines, "\n")
}
