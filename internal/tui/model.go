package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"graphs/internal/chart"
)

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Prev, k.Next, k.Quit} }

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var keys = keyMap{
	Next: key.NewBinding(key.WithKeys("right", "l", "n", "tab", " "), key.WithHelp("→", "next chart")),
	Prev: key.NewBinding(key.WithKeys("left", "h", "p", "shift+tab"), key.WithHelp("←", "previous chart")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c", "ctrl+d"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model of the terminal chart viewer.
type Model struct {
	figures  []chart.Figure
	source   string
	index    int
	viewport viewport.Model
	help     help.Model
	ready    bool
}

// New creates a viewer over figures loaded from source.
func New(source string, figures []chart.Figure) Model {
	return Model{
		figures:  figures,
		source:   source,
		viewport: viewport.New(0, 0),
		help:     help.New(),
	}
}

// Run shows the figures until the user quits.
func Run(source string, figures []chart.Figure) error {
	_, err := tea.NewProgram(New(source, figures), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles resizes and navigation keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		fw, fh := frameStyle.GetFrameSize()
		reserved := 3 // header, status, help
		m.viewport.Width = max(20, msg.Width-fw)
		m.viewport.Height = max(6, msg.Height-reserved-fh)
		m.help.Width = msg.Width
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			if len(m.figures) > 0 {
				m.index = (m.index + 1) % len(m.figures)
				m.viewport.SetContent(m.renderCurrent())
			}
			return m, nil
		case key.Matches(msg, keys.Prev):
			if len(m.figures) > 0 {
				m.index = (m.index - 1 + len(m.figures)) % len(m.figures)
				m.viewport.SetContent(m.renderCurrent())
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the header, the current chart and the key help.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Telemetry Graphs") + "  " +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.source)
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status())
	return header + "\n" + frameStyle.Render(m.viewport.View()) + "\n" + status + "\n" + m.help.View(keys)
}

func (m Model) status() string {
	if len(m.figures) == 0 {
		return "Nothing to show."
	}
	f := m.figures[m.index]
	return fmt.Sprintf("Chart %d/%d  %s", m.index+1, len(m.figures), f.Kind)
}

func (m Model) renderCurrent() string {
	if len(m.figures) == 0 {
		return "No charts."
	}
	return renderFigure(m.figures[m.index], m.viewport.Width, m.viewport.Height)
}

var frameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
