package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphs/internal/chart"
)

func testFigures(t *testing.T) []chart.Figure {
	t.Helper()
	h, err := chart.Histogram2D([]chart.Point{{X: 0, Y: 0}, {X: 3, Y: 3}, {X: 3, Y: 3}}, 75, 75)
	require.NoError(t, err)
	return []chart.Figure{
		{Kind: chart.KindBar, Title: "Item Usage Bar Graph", XLabel: "Items", YLabel: "Amount of Uses",
			Bars: []chart.Bar{{Label: "sword", Value: 10}, {Label: "bow", Value: 5}, {Label: "wand", Value: math.Inf(1)}}},
		{Kind: chart.KindPath, Title: "Agent Path", InvertY: true, Legend: true,
			Series: []chart.Series{{Name: "guard", Points: []chart.Point{{X: 0, Y: 0}, {X: 4, Y: 4}}}}},
		{Kind: chart.KindHeatmap, Title: "Heatmap - Agent: guard", Heat: h},
	}
}

func TestRenderBars(t *testing.T) {
	out := renderFigure(testFigures(t)[0], 60, 20)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Item Usage Bar Graph")
	assert.True(t, strings.HasPrefix(lines[2], "sword"))
	assert.Contains(t, lines[2], "10")
	assert.Contains(t, lines[4], "+Inf")
	// bow is half of sword
	assert.Equal(t, strings.Count(lines[2], "█"), 2*strings.Count(lines[3], "█"))
}

func TestRenderBars_WideLabelsAlign(t *testing.T) {
	fig := chart.Figure{Kind: chart.KindBar, Title: "Agent Interactions",
		Bars: []chart.Bar{{Label: "剣士", Value: 2}, {Label: "bow", Value: 4}, {Label: "ÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉ", Value: 1}}}
	lines := strings.Split(renderFigure(fig, 80, 20), "\n")
	require.Len(t, lines, 5)
	col := func(line string) int {
		i := strings.Index(line, "█")
		require.GreaterOrEqual(t, i, 0, line)
		return lipgloss.Width(line[:i])
	}
	assert.Equal(t, col(lines[2]), col(lines[3]))
	assert.Equal(t, col(lines[2]), col(lines[4]))
	assert.Contains(t, lines[4], "…")
}

func TestRenderLines(t *testing.T) {
	out := renderFigure(testFigures(t)[1], 40, 12)
	assert.Contains(t, out, "Agent Path")
	assert.Contains(t, out, "guard")
	assert.Contains(t, out, "│")
	assert.True(t, strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28FF }), "expected braille dots in %q", out)
}

func TestRenderHeatmap(t *testing.T) {
	out := renderFigure(testFigures(t)[2], 50, 16)
	assert.Contains(t, out, "Heatmap - Agent: guard")
	assert.Contains(t, out, "▀")
	assert.Contains(t, out, "Frequency 0")
}

func TestBrailleCanvas(t *testing.T) {
	c := newBrailleCanvas(2, 1)
	w, h := c.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)
	c.Line(0, 0, 0, 3, 0)
	c.Set(9, 9, 0)
	rows := c.Rows(func(_ int, s string) string { return s })
	require.Len(t, rows, 1)
	assert.Equal(t, "⡇ ", rows[0])
}

func TestModel_Navigation(t *testing.T) {
	m := New("report.json", testFigures(t))
	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(Model)
	assert.Contains(t, m.View(), "Chart 1/3")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	assert.Contains(t, m.View(), "Chart 2/3")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(Model)
	assert.Contains(t, m.View(), "Chart 3/3")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
