package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"graphs/internal/chart"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	seriesColor = []lipgloss.Color{"12", "10", "11", "9", "13", "14", "208", "141"}
)

// renderFigure draws fig as text fitting in width columns and height rows.
func renderFigure(fig chart.Figure, width, height int) string {
	width = max(20, width)
	height = max(6, height)
	var body []string
	switch fig.Kind {
	case chart.KindBar:
		body = renderBars(fig, width)
	case chart.KindLine, chart.KindPath:
		body = renderLines(fig, width, height-1)
	case chart.KindHeatmap:
		body = renderHeatmap(fig, width, height-1)
	default:
		body = []string{fmt.Sprintf("cannot draw %s figure", fig.Kind)}
	}
	return titleStyle.Render(fig.Title) + "\n" + strings.Join(body, "\n")
}

func renderBars(fig chart.Figure, width int) []string {
	if len(fig.Bars) == 0 {
		return []string{"no data"}
	}
	labelW, valueW := 0, 0
	peak := 0.0
	values := make([]string, len(fig.Bars))
	for i, b := range fig.Bars {
		labelW = max(labelW, runewidth.StringWidth(b.Label))
		values[i] = formatValue(b.Value)
		valueW = max(valueW, len(values[i]))
		if !math.IsInf(b.Value, 0) && !math.IsNaN(b.Value) {
			peak = max(peak, b.Value)
		}
	}
	labelW = min(labelW, 24)
	barMax := max(1, width-labelW-valueW-3)
	lines := []string{axisStyle.Render(fmt.Sprintf("%s / %s", fig.XLabel, fig.YLabel))}
	for i, b := range fig.Bars {
		n := 0
		switch {
		case math.IsInf(b.Value, 1):
			n = barMax
		case peak > 0 && b.Value > 0:
			n = int(math.Round(b.Value / peak * float64(barMax)))
		}
		label := runewidth.FillRight(runewidth.Truncate(b.Label, labelW, "…"), labelW)
		lines = append(lines, fmt.Sprintf("%s %s%s %s", label,
			barStyle.Render(strings.Repeat("█", n)), strings.Repeat(" ", barMax-n), values[i]))
	}
	return lines
}

func renderLines(fig chart.Figure, width, height int) []string {
	minX, maxX, minY, maxY, ok := fig.Bounds()
	if !ok {
		return []string{"no data"}
	}
	minX, maxX = widen(minX, maxX)
	minY, maxY = widen(minY, maxY)

	topLabel, bottomLabel := formatValue(maxY), formatValue(minY)
	if fig.InvertY {
		topLabel, bottomLabel = bottomLabel, topLabel
	}
	margin := max(len(topLabel), len(bottomLabel)) + 1
	legendRows := 0
	if fig.Legend {
		legendRows = 1
	}
	cols := max(4, width-margin-1)
	rows := max(2, height-2-legendRows)
	canvas := newBrailleCanvas(cols, rows)
	w, h := canvas.Size()

	toDot := func(p chart.Point) (int, int) {
		x := int(math.Round((p.X - minX) / (maxX - minX) * float64(w-1)))
		fy := (maxY - p.Y) / (maxY - minY)
		if fig.InvertY {
			fy = (p.Y - minY) / (maxY - minY)
		}
		return x, int(math.Round(fy * float64(h-1)))
	}
	for si, s := range fig.Series {
		prevOK := false
		var px, py int
		for _, p := range s.Points {
			if math.IsInf(p.X, 0) || math.IsNaN(p.X) || math.IsInf(p.Y, 0) || math.IsNaN(p.Y) {
				prevOK = false
				continue
			}
			x, y := toDot(p)
			if prevOK {
				canvas.Line(px, py, x, y, si)
			} else {
				canvas.Set(x, y, si)
			}
			px, py, prevOK = x, y, true
		}
	}

	plotRows := canvas.Rows(func(series int, s string) string {
		return lipgloss.NewStyle().Foreground(seriesColor[series%len(seriesColor)]).Render(s)
	})
	lines := make([]string, 0, rows+3)
	for i, r := range plotRows {
		label := ""
		switch i {
		case 0:
			label = topLabel
		case len(plotRows) - 1:
			label = bottomLabel
		}
		lines = append(lines, axisStyle.Render(fmt.Sprintf("%*s│", margin, label))+r)
	}
	left, right := formatValue(minX), formatValue(maxX)
	gap := max(1, cols-len(left)-len(right))
	lines = append(lines, axisStyle.Render(fmt.Sprintf("%*s└%s", margin, "", strings.Repeat("─", cols))))
	lines = append(lines, axisStyle.Render(fmt.Sprintf("%*s %s%s%s   x: %s  y: %s", margin, "", left, strings.Repeat(" ", gap), right, fig.XLabel, fig.YLabel)))
	if fig.Legend {
		var parts []string
		for si, s := range fig.Series {
			sw := lipgloss.NewStyle().Foreground(seriesColor[si%len(seriesColor)]).Render("■")
			parts = append(parts, sw+" "+s.Name)
		}
		lines = append(lines, strings.Join(parts, "  "))
	}
	return lines
}

func renderHeatmap(fig chart.Figure, width, height int) []string {
	h := fig.Heat
	if h == nil {
		return []string{"no data"}
	}
	nx, ny := h.Bins()
	yTop, yBottom := formatValue(h.YEdges[ny]), formatValue(h.YEdges[0])
	margin := max(len(yTop), len(yBottom)) + 1
	gx := min(nx, max(4, width-margin-1))
	rows := max(2, height-3)
	gy := min(ny, rows*2)

	grid := make([][]float64, gx)
	peak := 0.0
	for cx := range grid {
		grid[cx] = make([]float64, gy)
		for cy := range grid[cx] {
			sum := 0.0
			for i := cx * nx / gx; i < (cx+1)*nx/gx; i++ {
				for j := cy * ny / gy; j < (cy+1)*ny/gy; j++ {
					sum += h.Counts[i][j]
				}
			}
			grid[cx][cy] = sum
			peak = max(peak, sum)
		}
	}

	cellColor := func(cx, cy int) lipgloss.Color {
		if cy < 0 {
			return lipgloss.Color("")
		}
		return lipgloss.Color(chart.HeatColor(grid[cx][cy], peak).Hex())
	}
	termRows := (gy + 1) / 2
	lines := make([]string, 0, termRows+3)
	for r := 0; r < termRows; r++ {
		upper := gy - 1 - 2*r
		lower := upper - 1
		var b strings.Builder
		for cx := 0; cx < gx; cx++ {
			st := lipgloss.NewStyle().Foreground(cellColor(cx, upper))
			if lower >= 0 {
				st = st.Background(cellColor(cx, lower))
			}
			b.WriteString(st.Render("▀"))
		}
		label := ""
		switch r {
		case 0:
			label = yTop
		case termRows - 1:
			label = yBottom
		}
		lines = append(lines, axisStyle.Render(fmt.Sprintf("%*s│", margin, label))+b.String())
	}
	left, right := formatValue(h.XEdges[0]), formatValue(h.XEdges[nx])
	gap := max(1, gx-len(left)-len(right))
	lines = append(lines, axisStyle.Render(fmt.Sprintf("%*s %s%s%s", margin, "", left, strings.Repeat(" ", gap), right)))

	var scale strings.Builder
	for k := 0; k < 10; k++ {
		c := chart.Viridis(float64(k) / 9)
		scale.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("█"))
	}
	lines = append(lines, fmt.Sprintf("Frequency 0 %s %s   x: %s  y: %s", scale.String(), formatValue(peak), fig.XLabel, fig.YLabel))
	return lines
}

func widen(lo, hi float64) (float64, float64) {
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 5, 64)
}
