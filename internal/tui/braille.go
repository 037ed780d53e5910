package tui

import "strings"

// brailleCanvas is a dot grid rendered with Unicode braille cells, each
// cell holding 2x4 dots. Every cell remembers the series that last set
// one of its dots so lines can be colored.
type brailleCanvas struct {
	cols, rows int
	dots       []uint8
	owner      []int
}

// dot bit for (dx, dy) inside a cell, dx in [0,2), dy in [0,4).
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func newBrailleCanvas(cols, rows int) *brailleCanvas {
	n := cols * rows
	owner := make([]int, n)
	for i := range owner {
		owner[i] = -1
	}
	return &brailleCanvas{cols: cols, rows: rows, dots: make([]uint8, n), owner: owner}
}

// Size returns the canvas resolution in dots.
func (c *brailleCanvas) Size() (w, h int) { return c.cols * 2, c.rows * 4 }

func (c *brailleCanvas) Set(x, y, series int) {
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	i := (y/4)*c.cols + x/2
	c.dots[i] |= brailleBits[y%4][x%2]
	c.owner[i] = series
}

// Line draws a straight segment between two dots.
func (c *brailleCanvas) Line(x0, y0, x1, y1, series int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0, series)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Rows renders each row of cells, styling cells through paint.
func (c *brailleCanvas) Rows(paint func(series int, s string) string) []string {
	out := make([]string, c.rows)
	for r := 0; r < c.rows; r++ {
		var b strings.Builder
		for col := 0; col < c.cols; col++ {
			i := r*c.cols + col
			if c.dots[i] == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(paint(c.owner[i], string(rune(0x2800+int(c.dots[i])))))
		}
		out[r] = b.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
