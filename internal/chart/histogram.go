package chart

import (
	"errors"
	"math"
)

// Histogram is a 2D frequency table. Counts[i][j] holds the number of
// samples with XEdges[i] <= x < XEdges[i+1] and YEdges[j] <= y < YEdges[j+1];
// the last bin on each axis also includes its right edge.
type Histogram struct {
	Counts [][]float64
	XEdges []float64
	YEdges []float64
}

// Bins returns the number of bins along x and y.
func (h *Histogram) Bins() (nx, ny int) {
	return len(h.XEdges) - 1, len(h.YEdges) - 1
}

// Max returns the largest bin count.
func (h *Histogram) Max() float64 {
	m := 0.0
	for _, col := range h.Counts {
		for _, v := range col {
			m = max(m, v)
		}
	}
	return m
}

// Total returns the number of binned samples.
func (h *Histogram) Total() float64 {
	t := 0.0
	for _, col := range h.Counts {
		for _, v := range col {
			t += v
		}
	}
	return t
}

// Histogram2D bins points into nx by ny uniform bins spanning the data
// range. A zero-width range is widened by 0.5 on each side. Non-finite
// points are ignored.
func Histogram2D(points []Point, nx, ny int) (*Histogram, error) {
	if nx <= 0 || ny <= 0 {
		return nil, errors.New("histogram bin counts must be positive")
	}
	var xs, ys []float64
	for _, p := range points {
		if finite(p.X) && finite(p.Y) {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	if len(xs) == 0 {
		return nil, errors.New("no finite positions to bin")
	}
	h := &Histogram{
		XEdges: edges(xs, nx),
		YEdges: edges(ys, ny),
		Counts: make([][]float64, nx),
	}
	for i := range h.Counts {
		h.Counts[i] = make([]float64, ny)
	}
	for k := range xs {
		i := binIndex(xs[k], h.XEdges)
		j := binIndex(ys[k], h.YEdges)
		h.Counts[i][j]++
	}
	return h, nil
}

func edges(vals []float64, n int) []float64 {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	out := make([]float64, n+1)
	step := (hi - lo) / float64(n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n] = hi
	return out
}

func binIndex(v float64, edges []float64) int {
	n := len(edges) - 1
	lo, hi := edges[0], edges[n]
	i := int(math.Floor((v - lo) / (hi - lo) * float64(n)))
	// Guard against rounding at the edges.
	for i > 0 && v < edges[i] {
		i--
	}
	for i < n-1 && v >= edges[i+1] {
		i++
	}
	return max(0, min(i, n-1))
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
