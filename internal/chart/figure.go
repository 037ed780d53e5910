package chart

// Kind identifies how a Figure is drawn.
type Kind int

const (
	KindBar Kind = iota + 1
	KindLine
	KindPath
	KindHeatmap
)

func (k Kind) String() string {
	switch k {
	case KindBar:
		return "bar"
	case KindLine:
		return "line"
	case KindPath:
		return "path"
	case KindHeatmap:
		return "heatmap"
	}
	return "unknown"
}

// Bar is one labelled bar of a bar chart.
type Bar struct {
	Label string
	Value float64
}

// Point is an (x, y) sample.
type Point struct {
	X, Y float64
}

// Series is a named sequence of points drawn as one connected line.
type Series struct {
	Name   string
	Points []Point
}

// Figure is a backend-independent chart description. Which fields are
// meaningful depends on Kind: Bars for KindBar, Series for KindLine and
// KindPath, Heat for KindHeatmap.
type Figure struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	Bars   []Bar
	Series []Series
	Heat   *Histogram

	// InvertY draws larger y values towards the bottom, matching screen
	// coordinates of the recorded grid positions.
	InvertY bool
	Grid    bool
	Legend  bool
}

// Bounds returns the extent of all finite points across the figure's series.
func (f Figure) Bounds() (minX, maxX, minY, maxY float64, ok bool) {
	for _, s := range f.Series {
		for _, p := range s.Points {
			if !finite(p.X) || !finite(p.Y) {
				continue
			}
			if !ok {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				ok = true
				continue
			}
			minX = min(minX, p.X)
			maxX = max(maxX, p.X)
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
		}
	}
	return minX, maxX, minY, maxY, ok
}
