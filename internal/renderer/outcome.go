package renderer

import (
	"fmt"

	"graphs/internal/chart"
)

// OutcomeKind classifies how a render invocation ended.
type OutcomeKind int

const (
	Rendered OutcomeKind = iota + 1
	// NoData means the report had a known shape but nothing to draw.
	NoData
	InvalidFormat
	NotFound
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Rendered:
		return "rendered"
	case NoData:
		return "no-data"
	case InvalidFormat:
		return "invalid-format"
	case NotFound:
		return "not-found"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the terminal result of Renderer.Render.
type Outcome struct {
	Kind    OutcomeKind
	Path    string
	Err     error
	Figures int
	// Notes are user-facing remarks about skipped data.
	Notes []string
}

func (o *Outcome) note(msg string) { o.Notes = append(o.Notes, msg) }

// Message returns the line reported to the user, or "" when figures were drawn.
func (o Outcome) Message() string {
	switch o.Kind {
	case NotFound:
		return fmt.Sprintf("Error: File '%s' not found.", o.Path)
	case InvalidFormat:
		return "Invalid JSON file format for graphing."
	case Failed:
		if o.Err == nil {
			return "An error occurred."
		}
		return "An error occurred: " + o.Err.Error()
	}
	return ""
}

// Collector is a Canvas that keeps figures for a viewer to show afterwards.
type Collector struct {
	figures []chart.Figure
}

// Plot implements Canvas.
func (c *Collector) Plot(fig chart.Figure) error {
	c.figures = append(c.figures, fig)
	return nil
}

// Figures returns the collected figures in plot order.
func (c *Collector) Figures() []chart.Figure { return c.figures }
