package renderer

import (
	"errors"
	"fmt"
	"io"
	"log"

	"graphs/internal/chart"
	"graphs/internal/report"
)

// DefaultHeatmapBins is the per-axis bin count of agent heatmaps.
const DefaultHeatmapBins = 75

// Canvas receives the figures a report produces.
type Canvas interface {
	Plot(fig chart.Figure) error
}

// Options tune what is drawn for agent position reports.
type Options struct {
	// HeatmapAgent switches agent reports from path plots to a heatmap of
	// the named agent's visited positions.
	HeatmapAgent string
	HeatmapBins  int
}

// Renderer loads a report, works out its shape and plots the matching charts.
type Renderer struct {
	canvas     Canvas
	classifier *report.Classifier
	opts       Options
	logger     *log.Logger
}

// New creates a Renderer drawing onto canvas. A nil logger discards output.
func New(canvas Canvas, classifier *report.Classifier, opts Options, logger *log.Logger) *Renderer {
	if opts.HeatmapBins <= 0 {
		opts.HeatmapBins = DefaultHeatmapBins
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Renderer{canvas: canvas, classifier: classifier, opts: opts, logger: logger}
}

// Render loads the report at path and plots it. It never panics on bad
// input; every failure is described by the returned Outcome.
func (r *Renderer) Render(path string) Outcome {
	doc, err := report.Load(path)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			return Outcome{Kind: NotFound, Path: path}
		}
		return Outcome{Kind: Failed, Path: path, Err: err}
	}
	shapes := r.classifier.Classify(doc)
	r.logger.Printf("%s: shapes=%v", path, shapes)
	if len(shapes) == 0 {
		return Outcome{Kind: InvalidFormat, Path: path}
	}
	if err := doc.Decode(shapes...); err != nil {
		return Outcome{Kind: Failed, Path: path, Err: err}
	}

	out := Outcome{Path: path}
	for _, s := range shapes {
		var err error
		switch s {
		case report.ShapeAgents:
			if r.opts.HeatmapAgent != "" {
				err = r.plotAgentHeatmap(&doc.Report, r.opts.HeatmapAgent, &out)
			} else {
				err = r.plotAgentPaths(&doc.Report, &out)
			}
		case report.ShapeInteractions:
			err = r.plotInteractions(&doc.Report, &out)
		case report.ShapeItemUsage:
			err = r.plotItemUsage(&doc.Report, &out)
		case report.ShapeItemDamage:
			err = r.plotItemDamage(&doc.Report, &out)
		}
		if err != nil {
			return Outcome{Kind: Failed, Path: path, Err: err, Figures: out.Figures, Notes: out.Notes}
		}
	}
	if out.Figures > 0 {
		out.Kind = Rendered
	} else {
		out.Kind = NoData
	}
	return out
}

func (r *Renderer) plot(fig chart.Figure, out *Outcome) error {
	if err := r.canvas.Plot(fig); err != nil {
		return fmt.Errorf("plot %q: %w", fig.Title, err)
	}
	out.Figures++
	r.logger.Printf("plotted %s %q", fig.Kind, fig.Title)
	return nil
}

func (r *Renderer) plotItemUsage(rep *report.Report, out *Outcome) error {
	if len(rep.Items) == 0 {
		out.note("No 'items' key found in the JSON data.")
		return nil
	}
	bars := make([]chart.Bar, len(rep.Items))
	for i, it := range rep.Items {
		bars[i] = chart.Bar{Label: it.Name, Value: it.AmountOfUses.Float64()}
	}
	return r.plot(chart.Figure{
		Kind:   chart.KindBar,
		Title:  "Item Usage Bar Graph",
		XLabel: "Items",
		YLabel: "Amount of Uses",
		Bars:   bars,
	}, out)
}

func (r *Renderer) plotItemDamage(rep *report.Report, out *Outcome) error {
	if len(rep.Items) == 0 {
		out.note("No 'items' key found in the JSON data.")
		return nil
	}
	series := make([]chart.Series, len(rep.Items))
	for i, it := range rep.Items {
		pts := make([]chart.Point, len(it.Damages))
		for k, d := range it.Damages {
			pts[k] = chart.Point{X: float64(k), Y: d.Float64()}
		}
		series[i] = chart.Series{Name: it.Name, Points: pts}
	}
	fig := chart.Figure{
		Kind:   chart.KindLine,
		Title:  "Item Damage Line Graph",
		XLabel: "Damage Instances",
		YLabel: "Damage",
		Series: series,
		Legend: true,
	}
	if _, _, _, _, ok := fig.Bounds(); !ok {
		out.note("No finite 'damages' values found for any item.")
		return nil
	}
	return r.plot(fig, out)
}

func (r *Renderer) plotInteractions(rep *report.Report, out *Outcome) error {
	if len(rep.Interactions) == 0 {
		out.note("No 'agentInteractions' key found in the JSON data.")
		return nil
	}
	bars := make([]chart.Bar, len(rep.Interactions))
	for i, in := range rep.Interactions {
		bars[i] = chart.Bar{Label: in.Name, Value: in.InteractionCount.Float64()}
	}
	return r.plot(chart.Figure{
		Kind:   chart.KindBar,
		Title:  "Agent Interactions",
		XLabel: "Agents",
		YLabel: "Amount of Interactions",
		Bars:   bars,
	}, out)
}

func (r *Renderer) plotAgentPaths(rep *report.Report, out *Outcome) error {
	if len(rep.Agents) == 0 {
		out.note("No 'agents' key found in the JSON data.")
		return nil
	}
	var series []chart.Series
	for _, a := range rep.Agents {
		if len(a.Positions) == 0 {
			out.note(fmt.Sprintf("No 'positions' data found for agent '%s'.", a.Name))
			continue
		}
		series = append(series, chart.Series{Name: a.Name, Points: positions(a)})
	}
	if len(series) == 0 {
		return nil
	}
	fig := chart.Figure{
		Kind:    chart.KindPath,
		Title:   "Agent Path",
		XLabel:  "X",
		YLabel:  "Y",
		Series:  series,
		InvertY: true,
		Grid:    true,
		Legend:  true,
	}
	if _, _, _, _, ok := fig.Bounds(); !ok {
		out.note("No finite 'positions' values found for any agent.")
		return nil
	}
	return r.plot(fig, out)
}

func (r *Renderer) plotAgentHeatmap(rep *report.Report, name string, out *Outcome) error {
	if len(rep.Agents) == 0 {
		out.note("No 'agents' key found in the JSON data.")
		return nil
	}
	a, ok := rep.Agent(name)
	if !ok {
		out.note(fmt.Sprintf("Agent with name '%s' not found in the JSON data.", name))
		return nil
	}
	if len(a.Positions) == 0 {
		out.note(fmt.Sprintf("No 'positions' data found for agent '%s'.", name))
		return nil
	}
	h, err := chart.Histogram2D(positions(a), r.opts.HeatmapBins, r.opts.HeatmapBins)
	if err != nil {
		return fmt.Errorf("agent %s: %w", name, err)
	}
	return r.plot(chart.Figure{
		Kind:   chart.KindHeatmap,
		Title:  "Heatmap - Agent: " + name,
		XLabel: "X",
		YLabel: "Y",
		Heat:   h,
		Grid:   true,
	}, out)
}

func positions(a report.Agent) []chart.Point {
	pts := make([]chart.Point, len(a.Positions))
	for i, p := range a.Positions {
		pts[i] = chart.Point{X: p.X.Float64(), Y: p.Y.Float64()}
	}
	return pts
}
