package chart

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var viridisStops = []colorful.Color{
	mustHex("#440154"),
	mustHex("#482878"),
	mustHex("#3e4989"),
	mustHex("#31688e"),
	mustHex("#26828e"),
	mustHex("#1f9e89"),
	mustHex("#35b779"),
	mustHex("#6ece58"),
	mustHex("#b5de2b"),
	mustHex("#fde725"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Viridis maps t in [0, 1] onto the viridis colormap.
func Viridis(t float64) colorful.Color {
	if math.IsNaN(t) || t <= 0 {
		return viridisStops[0]
	}
	last := len(viridisStops) - 1
	if t >= 1 {
		return viridisStops[last]
	}
	pos := t * float64(last)
	i := int(pos)
	return viridisStops[i].BlendRgb(viridisStops[i+1], pos-float64(i)).Clamped()
}

// HeatColor returns the colormap entry for a bin count relative to peak.
func HeatColor(count, peak float64) colorful.Color {
	if peak <= 0 {
		return Viridis(0)
	}
	return Viridis(count / peak)
}
