package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	barColor  = drawing.ColorFromHex("87CEEB")
	gridColor = drawing.ColorFromHex("D9D9D9")
	textColor = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
)

// Rasterize draws fig into a width by height image.
func Rasterize(fig Figure, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	switch fig.Kind {
	case KindBar:
		bc, err := barChart(fig, width, height)
		if err != nil {
			return nil, err
		}
		return renderPNG(bc)
	case KindLine, KindPath:
		lc, err := lineChart(fig, width, height)
		if err != nil {
			return nil, err
		}
		return renderPNG(lc)
	case KindHeatmap:
		return heatmapImage(fig, width, height)
	}
	return nil, fmt.Errorf("unsupported figure kind %s", fig.Kind)
}

type renderable interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

func renderPNG(r renderable) (image.Image, error) {
	var buf bytes.Buffer
	if err := r.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func barChart(fig Figure, width, height int) (gochart.BarChart, error) {
	if len(fig.Bars) == 0 {
		return gochart.BarChart{}, errors.New("bar chart has no bars")
	}
	lo, hi := 0.0, 0.0
	for _, b := range fig.Bars {
		if finite(b.Value) {
			lo = min(lo, b.Value)
			hi = max(hi, b.Value)
		}
	}
	if hi <= lo {
		hi = lo + 1
	}
	bars := make([]gochart.Value, len(fig.Bars))
	for i, b := range fig.Bars {
		v := b.Value
		switch {
		case math.IsInf(v, 1):
			v = hi
		case math.IsInf(v, -1):
			v = lo
		case math.IsNaN(v):
			v = 0
		}
		bars[i] = gochart.Value{
			Label: b.Label,
			Value: v,
			Style: gochart.Style{FillColor: barColor, StrokeColor: barColor},
		}
	}
	barWidth := max(4, (width-120)*2/(3*len(bars)))
	return gochart.BarChart{
		Title:      fig.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:   barWidth,
		BarSpacing: max(2, barWidth/2),
		YAxis: gochart.YAxis{
			Name:  fig.YLabel,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi * 1.05},
		},
		Bars: bars,
	}, nil
}

func lineChart(fig Figure, width, height int) (gochart.Chart, error) {
	minX, maxX, minY, maxY, ok := fig.Bounds()
	if !ok {
		return gochart.Chart{}, errors.New("figure has no finite points")
	}
	minX, maxX = widen(minX, maxX)
	minY, maxY = widen(minY, maxY)

	var series []gochart.Series
	for i, s := range fig.Series {
		var xs, ys []float64
		for _, p := range s.Points {
			if finite(p.X) && finite(p.Y) {
				xs = append(xs, p.X)
				ys = append(ys, p.Y)
			}
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   gochart.Style{StrokeColor: gochart.GetDefaultColor(i), StrokeWidth: 2},
		})
	}

	major := gochart.Style{Hidden: true}
	if fig.Grid {
		major = gochart.Style{StrokeColor: gridColor, StrokeWidth: 1}
	}
	minor := gochart.Style{Hidden: true}
	c := gochart.Chart{
		Title:      fig.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           fig.XLabel,
			Range:          &gochart.ContinuousRange{Min: minX, Max: maxX},
			GridMajorStyle: major,
			GridMinorStyle: minor,
		},
		YAxis: gochart.YAxis{
			Name:           fig.YLabel,
			Range:          &gochart.ContinuousRange{Min: minY, Max: maxY, Descending: fig.InvertY},
			GridMajorStyle: major,
			GridMinorStyle: minor,
		},
		Series: series,
	}
	if fig.Legend {
		c.Elements = []gochart.Renderable{gochart.Legend(&c)}
	}
	return c, nil
}

func widen(lo, hi float64) (float64, float64) {
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

const (
	heatLeft   = 64
	heatRight  = 120
	heatTop    = 44
	heatBottom = 52
)

func heatmapImage(fig Figure, width, height int) (image.Image, error) {
	h := fig.Heat
	if h == nil {
		return nil, errors.New("heatmap figure has no histogram")
	}
	nx, ny := h.Bins()
	pw := width - heatLeft - heatRight
	ph := height - heatTop - heatBottom
	if nx <= 0 || ny <= 0 || pw < nx || ph < ny {
		return nil, fmt.Errorf("image %dx%d too small for %dx%d bins", width, height, nx, ny)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	peak := h.Max()
	bottom := heatTop + ph
	for i := 0; i < nx; i++ {
		x0 := heatLeft + i*pw/nx
		x1 := heatLeft + (i+1)*pw/nx
		for j := 0; j < ny; j++ {
			y0 := bottom - (j+1)*ph/ny
			y1 := bottom - j*ph/ny
			c := HeatColor(h.Counts[i][j], peak)
			draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}

	if fig.Grid {
		line := image.NewUniform(color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x50})
		for k := 1; k < 5; k++ {
			x := heatLeft + k*pw/5
			y := heatTop + k*ph/5
			draw.Draw(img, image.Rect(x, heatTop, x+1, bottom), line, image.Point{}, draw.Over)
			draw.Draw(img, image.Rect(heatLeft, y, heatLeft+pw, y+1), line, image.Point{}, draw.Over)
		}
	}

	// colorbar
	cbX := heatLeft + pw + 24
	for y := heatTop; y < bottom; y++ {
		t := 1 - float64(y-heatTop)/float64(ph)
		draw.Draw(img, image.Rect(cbX, y, cbX+18, y+1), image.NewUniform(Viridis(t)), image.Point{}, draw.Src)
	}
	drawText(img, formatTick(peak), cbX+24, heatTop+10)
	drawText(img, "0", cbX+24, bottom)
	drawText(img, "Frequency", cbX-4, bottom+20)

	drawText(img, fig.Title, (width-textWidth(fig.Title))/2, heatTop-18)
	drawText(img, formatTick(h.XEdges[0]), heatLeft, bottom+16)
	xMax := formatTick(h.XEdges[nx])
	drawText(img, xMax, heatLeft+pw-textWidth(xMax), bottom+16)
	drawText(img, fig.XLabel, heatLeft+(pw-textWidth(fig.XLabel))/2, bottom+36)
	yMin := formatTick(h.YEdges[0])
	yMax := formatTick(h.YEdges[ny])
	drawText(img, yMin, heatLeft-6-textWidth(yMin), bottom)
	drawText(img, yMax, heatLeft-6-textWidth(yMax), heatTop+10)
	drawText(img, fig.YLabel, 8, heatTop+ph/2)
	return img, nil
}

func drawText(dst draw.Image, s string, x, y int) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(textColor), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
