//go:build cgo

package window

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"graphs/internal/chart"
)

// Available reports whether Show can open a window.
func Available() bool { return displayPresent() }

// Show opens a desktop window paging through figures. It blocks until the
// window is closed.
func Show(figures []chart.Figure, opts Options) error {
	if len(figures) == 0 {
		return errors.New("no figures to show")
	}
	opts = opts.withDefaults()
	v := &viewer{figures: figures, opts: opts, pages: make(map[int]*page, len(figures))}
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	return ebiten.RunGame(v)
}

type page struct {
	img *ebiten.Image
	err error
}

type viewer struct {
	figures []chart.Figure
	opts    Options
	index   int
	pages   map[int]*page
}

func (v *viewer) Update() error {
	n := len(v.figures)
	switch {
	case justPressed(ebiten.KeyQ, ebiten.KeyEscape):
		return ebiten.Termination
	case justPressed(ebiten.KeyArrowRight, ebiten.KeySpace, ebiten.KeyN):
		v.index = (v.index + 1) % n
	case justPressed(ebiten.KeyArrowLeft, ebiten.KeyP):
		v.index = (v.index - 1 + n) % n
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	p := v.page(v.index)
	if p.err != nil {
		ebitenutil.DebugPrintAt(screen, "cannot draw chart: "+p.err.Error(), 8, 8)
	} else {
		screen.DrawImage(p.img, nil)
	}
	hint := fmt.Sprintf("%d/%d  left/right: switch  q: quit", v.index+1, len(v.figures))
	y := float32(v.opts.Height - 22)
	vector.DrawFilledRect(screen, 4, y, float32(len(hint)*6+8), 18, color.RGBA{A: 0xB0}, false)
	ebitenutil.DebugPrintAt(screen, hint, 8, int(y)+1)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return v.opts.Width, v.opts.Height
}

// page rasterizes figure i on first use.
func (v *viewer) page(i int) *page {
	if p, ok := v.pages[i]; ok {
		return p
	}
	p := &page{}
	img, err := chart.Rasterize(v.figures[i], v.opts.Width, v.opts.Height)
	if err != nil {
		p.err = err
	} else {
		p.img = ebiten.NewImageFromImage(img)
	}
	v.pages[i] = p
	return p
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
