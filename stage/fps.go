package stage

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsCounter refreshes its FPS/TPS text about twice a second.
type fpsCounter struct {
	img   *ebiten.Image
	since float32
	text  string
}

func (f *fpsCounter) update(dt float32) {
	f.since += dt
	if f.since < 0.5 && f.text != "" {
		return
	}
	f.since = 0
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if f.img != nil {
		f.redraw()
	}
}

func (f *fpsCounter) redraw() {
	f.img.Clear()
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, f.text)
}

func (f *fpsCounter) draw(dst *ebiten.Image) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
		f.redraw()
	}
	dst.DrawImage(f.img, nil)
}
