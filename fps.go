package reveal

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay draws FPS, TPS and the scroll position in the top-left corner.
// The text is refreshed about every half second.
type fpsOverlay struct {
	img   *ebiten.Image
	since float64
}

func (o *fpsOverlay) draw(screen *ebiten.Image, dt float64, v *Viewport) {
	if o.img == nil {
		// 120x48 is enough for three short lines of debug text.
		o.img = ebiten.NewImage(120, 48)
		o.since = 0.5
	}
	o.since += dt
	if o.since >= 0.5 {
		o.since = 0
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nY: %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), v.ScrollY))
	}
	screen.DrawImage(o.img, nil)
}
