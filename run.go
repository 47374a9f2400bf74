package reveal

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws an FPS/TPS and scroll overlay.
	ShowFPS bool
	// WheelStep is the scroll distance of one mouse-wheel notch. Zero uses
	// 60 pixels.
	WheelStep float64
}

// Run opens a window and drives doc from an Ebitengine game loop: the mouse
// wheel and the arrow, page and home/end keys scroll the viewport, every
// tick advances the document clock by one TPS interval, and the window size
// tracks the viewport size.
func Run(doc *Document, cfg RunConfig) error {
	if cfg.WheelStep == 0 {
		cfg.WheelStep = 60
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&game{doc: doc, cfg: cfg})
}

type game struct {
	doc *Document
	cfg RunConfig
	fps fpsOverlay
}

func (g *game) Update() error {
	if g.doc.updateFn != nil {
		if err := g.doc.updateFn(); err != nil {
			return err
		}
	}
	g.scroll()
	g.doc.Update(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// scroll applies wheel and keyboard scrolling to the viewport.
func (g *game) scroll() {
	v := g.doc.Viewport()
	if _, wy := ebiten.Wheel(); wy != 0 {
		v.ScrollBy(0, -wy*g.cfg.WheelStep)
	}
	target := v.ScrollY
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		target += g.cfg.WheelStep
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		target -= g.cfg.WheelStep
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		target += v.Height * 0.9
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		target -= v.Height * 0.9
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		target = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		target = g.doc.Root().Height - v.Height
	default:
		return
	}
	v.AnimateScrollTo(v.ScrollX, target, 0.35, ease.OutCubic)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colorRGBA(g.doc.ClearColor))
	g.doc.Draw(screen)
	if err := g.doc.capture(screen); err != nil {
		Logger().Warn("screenshot", zap.Error(err))
	}
	if g.cfg.ShowFPS {
		g.fps.draw(screen, 1/float64(ebiten.TPS()), g.doc.Viewport())
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	v := g.doc.Viewport()
	if float64(outsideWidth) != v.Width || float64(outsideHeight) != v.Height {
		v.SetSize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// colorRGBA converts a Color to a premultiplied color.RGBA.
func colorRGBA(c Color) color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}
