package reveal

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is the 1x1 source image every box is drawn from. Created on
// first Draw so the package can be used without a graphics context.
var whitePixel *ebiten.Image

func pixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(colorRGBA(ColorWhite))
	}
	return whitePixel
}

// boxTransform is the resolved screen placement of one element.
type boxTransform struct {
	x, y, w, h float64 // untransformed box, screen space
	dx, dy     float64 // translate + motion offset
	scale      float64
	rotate     float64 // radians
	alpha      float64
	brightness float64
}

// computeBox resolves el's style into a screen placement relative to the
// viewport origin (vx, vy). Opacity multiplies down the tree.
func computeBox(el *Element, vx, vy, parentAlpha float64) boxTransform {
	s := el.Style()
	b := el.Bounds()

	// Clip insets are fractions of the box, the way inset() clip-paths are.
	cl := clamp01(s.ClipLeft)
	cr := clamp01(s.ClipRight)
	ct := clamp01(s.ClipTop)
	cb := clamp01(s.ClipBottom)
	w := b.Width * math.Max(0, 1-cl-cr)
	h := b.Height * math.Max(0, 1-ct-cb)

	return boxTransform{
		x:          b.X + b.Width*cl - vx,
		y:          b.Y + b.Height*ct - vy,
		w:          w,
		h:          h,
		dx:         s.TranslateX + s.TranslateXPct/100*b.Width + el.motion.X,
		dy:         s.TranslateY + s.TranslateYPct/100*b.Height + el.motion.Y,
		scale:      s.Scale,
		rotate:     s.Rotate * math.Pi / 180,
		alpha:      clamp01(s.Opacity) * parentAlpha,
		brightness: s.Brightness,
	}
}

// geoM builds the draw matrix: the unit pixel is scaled to the box, then
// scaled and rotated around the box center, then translated.
func (t boxTransform) geoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(t.w, t.h)
	m.Translate(-t.w/2, -t.h/2)
	m.Scale(t.scale, t.scale)
	m.Rotate(t.rotate)
	m.Translate(t.x+t.w/2+t.dx, t.y+t.h/2+t.dy)
	return m
}

// Draw paints every element box inside the viewport in document order.
// Opacity, translation, scale, rotation, brightness and clip are rendered;
// 3D rotation, blur and shadow are not.
func (d *Document) Draw(screen *ebiten.Image) {
	src := pixel()
	d.place(func(el *Element, t boxTransform) {
		var op ebiten.DrawImageOptions
		op.GeoM = t.geoM()
		c := el.Fill
		br := t.brightness
		a := float32(c.A * t.alpha)
		op.ColorScale.Scale(float32(c.R*br)*a, float32(c.G*br)*a, float32(c.B*br)*a, a)
		screen.DrawImage(src, &op)
	})
}

// place walks the tree the way Draw paints it and calls fn for every box
// that would be drawn. Fully transparent elements hide their subtree.
func (d *Document) place(fn func(*Element, boxTransform)) {
	vp := d.viewport.Rect()
	d.root.Walk(func(el *Element) bool {
		if el == d.root {
			return true
		}
		alpha := 1.0
		for p := el.Parent; p != nil && p != d.root; p = p.Parent {
			alpha *= clamp01(p.Style().Opacity)
		}
		t := computeBox(el, vp.X, vp.Y, alpha)
		if t.alpha <= 0 {
			return false
		}
		// Cull boxes far outside the viewport. Transforms can move a box, so
		// the test uses a generous margin.
		b := el.Bounds()
		margin := math.Max(b.Width, b.Height) + math.Abs(t.dx) + math.Abs(t.dy)
		if !b.Intersects(Rect{X: vp.X - margin, Y: vp.Y - margin, Width: vp.Width + 2*margin, Height: vp.Height + 2*margin}) {
			return true
		}
		if t.w > 0 && t.h > 0 && t.scale != 0 {
			fn(el, t)
		}
		return true
	})
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
