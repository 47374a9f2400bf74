package reveal

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the viewport X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Viewport is the visible window onto a Document: a scroll offset plus a
// size, both in document pixels.
type Viewport struct {
	ScrollX, ScrollY float64
	Width, Height    float64

	// BoundsEnabled clamps scrolling so the visible area stays within
	// Bounds.
	BoundsEnabled bool
	Bounds        Rect

	scrollTween *scrollAnim
	scrolled    bool
	resized     bool
}

func newViewport(w, h float64) *Viewport {
	return &Viewport{Width: w, Height: h}
}

// Rect returns the visible area in document coordinates.
func (v *Viewport) Rect() Rect {
	return Rect{X: v.ScrollX, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// ScrollTo jumps to the given scroll offset, cancelling any scroll animation.
func (v *Viewport) ScrollTo(x, y float64) {
	v.scrollTween = nil
	v.setScroll(x, y)
}

// ScrollBy scrolls by a relative amount.
func (v *Viewport) ScrollBy(dx, dy float64) {
	v.ScrollTo(v.ScrollX+dx, v.ScrollY+dy)
}

// AnimateScrollTo animates the scroll offset over duration seconds.
func (v *Viewport) AnimateScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.ScrollX), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.ScrollY), float32(y), duration, easeFn),
	}
}

// SetSize resizes the viewport. Resize listeners run on the next update.
func (v *Viewport) SetSize(w, h float64) {
	if v.Width == w && v.Height == h {
		return
	}
	v.Width, v.Height = w, h
	v.resized = true
	v.clamp()
}

// SetBounds enables scroll clamping.
func (v *Viewport) SetBounds(bounds Rect) {
	v.BoundsEnabled = true
	v.Bounds = bounds
	v.clamp()
}

// update advances the scroll animation. Called from Document.Update.
func (v *Viewport) update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	x, y := v.ScrollX, v.ScrollY
	if !v.scrollTween.doneX {
		val, done := v.scrollTween.tweenX.Update(dt)
		x = float64(val)
		v.scrollTween.doneX = done
	}
	if !v.scrollTween.doneY {
		val, done := v.scrollTween.tweenY.Update(dt)
		y = float64(val)
		v.scrollTween.doneY = done
	}
	if v.scrollTween.doneX && v.scrollTween.doneY {
		v.scrollTween = nil
	}
	v.setScroll(x, y)
}

func (v *Viewport) setScroll(x, y float64) {
	prevX, prevY := v.ScrollX, v.ScrollY
	v.ScrollX, v.ScrollY = x, y
	v.clamp()
	if v.ScrollX != prevX || v.ScrollY != prevY {
		v.scrolled = true
	}
}

// clamp restricts the scroll offset so the visible area stays within Bounds.
func (v *Viewport) clamp() {
	if !v.BoundsEnabled {
		return
	}
	maxX := v.Bounds.X + v.Bounds.Width - v.Width
	maxY := v.Bounds.Y + v.Bounds.Height - v.Height
	v.ScrollX = math.Max(v.Bounds.X, math.Min(v.ScrollX, math.Max(maxX, v.Bounds.X)))
	v.ScrollY = math.Max(v.Bounds.Y, math.Min(v.ScrollY, math.Max(maxY, v.Bounds.Y)))
}
