package reveal

import (
	"slices"

	"github.com/tanema/gween"
	"go.uber.org/zap"
)

// styleTween animates an element's style from one value to another, the way
// a CSS transition does after a style change. A single gween tween drives
// the eased progress; every Style field is interpolated from it. If the
// element is disposed or detached, the tween stops immediately.
type styleTween struct {
	target   *Element
	from, to Style
	tween    *gween.Tween
	delay    float32
	Done     bool
}

// Update advances the tween by dt seconds and writes the interpolated style.
func (t *styleTween) Update(dt float32) {
	if t.Done {
		return
	}
	if t.target.IsDisposed() || !t.target.IsConnected() {
		t.Done = true
		return
	}
	if t.delay > 0 {
		t.delay -= dt
		if t.delay > 0 {
			return
		}
		dt = -t.delay
		t.delay = 0
	}
	p, finished := t.tween.Update(dt)
	if finished {
		t.target.style = t.to
		t.Done = true
		return
	}
	t.target.style = lerpStyle(t.from, t.to, float64(p))
}

// startTransition replaces any transition running on el with one toward to.
// A transition with zero duration and delay applies at once.
func (d *Document) startTransition(el *Element, to Style) {
	d.cancelTransition(el)
	tr := el.transition
	if tr.Duration <= 0 && tr.Delay <= 0 {
		el.style = to
		return
	}
	d.transitions = append(d.transitions, &styleTween{
		target: el,
		from:   el.style,
		to:     to,
		tween:  gween.New(0, 1, seconds(tr.Duration), easingOrLinear(tr.Easing)),
		delay:  seconds(tr.Delay),
	})
}

func (d *Document) cancelTransition(el *Element) {
	for _, t := range d.transitions {
		if t.target == el {
			t.Done = true
		}
	}
}

// Transitioning reports whether a transition is in flight on el.
func (d *Document) Transitioning(el *Element) bool {
	for _, t := range d.transitions {
		if t.target == el && !t.Done {
			return true
		}
	}
	return false
}

func (d *Document) advanceTransitions(dt float32) {
	for _, t := range d.transitions {
		t.Update(dt)
	}
	d.transitions = slices.DeleteFunc(d.transitions, func(t *styleTween) bool { return t.Done })
}

// keyframeAnimation samples a keyframe list over time. Each segment between
// two frames is a gween tween in a sequence, so the easing applies per
// segment like a CSS animation-timing-function.
type keyframeAnimation struct {
	doc      *Document
	target   *Element
	frames   Keyframes
	seq      *gween.Sequence
	onFinish func()
	done     bool
}

// Animate implements KeyframeHost. Invalid keyframe lists finish at once
// without touching the element.
func (d *Document) Animate(el *Element, frames Keyframes, timing Timing, onFinish func()) Animation {
	a := &keyframeAnimation{doc: d, target: el, frames: frames, onFinish: onFinish}
	if err := frames.Validate(); err != nil {
		Logger().Debug("keyframes rejected", zap.Error(err))
		a.done = true
		if onFinish != nil {
			onFinish()
		}
		return a
	}
	fn := easingOrLinear(timing.Easing)
	total := seconds(timing.Duration)
	tweens := make([]*gween.Tween, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		span := float32(frames[i].Offset-frames[i-1].Offset) * total
		tweens = append(tweens, gween.New(0, 1, span, fn))
	}
	a.seq = gween.NewSequence(tweens...)
	first := frames[0].Style
	el.override = &first
	d.animations = append(d.animations, a)
	return a
}

// Cancel implements Animation.
func (a *keyframeAnimation) Cancel() {
	if a.done {
		return
	}
	a.done = true
	a.target.override = nil
}

// Update advances the animation by dt seconds.
func (a *keyframeAnimation) Update(dt float32) {
	if a.done {
		return
	}
	if a.target.IsDisposed() || !a.target.IsConnected() {
		a.Cancel()
		return
	}
	p, _, complete := a.seq.Update(dt)
	if complete {
		a.done = true
		a.target.override = nil
		if a.onFinish != nil {
			a.onFinish()
		}
		return
	}
	i := min(a.seq.Index(), len(a.frames)-2)
	s := lerpStyle(a.frames[i].Style, a.frames[i+1].Style, float64(p))
	a.target.override = &s
}

func (d *Document) advanceAnimations(dt float32) {
	for _, a := range slices.Clone(d.animations) {
		a.Update(dt)
	}
	d.animations = slices.DeleteFunc(d.animations, func(a *keyframeAnimation) bool { return a.done })
}
