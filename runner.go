package reveal

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// strategy is one variant of the animation dispatch, selected once per
// snapshot.
type strategy interface {
	kind() StrategyKind
	// prepare installs what the strategy needs on the element before the
	// initial style is applied.
	prepare(r *runner, reg *Registration)
	// start drives the element to its final style. Delays are already
	// applied by the runner.
	start(r *runner, reg *Registration)
	// cancel halts anything start left running. Must be idempotent.
	cancel(r *runner, reg *Registration)
}

// runner executes reveal and reset transitions.
type runner struct {
	host      Host
	kf        KeyframeHost // nil when the host has no keyframe animation
	keyframes map[string]Keyframes
	log       *zap.Logger
	// onComplete is called when a keyframe animation or spring finishes.
	onComplete func(reg *Registration)
}

// selectStrategy picks the variant for a snapshot: keyframes when the list
// exists and the host can run it, then spring, then transition toggling.
// Stagger containers always use the stagger variant.
func (r *runner) selectStrategy(s Snapshot) strategy {
	if s.StaggerParent {
		return staggerStrategy{}
	}
	if s.Keyframes != "" && r.kf != nil {
		if _, ok := r.keyframes[s.Keyframes]; ok {
			return keyframeStrategy{}
		}
		r.log.Debug("keyframes unavailable, using transition", zap.String("keyframes", s.Keyframes))
	}
	if s.Spring {
		return springStrategy{}
	}
	return transitionStrategy{}
}

// prepare applies the strategy setup and the pre-reveal style with no
// animation.
func (r *runner) prepare(reg *Registration) {
	reg.strategy.prepare(r, reg)
	reg.el.SetStyleImmediate(reg.snap.Initial)
}

// reveal drives reg to its entered state after the snapshot delay (or the
// stagger delay for stagger children). Stagger containers reveal at once.
func (r *runner) reveal(reg *Registration) {
	r.cancel(reg)
	if reg.snap.StaggerParent {
		r.begin(reg)
		r.stagger(reg, reg.children)
		return
	}
	delay := reg.snap.Delay
	if reg.parent != nil {
		delay = reg.staggerDelay
	}
	if delay <= 0 {
		r.begin(reg)
		return
	}
	reg.pending = r.host.AfterFunc(delay, func() {
		reg.pending = nil
		if reg.removed || !r.connected(reg.el) {
			return
		}
		r.begin(reg)
	})
}

func (r *runner) begin(reg *Registration) {
	reg.el.AddClass(reg.snap.Class)
	reg.strategy.start(r, reg)
}

// stagger reveals children in document order; each child waits for its own
// stagger delay.
func (r *runner) stagger(container *Registration, children []*Registration) {
	for _, c := range children {
		if c.removed {
			continue
		}
		r.reveal(c)
	}
}

// reset restores the pre-reveal state. Elements with a transition
// declaration animate back; the others jump.
func (r *runner) reset(reg *Registration) {
	r.cancel(reg)
	for _, c := range reg.children {
		if !c.removed {
			r.reset(c)
		}
	}
	reg.el.RemoveClass(reg.snap.Class)
	reg.el.SetStyle(reg.snap.Initial)
}

// finish applies the terminal style with no animation at all.
func (r *runner) finish(reg *Registration) {
	r.cancel(reg)
	reg.el.SetTransition(nil)
	reg.el.AddClass(reg.snap.Class)
	reg.el.SetStyleImmediate(reg.snap.Final)
	for _, c := range reg.children {
		if !c.removed {
			r.finish(c)
		}
	}
}

// cancel stops the pending delay and whatever the strategy left running.
func (r *runner) cancel(reg *Registration) {
	if reg.pending != nil {
		reg.pending.Stop()
		reg.pending = nil
	}
	reg.strategy.cancel(r, reg)
}

// --- transition ---

// transitionStrategy toggles the style and lets the element's transition
// declaration animate the change.
type transitionStrategy struct{}

func (transitionStrategy) kind() StrategyKind { return StrategyTransition }

func (transitionStrategy) prepare(r *runner, reg *Registration) {
	reg.el.SetTransition(&Transition{Duration: reg.snap.Duration, Easing: reg.snap.Easing})
}

func (transitionStrategy) start(r *runner, reg *Registration) {
	reg.el.SetStyle(reg.snap.Final)
}

func (transitionStrategy) cancel(*runner, *Registration) {}

// --- keyframes ---

// keyframeStrategy makes the element visible and runs its keyframe list on
// top, keeping the cancellable handle until the animation completes.
type keyframeStrategy struct{}

func (keyframeStrategy) kind() StrategyKind { return StrategyKeyframes }

func (keyframeStrategy) prepare(r *runner, reg *Registration) {
	reg.el.SetTransition(&Transition{Duration: reg.snap.Duration, Easing: reg.snap.Easing})
}

func (keyframeStrategy) start(r *runner, reg *Registration) {
	frames, ok := r.keyframes[reg.snap.Keyframes]
	if !ok || r.kf == nil {
		transitionStrategy{}.start(r, reg)
		return
	}
	reg.el.SetStyleImmediate(reg.snap.Final)
	// Hosts may finish synchronously, before Animate returns.
	finished := false
	anim := r.kf.Animate(reg.el, frames, Timing{Duration: reg.snap.Duration, Easing: reg.snap.Easing}, func() {
		finished = true
		reg.anim = nil
		r.complete(reg)
	})
	if !finished {
		reg.anim = anim
	}
}

func (keyframeStrategy) cancel(r *runner, reg *Registration) {
	if reg.anim != nil {
		reg.anim.Cancel()
		reg.anim = nil
	}
}

// --- spring ---

// springStrategy integrates a spring from 0 to 1 at a fixed timestep on
// frame callbacks and interpolates the style by its position.
type springStrategy struct{}

func (springStrategy) kind() StrategyKind { return StrategySpring }

func (springStrategy) prepare(r *runner, reg *Registration) {
	reg.el.SetTransition(nil)
}

func (springStrategy) start(r *runner, reg *Registration) {
	sr := &springRun{spring: Spring{
		Stiffness: reg.snap.Stiffness,
		Damping:   reg.snap.Damping,
		Target:    1,
	}}
	reg.spring = sr
	reg.el.SetStyleImmediate(reg.snap.Initial)

	var step func(dt time.Duration)
	step = func(dt time.Duration) {
		sr.frame = nil
		if reg.spring != sr {
			return
		}
		if reg.removed || !r.connected(reg.el) {
			reg.spring = nil
			return
		}
		sr.acc += dt
		done := false
		for sr.acc >= SpringStep && !done {
			done = sr.spring.Step(SpringStep.Seconds())
			sr.acc -= SpringStep
		}
		if done {
			reg.spring = nil
			reg.el.SetStyleImmediate(reg.snap.Final)
			r.complete(reg)
			return
		}
		reg.el.SetStyleImmediate(lerpStyle(reg.snap.Initial, reg.snap.Final, math.Max(-1, math.Min(2, sr.spring.Position))))
		sr.frame = r.host.RequestFrame(step)
	}
	sr.frame = r.host.RequestFrame(step)
}

func (springStrategy) cancel(r *runner, reg *Registration) {
	if reg.spring != nil {
		reg.spring.stop()
		reg.spring = nil
	}
}

// --- stagger ---

// staggerStrategy shows the container at once; its children carry the
// animation.
type staggerStrategy struct{}

func (staggerStrategy) kind() StrategyKind { return StrategyStagger }

func (staggerStrategy) prepare(r *runner, reg *Registration) {
	reg.el.SetTransition(nil)
}

func (staggerStrategy) start(r *runner, reg *Registration) {
	reg.el.SetStyleImmediate(reg.snap.Final)
}

func (staggerStrategy) cancel(*runner, *Registration) {}

func (r *runner) connected(el *Element) bool {
	return r.host.Root().Contains(el)
}

func (r *runner) complete(reg *Registration) {
	if r.onComplete != nil {
		r.onComplete(reg)
	}
}
