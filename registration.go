package reveal

import "time"

// Registration is the engine's record for one tracked element. The engine
// never owns the element: when the host removes it, the registration is
// pruned without touching it.
type Registration struct {
	el       *Element
	anchor   *Element
	snap     Snapshot
	state    State
	strategy strategy

	// Stagger fan-out. Children are anchored on the container and are not
	// observed themselves.
	parent       *Registration
	children     []*Registration
	staggerDelay time.Duration

	// Runtime handles, owned by the runner.
	pending Timer
	anim    Animation
	spring  *springRun

	// What the element looked like before tracking, restored on Destroy.
	savedStyle      Style
	savedTransition *Transition
	hadClass        bool

	unscrub func() // motion-path subscription, nil when unavailable

	manual  bool // created by Animate, not observed
	removed bool
}

// Element returns the tracked element.
func (r *Registration) Element() *Element { return r.el }

// Anchor returns the node whose intersection drives this registration.
// Never nil.
func (r *Registration) Anchor() *Element { return r.anchor }

// Snapshot returns the resolved configuration.
func (r *Registration) Snapshot() Snapshot { return r.snap }

// State returns the current reveal state.
func (r *Registration) State() State { return r.state }

// Strategy returns the animation strategy selected for the snapshot.
func (r *Registration) Strategy() StrategyKind { return r.strategy.kind() }

// StaggerDelay returns the fan-out delay of a stagger child, or zero.
func (r *Registration) StaggerDelay() time.Duration { return r.staggerDelay }

// Parent returns the stagger container of a child registration, or nil.
func (r *Registration) Parent() *Registration { return r.parent }

// Children returns the stagger children in document order.
func (r *Registration) Children() []*Registration { return r.children }

// Animating reports whether a delayed start, keyframe animation or spring
// is in flight.
func (r *Registration) Animating() bool {
	return r.pending != nil || r.anim != nil || r.spring != nil
}
