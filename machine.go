package reveal

import (
	"fmt"

	"go.uber.org/zap"
)

// Hooks are optional user callbacks. A hook that returns an error or panics
// is logged and otherwise ignored.
type Hooks struct {
	// OnReveal runs after a registration transitions to revealed.
	OnReveal func(*Registration) error
	// OnReset runs after a registration transitions to reset.
	OnReset func(*Registration) error
	// OnComplete runs when a keyframe animation or spring run finishes.
	OnComplete func(*Registration) error
}

// machine is the reveal state machine:
//
//	pending -> revealed -> reset -> revealed ...
//
// It is driven by visibility events and is idempotent under repeats.
type machine struct {
	run   *runner
	det   *detector
	hooks Hooks
	sink  EventSink
	log   *zap.Logger
}

// handle applies one visibility event to reg.
func (m *machine) handle(reg *Registration, visible bool) {
	if reg.removed {
		return
	}
	switch {
	case visible && reg.state != StateRevealed:
		m.reveal(reg)
		if reg.snap.Once && m.det != nil {
			m.det.unobserve(reg)
		}
	case !visible && reg.state == StateRevealed && !reg.snap.Once && reg.snap.Mirror:
		m.reset(reg)
	}
}

func (m *machine) reveal(reg *Registration) {
	setState(reg, StateRevealed)
	m.run.reveal(reg)
	m.emit(EventReveal, reg)
	m.call("reveal", m.hooks.OnReveal, reg)
}

func (m *machine) reset(reg *Registration) {
	setState(reg, StateReset)
	m.run.reset(reg)
	m.emit(EventReset, reg)
	m.call("reset", m.hooks.OnReset, reg)
}

func (m *machine) complete(reg *Registration) {
	m.emit(EventComplete, reg)
	m.call("complete", m.hooks.OnComplete, reg)
}

// setState moves reg and its stagger children together.
func setState(reg *Registration, s State) {
	reg.state = s
	for _, c := range reg.children {
		if !c.removed {
			c.state = s
		}
	}
}

func (m *machine) emit(t EventType, reg *Registration) {
	if m.sink == nil {
		return
	}
	ev := Event{
		Type:      t,
		ElementID: reg.el.ID,
		Effect:    reg.snap.Effect,
		State:     reg.state,
		Time:      m.run.host.Now(),
	}
	if err := safeCall(func() error { m.sink.EmitEvent(ev); return nil }); err != nil {
		m.log.Warn("event sink failed", zap.Stringer("event", t), zap.Error(err))
	}
}

// call runs a user hook behind a recover boundary.
func (m *machine) call(name string, fn func(*Registration) error, reg *Registration) {
	if fn == nil {
		return
	}
	if err := safeCall(func() error { return fn(reg) }); err != nil {
		m.log.Warn("hook failed",
			zap.String("hook", name),
			zap.Uint32("element", reg.el.ID),
			zap.Error(err),
		)
	}
}

// safeCall converts a panic in fn into an error.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
