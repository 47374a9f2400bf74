package reveal

import (
	"time"

	"go.uber.org/zap"
)

// TimelineStep is one Animate call of a timeline. Target wins over
// Selector; a selector is looked up when the step fires.
type TimelineStep struct {
	Target   *Element
	Selector string
	Options  AnimateOptions
	// Offset shifts the step relative to the end of the previous one.
	// Negative values overlap.
	Offset time.Duration
}

// TimelineOptions describe a timeline.
type TimelineOptions struct {
	Steps []TimelineStep
	// Gap is inserted between consecutive steps, and between loops.
	Gap  time.Duration
	Loop bool
}

// Timeline schedules a sequence of Animate calls. Each step starts when the
// previous one's delay and duration have elapsed, plus Gap and the step's
// Offset.
type Timeline struct {
	e       *Engine
	name    string
	steps   []TimelineStep
	at      []time.Duration
	total   time.Duration
	gap     time.Duration
	loop    bool
	timers  []Timer
	running bool
}

// Timeline creates and starts the named timeline, stopping any previous
// timeline with the same name. On an inactive engine the timeline is
// returned stopped.
func (e *Engine) Timeline(name string, opts TimelineOptions) *Timeline {
	if old := e.timelines[name]; old != nil {
		old.Stop()
	}
	t := &Timeline{
		e:     e,
		name:  name,
		steps: opts.Steps,
		gap:   max(opts.Gap, 0),
		loop:  opts.Loop,
	}
	t.layout()
	if !e.active() {
		return t
	}
	e.timelines[name] = t
	t.start()
	return t
}

// layout computes the start offset of every step.
func (t *Timeline) layout() {
	t.at = make([]time.Duration, len(t.steps))
	var end time.Duration
	for i, s := range t.steps {
		at := s.Offset
		if i > 0 {
			at += end + t.gap
		}
		at = max(at, 0)
		t.at[i] = at
		end = at + t.span(s)
	}
	t.total = end
}

// span returns the delay plus duration a step will run with.
func (t *Timeline) span(s TimelineStep) time.Duration {
	el := s.Target
	if el == nil && t.e.host != nil {
		el = queryFirst(t.e.host.Root(), s.Selector)
	}
	if el == nil {
		d, delay := t.e.cfg.Duration, t.e.cfg.Delay
		if s.Options.Duration > 0 {
			d = s.Options.Duration
		}
		if s.Options.Delay > 0 {
			delay = s.Options.Delay
		}
		return delay + d
	}
	snap := t.e.snapshotFor(el, s.Options)
	return snap.Delay + snap.Duration
}

func (t *Timeline) start() {
	t.running = true
	t.timers = t.timers[:0]
	for i := range t.steps {
		t.timers = append(t.timers, t.e.host.AfterFunc(t.at[i], func() { t.fire(i) }))
	}
	// A zero-length loop would refire within the same update.
	if t.loop && t.total+t.gap > 0 {
		t.timers = append(t.timers, t.e.host.AfterFunc(t.total+t.gap, t.start))
	}
}

func (t *Timeline) fire(i int) {
	s := t.steps[i]
	el := s.Target
	if el == nil {
		el = queryFirst(t.e.host.Root(), s.Selector)
	}
	if el == nil {
		t.e.log.Debug("timeline step has no target",
			zap.String("timeline", t.name),
			zap.Int("step", i),
			zap.String("selector", s.Selector),
		)
		return
	}
	t.e.Animate(el, s.Options)
}

// Stop cancels every step not yet fired.
func (t *Timeline) Stop() {
	for _, tm := range t.timers {
		tm.Stop()
	}
	t.timers = nil
	t.running = false
	if t.e.timelines[t.name] == t {
		delete(t.e.timelines, t.name)
	}
}

// Name returns the timeline name.
func (t *Timeline) Name() string { return t.name }

// Offsets returns the start offset of each step.
func (t *Timeline) Offsets() []time.Duration {
	return append([]time.Duration(nil), t.at...)
}

// Duration returns the time from start to the end of the last step.
func (t *Timeline) Duration() time.Duration { return t.total }

// Running reports whether the timeline has been started and not stopped.
// A non-looping timeline keeps reporting true after its last step fires.
func (t *Timeline) Running() bool { return t.running }
