package reveal

import (
	"slices"
	"time"
)

// Document is the built-in Host: an element tree, a scrolling Viewport and a
// virtual clock. Nothing happens between calls to Update, which makes a
// Document fully deterministic; Run drives one from an Ebitengine loop.
//
// A Document is not safe for concurrent use.
type Document struct {
	root     *Element
	viewport *Viewport
	now      time.Duration

	// ReducedMotion is reported through PrefersReducedMotion.
	ReducedMotion bool
	// ClearColor fills the screen before Draw when run through Run.
	ClearColor Color

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	updateFn        func() error
	script          *ScriptRunner
	injectQueue     []syntheticScroll
	screenshotQueue []string

	timers   []*docTimer
	timerSeq uint64
	frames   []*docTimer

	mutationObs     []*mutationObserver
	pendingMutation []MutationRecord

	intersectionObs []*intersectionObserver

	transitions []*styleTween
	animations  []*keyframeAnimation

	scrollFns map[uint64]func()
	resizeFns map[uint64]func()
	listenSeq uint64

	debug bool
	stats debugStats
}

// NewDocument creates a document with a root element sized to the viewport.
func NewDocument(width, height float64) *Document {
	d := &Document{
		viewport:      newViewport(width, height),
		ScreenshotDir: "screenshots",
		scrollFns:     make(map[uint64]func()),
		resizeFns:     make(map[uint64]func()),
	}
	d.root = NewBox("root", 0, 0, width, height)
	d.root.doc = d
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// Viewport returns the document's viewport.
func (d *Document) Viewport() *Viewport {
	return d.viewport
}

// ViewportRect implements ScrollHost.
func (d *Document) ViewportRect() Rect {
	return d.viewport.Rect()
}

// PrefersReducedMotion implements MotionPreferenceHost.
func (d *Document) PrefersReducedMotion() bool {
	return d.ReducedMotion
}

// Now returns the document clock.
func (d *Document) Now() time.Duration {
	return d.now
}

// QuerySelector returns the first element in the document (root included)
// matching sel, or nil when sel is malformed or matches nothing.
func (d *Document) QuerySelector(sel string) *Element {
	return queryFirst(d.root, sel)
}

// Update advances the clock by dt and runs everything that became due, in
// this order: script step and injected scrolling, mutation delivery, timers, scroll animation, frame callbacks,
// transitions and keyframe animations, scroll and resize listeners,
// intersection delivery.
func (d *Document) Update(dt time.Duration) {
	var t0 time.Time
	if d.debug {
		t0 = time.Now()
	}

	d.now += dt
	if d.script != nil {
		d.script.step(d)
	}
	d.processInjected()
	d.deliverMutations()
	d.runTimers()
	d.viewport.update(seconds(dt))
	d.runFrames(dt)
	d.advanceTransitions(seconds(dt))
	d.advanceAnimations(seconds(dt))
	d.notifyViewport()
	d.deliverMutations()
	d.deliverIntersections()

	if d.debug {
		d.stats.updateTime = time.Since(t0)
		d.stats.transitions = len(d.transitions)
		d.stats.animations = len(d.animations)
		d.stats.timers = len(d.timers)
		d.debugLog()
	}
}

// Advance calls Update repeatedly in fixed steps until total has elapsed.
// Handy in tests and tools that need to simulate wall time.
func (d *Document) Advance(total, step time.Duration) {
	if step <= 0 {
		panic("reveal: Advance step must be positive")
	}
	for total > 0 {
		dt := min(step, total)
		d.Update(dt)
		total -= dt
	}
}

// SetUpdateFunc sets a callback Run calls once per tick before Update.
// Returning an error stops the game loop.
func (d *Document) SetUpdateFunc(fn func() error) {
	d.updateFn = fn
}

// SetDebugMode enables or disables per-update timing logs.
func (d *Document) SetDebugMode(enabled bool) {
	d.debug = enabled
}

// --- Timers ---

type docTimer struct {
	due     time.Duration
	seq     uint64
	fn      func()
	frameFn func(time.Duration)
	done    bool
}

func (t *docTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// AfterFunc implements Scheduler. A zero or negative delay fires on the next
// Update.
func (d *Document) AfterFunc(delay time.Duration, fn func()) Timer {
	d.timerSeq++
	t := &docTimer{due: d.now + max(delay, 0), seq: d.timerSeq, fn: fn}
	d.timers = append(d.timers, t)
	return t
}

// runTimers fires every due timer in (due, creation) order. Timers created
// by a callback fire in the same pass if they are already due.
func (d *Document) runTimers() {
	for {
		next := -1
		for i, t := range d.timers {
			if t.done || t.due > d.now {
				continue
			}
			if next < 0 || t.due < d.timers[next].due ||
				(t.due == d.timers[next].due && t.seq < d.timers[next].seq) {
				next = i
			}
		}
		if next < 0 {
			break
		}
		t := d.timers[next]
		t.done = true
		t.fn()
	}
	d.timers = slices.DeleteFunc(d.timers, func(t *docTimer) bool { return t.done })
}

// RequestFrame implements Host. Callbacks requested during a frame run on
// the following one.
func (d *Document) RequestFrame(fn func(dt time.Duration)) Timer {
	t := &docTimer{frameFn: fn}
	d.frames = append(d.frames, t)
	return t
}

func (d *Document) runFrames(dt time.Duration) {
	batch := d.frames
	d.frames = nil
	for _, t := range batch {
		if t.done {
			continue
		}
		t.done = true
		t.frameFn(dt)
	}
}

// --- Mutations ---

type mutationObserver struct {
	doc  *Document
	root *Element
	fn   func([]MutationRecord)
	done bool
}

func (o *mutationObserver) Disconnect() {
	if o.done {
		return
	}
	o.done = true
	o.doc.mutationObs = slices.DeleteFunc(o.doc.mutationObs, func(m *mutationObserver) bool { return m == o })
}

// ObserveMutations implements Host. Records are queued as the tree changes
// and delivered at the start and end of each Update.
func (d *Document) ObserveMutations(root *Element, fn func([]MutationRecord)) Observer {
	o := &mutationObserver{doc: d, root: root, fn: fn}
	d.mutationObs = append(d.mutationObs, o)
	return o
}

func (d *Document) recordMutation(rec MutationRecord) {
	if len(d.mutationObs) == 0 {
		return
	}
	d.pendingMutation = append(d.pendingMutation, rec)
}

func (d *Document) deliverMutations() {
	if len(d.pendingMutation) == 0 {
		return
	}
	pending := d.pendingMutation
	d.pendingMutation = nil
	for _, o := range slices.Clone(d.mutationObs) {
		if o.done {
			continue
		}
		var recs []MutationRecord
		for _, r := range pending {
			if o.root.Contains(r.Target) {
				recs = append(recs, r)
			}
		}
		if len(recs) > 0 {
			o.fn(recs)
		}
	}
}

// --- Scroll and resize ---

// OnScroll implements ScrollHost.
func (d *Document) OnScroll(fn func()) (cancel func()) {
	d.listenSeq++
	id := d.listenSeq
	d.scrollFns[id] = fn
	return func() { delete(d.scrollFns, id) }
}

// OnResize implements ResizeHost.
func (d *Document) OnResize(fn func()) (cancel func()) {
	d.listenSeq++
	id := d.listenSeq
	d.resizeFns[id] = fn
	return func() { delete(d.resizeFns, id) }
}

func (d *Document) notifyViewport() {
	v := d.viewport
	if v.resized {
		v.resized = false
		d.root.Width, d.root.Height = max(d.root.Width, v.Width), max(d.root.Height, v.Height)
		callListeners(d.resizeFns)
	}
	if v.scrolled {
		v.scrolled = false
		callListeners(d.scrollFns)
	}
}

// callListeners calls fns in registration order.
func callListeners(fns map[uint64]func()) {
	ids := make([]uint64, 0, len(fns))
	for id := range fns {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := fns[id]; ok {
			fn()
		}
	}
}
