package reveal

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const tick = 16 * time.Millisecond

// box adds a 200x100 element at y to the document root. attrs are
// name/value pairs.
func box(d *Document, y float64, attrs ...string) *Element {
	el := NewBox("div", 0, y, 200, 100)
	for i := 0; i+1 < len(attrs); i += 2 {
		el.SetAttr(attrs[i], attrs[i+1])
	}
	d.Root().AddChild(el)
	return el
}

// bareHost exposes only the required Host methods of a Document, hiding
// every optional capability.
type bareHost struct{ d *Document }

func (h bareHost) Now() time.Duration                          { return h.d.Now() }
func (h bareHost) AfterFunc(d time.Duration, fn func()) Timer { return h.d.AfterFunc(d, fn) }
func (h bareHost) Root() *Element                              { return h.d.Root() }
func (h bareHost) RequestFrame(fn func(time.Duration)) Timer   { return h.d.RequestFrame(fn) }
func (h bareHost) ObserveMutations(root *Element, fn func([]MutationRecord)) Observer {
	return h.d.ObserveMutations(root, fn)
}

type recordingSink struct{ events []Event }

func (s *recordingSink) EmitEvent(e Event) { s.events = append(s.events, e) }

type hookCounts struct{ reveal, reset, complete int }

func (c *hookCounts) hooks() Hooks {
	return Hooks{
		OnReveal:   func(*Registration) error { c.reveal++; return nil },
		OnReset:    func(*Registration) error { c.reset++; return nil },
		OnComplete: func(*Registration) error { c.complete++; return nil },
	}
}

// --- Init ---

func TestInitPreparesInitialStyle(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 2000, AttrEffect, "fade-up")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	reg := e.Registration(el)
	if reg == nil {
		t.Fatal("element not registered")
	}
	if reg.State() != StatePending {
		t.Errorf("State = %v, want pending", reg.State())
	}
	if reg.Strategy() != StrategyTransition {
		t.Errorf("Strategy = %v, want transition", reg.Strategy())
	}
	if el.Style() != reg.Snapshot().Initial {
		t.Errorf("Style = %+v, want the initial style", el.Style())
	}
	if tr := el.Transition(); tr == nil || tr.Duration != 400*time.Millisecond || tr.Easing != "ease" {
		t.Errorf("Transition = %+v, want 400ms ease", tr)
	}
	if reg.Anchor() != el {
		t.Error("Anchor should default to the element")
	}
}

func TestInitIgnoresUnmarked(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	if e.Registration(el) != nil {
		t.Error("unmarked element registered")
	}
	if len(e.Registrations()) != 0 {
		t.Errorf("Registrations = %d, want 0", len(e.Registrations()))
	}
}

func TestInitInvalidSelectorFallsBack(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade")
	cfg := DefaultConfig()
	cfg.Selector = "["

	core, logs := observer.New(zap.WarnLevel)
	e := Init(d, cfg, WithLogger(zap.New(core)))
	defer e.Destroy()

	if e.Registration(el) == nil {
		t.Error("default selector not used after a malformed one")
	}
	if logs.FilterMessage("invalid selector, using default").Len() != 1 {
		t.Error("malformed selector not logged")
	}
}

func TestInitCustomSelector(t *testing.T) {
	d := NewDocument(800, 600)
	a := box(d, 100)
	a.AddClass("reveal")
	b := box(d, 100, AttrEffect, "fade")
	cfg := DefaultConfig()
	cfg.Selector = ".reveal"

	e := Init(d, cfg)
	defer e.Destroy()
	if e.Registration(a) == nil || e.Registration(b) != nil {
		t.Error("custom selector not applied")
	}
}

// --- Reveal flow ---

func TestRevealOnScroll(t *testing.T) {
	d := NewDocument(800, 600)
	near := box(d, 100, AttrEffect, "fade-up")
	far := box(d, 2000, AttrEffect, "fade-up")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	d.Advance(3*tick, tick)
	if got := e.Registration(near).State(); got != StateRevealed {
		t.Fatalf("near State = %v, want revealed", got)
	}
	if got := e.Registration(far).State(); got != StatePending {
		t.Fatalf("far State = %v, want pending", got)
	}
	if !d.Transitioning(near) {
		t.Error("near element should be transitioning")
	}

	d.Advance(500*time.Millisecond, tick)
	if near.Style() != Visible() {
		t.Errorf("near Style = %+v, want Visible()", near.Style())
	}

	d.Viewport().ScrollTo(0, 1700)
	d.Update(tick)
	if got := e.Registration(far).State(); got != StateRevealed {
		t.Errorf("far State = %v, want revealed after scrolling", got)
	}
}

func TestRevealRespectsOffset(t *testing.T) {
	d := NewDocument(800, 600)
	// Bottom edge of the detection region is at 600-120 = 480.
	el := box(d, 500, AttrEffect, "fade")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	d.Advance(100*time.Millisecond, tick)
	if got := e.Registration(el).State(); got != StatePending {
		t.Fatalf("State = %v, want pending inside the offset band", got)
	}
	d.Viewport().ScrollTo(0, 50)
	d.Update(tick)
	if got := e.Registration(el).State(); got != StateRevealed {
		t.Errorf("State = %v, want revealed", got)
	}
}

func TestRevealPlacementCenter(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 400, AttrEffect, "fade", AttrOffset, "0", AttrAnchorPlacement, "top-center")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	d.Advance(100*time.Millisecond, tick)
	if got := e.Registration(el).State(); got != StatePending {
		t.Fatalf("State = %v, want pending below the center line", got)
	}
	d.Viewport().ScrollTo(0, 150)
	d.Update(tick)
	if got := e.Registration(el).State(); got != StateRevealed {
		t.Errorf("State = %v, want revealed once the top crosses the center", got)
	}
}

func TestRevealDelay(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade", AttrDelay, "200")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	d.Advance(3*tick, tick)
	reg := e.Registration(el)
	if reg.State() != StateRevealed {
		t.Fatalf("State = %v, want revealed", reg.State())
	}
	if !reg.Animating() || d.Transitioning(el) {
		t.Fatal("delay should be pending with no transition yet")
	}
	d.Advance(200*time.Millisecond, tick)
	if !d.Transitioning(el) {
		t.Error("transition should start after the delay")
	}
}

func TestOnceStability(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade", AttrOnce, "true", AttrMirror, "true")
	var c hookCounts
	e := Init(d, DefaultConfig(), WithHooks(c.hooks()))
	defer e.Destroy()

	d.Advance(500*time.Millisecond, tick)
	reg := e.Registration(el)
	if e.det.observed(reg) {
		t.Error("once registration still observed after reveal")
	}
	for range 3 {
		d.Viewport().ScrollTo(0, 2000)
		d.Advance(100*time.Millisecond, tick)
		d.Viewport().ScrollTo(0, 0)
		d.Advance(100*time.Millisecond, tick)
	}
	if reg.State() != StateRevealed {
		t.Errorf("State = %v, want revealed", reg.State())
	}
	if c.reveal != 1 || c.reset != 0 {
		t.Errorf("hooks reveal=%d reset=%d, want 1, 0", c.reveal, c.reset)
	}
	if el.Style() != Visible() {
		t.Errorf("Style = %+v, want Visible()", el.Style())
	}
}

func TestNoMirrorKeepsRevealed(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	d.Advance(500*time.Millisecond, tick)
	d.Viewport().ScrollTo(0, 2000)
	d.Advance(500*time.Millisecond, tick)
	if got := e.Registration(el).State(); got != StateRevealed {
		t.Errorf("State = %v, want revealed without mirror", got)
	}
	if el.Style() != Visible() {
		t.Errorf("Style = %+v, want Visible()", el.Style())
	}
}

func TestMirrorCycle(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "zoom-in-up", AttrMirror, "true")
	var c hookCounts
	e := Init(d, DefaultConfig(), WithHooks(c.hooks()))
	defer e.Destroy()
	reg := e.Registration(el)
	initial := reg.Snapshot().Initial

	d.Advance(500*time.Millisecond, tick)
	if el.Style() != Visible() {
		t.Fatalf("Style = %+v, want Visible() after reveal", el.Style())
	}

	d.Viewport().ScrollTo(0, 1000)
	d.Advance(500*time.Millisecond, tick)
	if reg.State() != StateReset {
		t.Fatalf("State = %v, want reset", reg.State())
	}
	if el.Style() != initial {
		t.Errorf("Style = %+v, want exactly the initial style %+v", el.Style(), initial)
	}

	d.Viewport().ScrollTo(0, 0)
	d.Advance(500*time.Millisecond, tick)
	if reg.State() != StateRevealed || el.Style() != Visible() {
		t.Errorf("State = %v, Style = %+v, want revealed and Visible()", reg.State(), el.Style())
	}
	if c.reveal != 2 || c.reset != 1 {
		t.Errorf("hooks reveal=%d reset=%d, want 2, 1", c.reveal, c.reset)
	}
}

func TestMirrorResetRemovesClass(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade", AttrMirror, "", AttrClass, "shown")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	d.Advance(100*time.Millisecond, tick)
	if !el.HasClass("shown") {
		t.Fatal("class not added on reveal")
	}
	d.Viewport().ScrollTo(0, 1000)
	d.Update(tick)
	if el.HasClass("shown") {
		t.Error("class not removed on reset")
	}
}

// --- Strategies ---

func TestStaggerDelays(t *testing.T) {
	d := NewDocument(800, 600)
	list := NewBox("ul", 0, 100, 400, 300)
	list.SetAttr(AttrEffect, "stagger").SetAttr(AttrStagger, "80")
	var items []*Element
	for i := range 3 {
		li := NewBox("li", 0, float64(i)*100, 400, 100)
		li.SetAttr(AttrChild, "")
		list.AddChild(li)
		items = append(items, li)
	}
	d.Root().AddChild(list)

	e := Init(d, DefaultConfig())
	defer e.Destroy()

	container := e.Registration(list)
	if container.Strategy() != StrategyStagger {
		t.Fatalf("Strategy = %v, want stagger", container.Strategy())
	}
	if len(container.Children()) != 3 {
		t.Fatalf("children = %d, want 3", len(container.Children()))
	}
	for i, want := range []time.Duration{0, 80 * time.Millisecond, 160 * time.Millisecond} {
		child := e.Registration(items[i])
		if child.StaggerDelay() != want {
			t.Errorf("child %d StaggerDelay = %v, want %v", i, child.StaggerDelay(), want)
		}
		if child.Parent() != container || child.Anchor() != list {
			t.Errorf("child %d not anchored on the container", i)
		}
		if items[i].Style().Opacity != 0 {
			t.Errorf("child %d not prepared", i)
		}
	}

	// Revealed on the update at 32ms.
	d.Advance(3*tick, tick)
	if list.Style() != Visible() {
		t.Errorf("container Style = %+v, want Visible() at once", list.Style())
	}
	started := func() []bool {
		return []bool{d.Transitioning(items[0]), d.Transitioning(items[1]), d.Transitioning(items[2])}
	}
	if got := started(); !got[0] || got[1] || got[2] {
		t.Errorf("at 48ms started = %v, want [true false false]", got)
	}
	d.Advance(5*tick, tick) // 128ms
	if got := started(); !got[1] || got[2] {
		t.Errorf("at 128ms started = %v, want child 1 running and child 2 waiting", got)
	}
	d.Advance(600*time.Millisecond, tick)
	for i, li := range items {
		if li.Style() != Visible() {
			t.Errorf("child %d Style = %+v, want Visible()", i, li.Style())
		}
		if e.Registration(li).State() != StateRevealed {
			t.Errorf("child %d not revealed", i)
		}
	}
}

func TestStaggerBaseDelay(t *testing.T) {
	d := NewDocument(800, 600)
	list := NewBox("ul", 0, 100, 400, 300)
	list.SetAttr(AttrEffect, "stagger").SetAttr(AttrDelay, "50")
	for range 2 {
		list.AddChild(NewBox("li", 0, 0, 10, 10).SetAttr(AttrChild, "zoom-in"))
	}
	d.Root().AddChild(list)

	e := Init(d, DefaultConfig())
	defer e.Destroy()
	children := e.Registration(list).Children()
	if children[0].StaggerDelay() != 50*time.Millisecond || children[1].StaggerDelay() != 150*time.Millisecond {
		t.Errorf("delays = %v, %v, want 50ms, 150ms", children[0].StaggerDelay(), children[1].StaggerDelay())
	}
	if children[0].Snapshot().Effect != "zoom-in" {
		t.Errorf("child Effect = %q, want zoom-in", children[0].Snapshot().Effect)
	}
}

func TestKeyframeStrategy(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "bounce")
	var c hookCounts
	sink := &recordingSink{}
	e := Init(d, DefaultConfig(), WithHooks(c.hooks()), WithEventSink(sink))
	defer e.Destroy()

	reg := e.Registration(el)
	if reg.Strategy() != StrategyKeyframes {
		t.Fatalf("Strategy = %v, want keyframes", reg.Strategy())
	}
	d.Advance(3*tick, tick)
	if !el.HasClass("aos-bounce") {
		t.Error("class not added on reveal")
	}
	if !reg.Animating() {
		t.Error("keyframe animation should be in flight")
	}
	d.Advance(500*time.Millisecond, tick)
	if reg.Animating() {
		t.Error("keyframe animation still in flight after its duration")
	}
	if c.complete != 1 {
		t.Errorf("complete hooks = %d, want 1", c.complete)
	}
	if el.Style() != Visible() {
		t.Errorf("Style = %+v, want Visible()", el.Style())
	}
	if n := len(sink.events); n != 2 || sink.events[0].Type != EventReveal || sink.events[1].Type != EventComplete {
		t.Errorf("events = %+v, want reveal then complete", sink.events)
	}
}

func TestKeyframeFallbackWithoutHost(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 2000, AttrEffect, "bounce")
	e := Init(bareHost{d}, DefaultConfig())
	defer e.Destroy()

	if got := e.Registration(el).Strategy(); got != StrategyTransition {
		t.Errorf("Strategy = %v, want transition without keyframe support", got)
	}
}

func TestNoIntersectionHostRevealsAll(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 5000, AttrEffect, "fade")
	e := Init(bareHost{d}, DefaultConfig())
	defer e.Destroy()

	d.Advance(3*tick, tick)
	if got := e.Registration(el).State(); got != StateRevealed {
		t.Errorf("State = %v, want revealed without intersection support", got)
	}
	if e.ReducedMotion() {
		t.Error("bare host cannot report reduced motion")
	}
}

func TestSpringStrategy(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "spring-up")
	var c hookCounts
	e := Init(d, DefaultConfig(), WithHooks(c.hooks()))
	defer e.Destroy()

	reg := e.Registration(el)
	if reg.Strategy() != StrategySpring {
		t.Fatalf("Strategy = %v, want spring", reg.Strategy())
	}
	if el.Transition() != nil {
		t.Error("spring elements should carry no transition")
	}
	d.Advance(5*tick, tick)
	if !reg.Animating() {
		t.Fatal("spring should be running")
	}
	if o := el.Style().Opacity; o <= 0 || o >= 1 {
		t.Errorf("Opacity = %v, want between 0 and 1 mid-spring", o)
	}
	d.Advance(3*time.Second, tick)
	if reg.Animating() {
		t.Error("spring still running")
	}
	if el.Style() != Visible() {
		t.Errorf("Style = %+v, want Visible() at rest", el.Style())
	}
	if c.complete != 1 {
		t.Errorf("complete hooks = %d, want 1", c.complete)
	}
}

func TestSpringStiffAttributesStayBounded(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade", AttrStiffness, "100000", AttrDamping, "1")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	if got := e.Registration(el).Strategy(); got != StrategySpring {
		t.Fatalf("Strategy = %v, want spring", got)
	}
	for i := range 100 {
		d.Update(tick)
		if o := el.Style().Opacity; o < -1 || o > 2 {
			t.Fatalf("update %d: Opacity = %v, want bounded", i, o)
		}
	}
}

// --- Reduced motion ---

func TestReducedMotion(t *testing.T) {
	d := NewDocument(800, 600)
	d.ReducedMotion = true
	el := box(d, 3000, AttrEffect, "fade-up")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	if !e.ReducedMotion() {
		t.Fatal("ReducedMotion = false, want true")
	}
	reg := e.Registration(el)
	if reg.State() != StateRevealed {
		t.Errorf("State = %v, want revealed", reg.State())
	}
	if el.Style() != Visible() || el.Transition() != nil {
		t.Errorf("Style = %+v Transition = %+v, want Visible() with no transition", el.Style(), el.Transition())
	}
	d.Update(tick)
	if d.Transitioning(el) || reg.Animating() {
		t.Error("reduced motion should not animate")
	}
}

func TestReducedMotionIgnored(t *testing.T) {
	d := NewDocument(800, 600)
	d.ReducedMotion = true
	box(d, 3000, AttrEffect, "fade-up")
	cfg := DefaultConfig()
	cfg.RespectReducedMotion = false
	e := Init(d, cfg)
	defer e.Destroy()
	if e.ReducedMotion() {
		t.Error("ReducedMotion = true with RespectReducedMotion off")
	}
}

// --- Mutations ---

func TestBurstInsertSingleDetectorFlush(t *testing.T) {
	d := NewDocument(800, 600)
	e := Init(d, DefaultConfig())
	defer e.Destroy()
	d.Advance(100*time.Millisecond, tick)

	var els []*Element
	for i := range 50 {
		if i == 25 {
			d.Advance(2*tick, tick)
		}
		els = append(els, box(d, float64(i%5)*80, AttrEffect, "fade"))
	}
	d.Advance(300*time.Millisecond, tick)

	if got := e.DetectorFlushes(); got != 1 {
		t.Errorf("DetectorFlushes = %d, want 1 for one burst", got)
	}
	for i, el := range els {
		reg := e.Registration(el)
		if reg == nil || reg.State() != StateRevealed {
			t.Fatalf("element %d not revealed", i)
		}
	}
}

func TestInsertedNestedElementsTracked(t *testing.T) {
	d := NewDocument(800, 600)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	section := NewBox("section", 0, 0, 800, 400)
	inner := NewBox("div", 0, 50, 100, 100).SetAttr(AttrEffect, "fade")
	section.AddChild(inner)
	d.Root().AddChild(section)
	d.Advance(200*time.Millisecond, tick)

	if reg := e.Registration(inner); reg == nil || reg.State() != StateRevealed {
		t.Error("element inside an inserted subtree not tracked")
	}
}

func TestRemovalPrunes(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	d.Advance(5*tick, tick)
	snapshot := el.Style()
	el.RemoveFromParent()
	d.Advance(200*time.Millisecond, tick)

	if e.Registration(el) != nil {
		t.Error("registration not pruned")
	}
	if el.Style() != snapshot {
		t.Errorf("Style = %+v, want the detached element untouched", el.Style())
	}
}

func TestDisposePrunesDescendants(t *testing.T) {
	d := NewDocument(800, 600)
	wrap := NewBox("section", 0, 1000, 400, 300)
	inner := NewBox("div", 0, 0, 200, 100).SetAttr(AttrEffect, "fade")
	wrap.AddChild(inner)
	d.Root().AddChild(wrap)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	d.Advance(100*time.Millisecond, tick)
	reg := e.Registration(inner)
	if reg == nil || !e.det.observed(reg) {
		t.Fatal("nested element not tracked")
	}
	wrap.Dispose()
	d.Advance(200*time.Millisecond, tick)

	if e.Registration(inner) != nil {
		t.Error("descendant of a disposed element still registered")
	}
	if n := len(e.Registrations()); n != 0 {
		t.Errorf("Registrations = %d, want 0", n)
	}
	if e.det.observed(reg) {
		t.Error("descendant anchor still observed")
	}
}

func TestRemovalCancelsPendingDelay(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade", AttrDelay, "200", AttrClass, "shown")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	d.Advance(3*tick, tick)
	reg := e.Registration(el)
	el.RemoveFromParent()
	d.Advance(400*time.Millisecond, tick)

	if reg.Animating() {
		t.Error("pending delay not cancelled")
	}
	if el.HasClass("shown") || el.Style().Opacity != 0 {
		t.Error("delayed reveal ran on a removed element")
	}
}

func TestReinsertedElementTrackedAgain(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	d.Advance(100*time.Millisecond, tick)
	first := e.Registration(el)
	el.RemoveFromParent()
	d.Update(tick)
	d.Root().AddChild(el)
	d.Advance(200*time.Millisecond, tick)

	second := e.Registration(el)
	if second == nil || second == first {
		t.Fatal("reinserted element should get a fresh registration")
	}
	if second.State() != StateRevealed {
		t.Errorf("State = %v, want revealed", second.State())
	}
}

// --- Hooks ---

func TestHookFailuresLogged(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade", AttrMirror, "true")
	core, logs := observer.New(zap.WarnLevel)
	e := Init(d, DefaultConfig(),
		WithLogger(zap.New(core)),
		WithHooks(Hooks{
			OnReveal: func(*Registration) error { panic("boom") },
			OnReset:  func(*Registration) error { return errors.New("nope") },
		}),
	)
	defer e.Destroy()

	d.Advance(100*time.Millisecond, tick)
	if got := e.Registration(el).State(); got != StateRevealed {
		t.Fatalf("State = %v, want revealed despite the panicking hook", got)
	}
	d.Viewport().ScrollTo(0, 1000)
	d.Update(tick)

	failed := logs.FilterMessage("hook failed").All()
	if len(failed) != 2 {
		t.Fatalf("hook failures logged = %d, want 2", len(failed))
	}
	if failed[0].ContextMap()["hook"] != "reveal" || failed[1].ContextMap()["hook"] != "reset" {
		t.Errorf("logged hooks = %v, %v, want reveal, reset",
			failed[0].ContextMap()["hook"], failed[1].ContextMap()["hook"])
	}
}

func TestEventSinkReceivesEvents(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade", AttrMirror, "true")
	sink := &recordingSink{}
	e := Init(d, DefaultConfig(), WithEventSink(sink))
	defer e.Destroy()

	d.Advance(100*time.Millisecond, tick)
	d.Viewport().ScrollTo(0, 1000)
	d.Update(tick)

	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	rev, rst := sink.events[0], sink.events[1]
	if rev.Type != EventReveal || rev.ElementID != el.ID || rev.Effect != "fade" || rev.State != StateRevealed {
		t.Errorf("reveal event = %+v", rev)
	}
	if rev.Time != 2*tick {
		t.Errorf("reveal Time = %v, want %v", rev.Time, 2*tick)
	}
	if rst.Type != EventReset || rst.State != StateReset {
		t.Errorf("reset event = %+v", rst)
	}
}

// --- Anchors ---

func TestAnchor(t *testing.T) {
	d := NewDocument(800, 600)
	trigger := box(d, 100, "id", "trigger")
	a := box(d, 3000, AttrEffect, "fade", AttrAnchor, "#trigger")
	b := box(d, 4000, AttrEffect, "fade", AttrAnchor, "#trigger")
	lost := box(d, 3000, AttrEffect, "fade", AttrAnchor, "#missing")
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	if e.Registration(a).Anchor() != trigger {
		t.Error("anchor not resolved")
	}
	if e.Registration(lost).Anchor() != lost {
		t.Error("missing anchor should fall back to the element")
	}
	d.Advance(100*time.Millisecond, tick)
	for _, el := range []*Element{a, b} {
		if got := e.Registration(el).State(); got != StateRevealed {
			t.Errorf("anchored element %d State = %v, want revealed", el.ID, got)
		}
	}
	if got := e.Registration(lost).State(); got != StatePending {
		t.Errorf("State = %v, want pending", got)
	}
}

// --- Public operations ---

func TestRefreshTracksNewlyMarked(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	el.SetAttr(AttrEffect, "fade")
	e.Refresh()
	if e.Registration(el) == nil {
		t.Fatal("Refresh did not track the newly marked element")
	}
	d.Advance(100*time.Millisecond, tick)
	if e.Registration(el).State() != StateRevealed {
		t.Error("refreshed element not revealed")
	}
}

func TestRefreshKeepsSnapshot(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 2000, AttrEffect, "fade", AttrDuration, "400")
	e := Init(d, DefaultConfig())
	defer e.Destroy()
	reg := e.Registration(el)

	el.SetAttr(AttrDuration, "900")
	e.Refresh()
	if e.Registration(el) != reg || reg.Snapshot().Duration != 400*time.Millisecond {
		t.Error("plain Refresh should not re-resolve")
	}

	e.Refresh(WithReresolve())
	next := e.Registration(el)
	if next == reg {
		t.Fatal("WithReresolve did not rebuild a changed registration")
	}
	if next.Snapshot().Duration != 900*time.Millisecond {
		t.Errorf("Duration = %v, want 900ms", next.Snapshot().Duration)
	}
	if el.Transition().Duration != 900*time.Millisecond {
		t.Errorf("Transition = %+v, want the new duration", el.Transition())
	}

	e.Refresh(WithReresolve())
	if e.Registration(el) != next {
		t.Error("unchanged registration rebuilt")
	}
}

func TestRefreshOnResize(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	el.SetAttr(AttrEffect, "fade")
	d.Viewport().SetSize(1024, 768)
	d.Update(tick)
	if e.Registration(el) == nil {
		t.Error("resize did not refresh")
	}
}

func TestAnimate(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 5000)
	var c hookCounts
	e := Init(d, DefaultConfig(), WithHooks(c.hooks()))
	defer e.Destroy()

	reg := e.Animate(el, AnimateOptions{Effect: "zoom-in", Duration: 200 * time.Millisecond, Easing: "linear"})
	if reg == nil {
		t.Fatal("Animate returned nil")
	}
	if reg.State() != StateRevealed || c.reveal != 1 {
		t.Errorf("State = %v, reveal hooks = %d, want revealed, 1", reg.State(), c.reveal)
	}
	if e.det.observed(reg) {
		t.Error("manual registration should not be observed")
	}
	if el.Style().Scale != 0.5 {
		t.Errorf("Scale = %v, want the initial 0.5 before any update", el.Style().Scale)
	}
	d.Advance(250*time.Millisecond, tick)
	if el.Style() != Visible() {
		t.Errorf("Style = %+v, want Visible()", el.Style())
	}

	again := e.Animate(el, AnimateOptions{Effect: "fade"})
	if again == reg || e.Registration(el) != again {
		t.Error("Animate should replace the registration")
	}
	if e.Animate(NewElement("div"), AnimateOptions{}) != nil {
		t.Error("Animate on a detached element should return nil")
	}
}

func TestScrub(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 900)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	var got []float64
	cancel := e.Scrub(el, func(p float64) { got = append(got, p) })
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("progress = %v, want [0] applied at once", got)
	}
	d.Viewport().ScrollTo(0, 600)
	d.Update(tick)
	if len(got) != 2 || got[1] != 0.5 {
		t.Errorf("progress = %v, want 0.5 after scrolling", got)
	}
	cancel()
	d.Viewport().ScrollTo(0, 900)
	d.Update(tick)
	if len(got) != 2 {
		t.Error("callback ran after cancel")
	}
}

func TestDisable(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade-up")
	cfg := DefaultConfig()
	cfg.Disable = true
	e := Init(d, cfg)

	if len(e.Registrations()) != 0 {
		t.Error("disabled engine registered elements")
	}
	if el.Style() != Visible() {
		t.Error("disabled engine touched the element")
	}
	if e.Animate(el, AnimateOptions{}) != nil {
		t.Error("Animate on a disabled engine should return nil")
	}
	if tl := e.Timeline("x", TimelineOptions{Steps: []TimelineStep{{Target: el}}}); tl.Running() {
		t.Error("timeline started on a disabled engine")
	}
	e.Refresh()
	e.Flush()
	e.Destroy()
	e.Destroy()
	if e.FrameStats() != (FrameStats{}) || e.DetectorFlushes() != 0 {
		t.Error("disabled engine reports activity")
	}
}

// --- Destroy ---

func TestDestroyRestores(t *testing.T) {
	d := NewDocument(800, 600)
	styled := box(d, 100, AttrEffect, "bounce")
	custom := opaque(func(s *Style) { s.Scale = 2 })
	styled.SetStyleImmediate(custom)
	keep := box(d, 100, AttrEffect, "fade", AttrClass, "keep")
	keep.AddClass("keep")
	declared := &Transition{Duration: time.Second}
	keep.SetTransition(declared)

	e := Init(d, DefaultConfig())
	d.Advance(100*time.Millisecond, tick)
	e.Destroy()

	if styled.Style() != custom {
		t.Errorf("Style = %+v, want the pre-tracking style", styled.Style())
	}
	if styled.HasClass("aos-bounce") || styled.Transition() != nil {
		t.Error("reveal class or transition left behind")
	}
	if !keep.HasClass("keep") {
		t.Error("class present before tracking was removed")
	}
	if keep.Transition() != declared {
		t.Error("transition declaration not restored")
	}
	if len(e.Registrations()) != 0 {
		t.Error("registry not cleared")
	}

	e.Destroy()
	d.Advance(time.Second, tick)
	if styled.Style() != custom {
		t.Error("destroyed engine kept animating")
	}
}

func TestDestroyCancelsPendingWork(t *testing.T) {
	d := NewDocument(800, 600)
	delayed := box(d, 100, AttrEffect, "fade", AttrDelay, "300")
	spring := box(d, 200, AttrEffect, "spring-in")
	late := box(d, 300, AttrEffect, "fade")
	var c hookCounts
	e := Init(d, DefaultConfig(), WithHooks(c.hooks()))

	d.Advance(5*tick, tick)
	d.Root().AddChild(NewBox("div", 0, 0, 10, 10).SetAttr(AttrEffect, "fade"))
	d.Update(tick)
	e.Destroy()
	d.Advance(2*time.Second, tick)

	if delayed.Style() != Visible() || spring.Style() != Visible() || late.Style() != Visible() {
		t.Error("pending work ran after Destroy")
	}
	if c.complete != 0 {
		t.Errorf("complete hooks = %d, want 0 after Destroy", c.complete)
	}
	if len(e.Registrations()) != 0 {
		t.Error("watcher tracked elements after Destroy")
	}
}

func TestDestroyThenInit(t *testing.T) {
	d := NewDocument(800, 600)
	el := box(d, 100, AttrEffect, "fade-up")

	first := Init(d, DefaultConfig())
	d.Advance(100*time.Millisecond, tick)
	first.Destroy()

	second := Init(d, DefaultConfig())
	defer second.Destroy()
	reg := second.Registration(el)
	if reg == nil || reg.State() != StatePending {
		t.Fatal("re-initialized engine did not track the element")
	}
	if el.Style() != reg.Snapshot().Initial {
		t.Errorf("Style = %+v, want the initial style again", el.Style())
	}
	d.Advance(100*time.Millisecond, tick)
	if reg.State() != StateRevealed {
		t.Errorf("State = %v, want revealed", reg.State())
	}
}

func TestEnginesIndependent(t *testing.T) {
	d1 := NewDocument(800, 600)
	d2 := NewDocument(800, 600)
	a := box(d1, 100, AttrEffect, "fade")
	b := box(d2, 100, AttrEffect, "fade")
	e1 := Init(d1, DefaultConfig())
	e2 := Init(d2, DefaultConfig())
	defer e2.Destroy()

	e1.Destroy()
	d2.Advance(100*time.Millisecond, tick)
	if e2.Registration(b).State() != StateRevealed {
		t.Error("destroying one engine affected another")
	}
	if e1.Registration(a) != nil {
		t.Error("destroyed engine still tracks")
	}
}

// --- Registration ---

func TestRegisterKeyframesValidates(t *testing.T) {
	d := NewDocument(800, 600)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	if err := e.RegisterKeyframes("bad", Keyframes{{Offset: 0.5}}); err == nil {
		t.Error("invalid keyframes accepted")
	}
	if err := e.RegisterKeyframes("wobble", fadeFrames()); err != nil {
		t.Errorf("RegisterKeyframes: %v", err)
	}
	e.RegisterPreset("wobble", Preset{From: Hidden(), Keyframes: "wobble"})
	el := box(d, 100, AttrEffect, "wobble")
	e.Refresh()
	if got := e.Registration(el).Strategy(); got != StrategyKeyframes {
		t.Errorf("Strategy = %v, want keyframes", got)
	}
}

func TestStateStrings(t *testing.T) {
	if StateRevealed.String() != "revealed" || StrategySpring.String() != "spring" || EventComplete.String() != "complete" {
		t.Error("unexpected String() output")
	}
	if State(9).String() != "unknown" || EventType(9).String() != "unknown" {
		t.Error("out-of-range values should print unknown")
	}
}
