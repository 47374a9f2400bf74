package reveal

import (
	"testing"
	"time"
)

func TestTimelineLayout(t *testing.T) {
	d := NewDocument(800, 600)
	a, b, c := box(d, 3000), box(d, 3000), box(d, 3000)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	opts := AnimateOptions{Duration: 100 * time.Millisecond}
	tl := e.Timeline("intro", TimelineOptions{
		Gap: 20 * time.Millisecond,
		Steps: []TimelineStep{
			{Target: a, Options: opts},
			{Target: b, Options: opts},
			{Target: c, Options: opts, Offset: -50 * time.Millisecond},
		},
	})

	want := []time.Duration{0, 120 * time.Millisecond, 190 * time.Millisecond}
	got := tl.Offsets()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Offsets[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if tl.Duration() != 290*time.Millisecond {
		t.Errorf("Duration = %v, want 290ms", tl.Duration())
	}
	if tl.Name() != "intro" || !tl.Running() {
		t.Errorf("Name, Running = %q, %v, want intro, true", tl.Name(), tl.Running())
	}
}

func TestTimelineSpanIncludesDelay(t *testing.T) {
	d := NewDocument(800, 600)
	a := box(d, 3000, AttrDelay, "50")
	b := box(d, 3000)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	tl := e.Timeline("t", TimelineOptions{Steps: []TimelineStep{
		{Target: a, Options: AnimateOptions{Duration: 100 * time.Millisecond}},
		{Target: b},
	}})
	if got := tl.Offsets()[1]; got != 150*time.Millisecond {
		t.Errorf("second step at %v, want 150ms", got)
	}
	if tl.Duration() != 550*time.Millisecond {
		t.Errorf("Duration = %v, want 550ms with the default duration", tl.Duration())
	}
}

func TestTimelineFiresSteps(t *testing.T) {
	d := NewDocument(800, 600)
	a, b := box(d, 3000), box(d, 3000)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	e.Timeline("t", TimelineOptions{Steps: []TimelineStep{
		{Target: a, Options: AnimateOptions{Effect: "fade", Duration: 100 * time.Millisecond}},
		{Target: b, Options: AnimateOptions{Effect: "fade"}},
	}})

	d.Update(tick)
	if reg := e.Registration(a); reg == nil || reg.State() != StateRevealed {
		t.Fatal("first step did not fire on the first update")
	}
	if e.Registration(b) != nil {
		t.Fatal("second step fired early")
	}
	d.Advance(100*time.Millisecond, tick)
	if reg := e.Registration(b); reg == nil || reg.State() != StateRevealed {
		t.Error("second step did not fire")
	}
}

func TestTimelineSelectorResolvedAtFire(t *testing.T) {
	d := NewDocument(800, 600)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	tl := e.Timeline("t", TimelineOptions{Steps: []TimelineStep{
		{Selector: "#missing", Options: AnimateOptions{Duration: 100 * time.Millisecond}},
		{Selector: "#late"},
	}})
	if got := tl.Offsets()[1]; got != 100*time.Millisecond {
		t.Errorf("unresolved step span = %v, want the option duration", got)
	}
	el := box(d, 3000, "id", "late")
	d.Advance(200*time.Millisecond, tick)
	if e.Registration(el) == nil {
		t.Error("selector step not resolved when it fired")
	}
}

func TestTimelineStop(t *testing.T) {
	d := NewDocument(800, 600)
	a := box(d, 3000)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	tl := e.Timeline("t", TimelineOptions{Steps: []TimelineStep{
		{Target: a, Offset: 100 * time.Millisecond},
	}})
	tl.Stop()
	d.Advance(300*time.Millisecond, tick)
	if e.Registration(a) != nil {
		t.Error("stopped timeline fired")
	}
	if tl.Running() {
		t.Error("Running = true after Stop")
	}
}

func TestTimelineReplacesSameName(t *testing.T) {
	d := NewDocument(800, 600)
	a, b := box(d, 3000), box(d, 3000)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	old := e.Timeline("t", TimelineOptions{Steps: []TimelineStep{{Target: a, Offset: 50 * time.Millisecond}}})
	e.Timeline("t", TimelineOptions{Steps: []TimelineStep{{Target: b}}})
	d.Advance(200*time.Millisecond, tick)

	if old.Running() {
		t.Error("replaced timeline still running")
	}
	if e.Registration(a) != nil || e.Registration(b) == nil {
		t.Error("only the replacement timeline should fire")
	}
}

func TestTimelineLoop(t *testing.T) {
	d := NewDocument(800, 600)
	a := box(d, 3000)
	var c hookCounts
	e := Init(d, DefaultConfig(), WithHooks(c.hooks()))
	defer e.Destroy()

	e.Timeline("loop", TimelineOptions{
		Loop:  true,
		Gap:   50 * time.Millisecond,
		Steps: []TimelineStep{{Target: a, Options: AnimateOptions{Duration: 100 * time.Millisecond}}},
	})
	d.Advance(250*time.Millisecond, tick)
	if c.reveal != 2 {
		t.Errorf("reveals = %d, want 2 (start and one loop)", c.reveal)
	}
}

func TestTimelineEmptyLoop(t *testing.T) {
	d := NewDocument(800, 600)
	e := Init(d, DefaultConfig())
	defer e.Destroy()

	tl := e.Timeline("empty", TimelineOptions{Loop: true})
	d.Update(tick) // must not spin
	if tl.Duration() != 0 {
		t.Errorf("Duration = %v, want 0", tl.Duration())
	}
}

func TestDestroyStopsTimelines(t *testing.T) {
	d := NewDocument(800, 600)
	a := box(d, 3000)
	e := Init(d, DefaultConfig())
	tl := e.Timeline("t", TimelineOptions{Steps: []TimelineStep{{Target: a, Offset: 100 * time.Millisecond}}})
	e.Destroy()
	d.Advance(300*time.Millisecond, tick)
	if tl.Running() {
		t.Error("timeline running after Destroy")
	}
	if a.Style() != Visible() {
		t.Error("timeline step fired after Destroy")
	}
}
