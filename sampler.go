package reveal

import (
	"math"
	"slices"
	"time"

	"go.uber.org/zap"
)

// FrameStats summarizes frame intervals observed while scrolling.
type FrameStats struct {
	Samples int
	Mean    time.Duration
	Max     time.Duration
	// Slow counts intervals over the frame budget.
	Slow int
}

// scrubSub is one continuous-effect subscription.
type scrubSub struct {
	el     *Element
	anchor *Element
	fn     func(progress float64) // nil for motion-path subscriptions
	path   *Element
}

// sampler runs on every scroll notification, independent of reveal state.
// It maps anchor positions to [0,1] progress for scrub callbacks and
// motion-path placement, and samples frame intervals while scrolling.
type sampler struct {
	host   Host
	sh     ScrollHost
	cancel func()
	subs   []*scrubSub
	frame  Timer
	budget time.Duration
	total  time.Duration
	stats  FrameStats
	slow   bool
	log    *zap.Logger
}

func newSampler(h Host, cfg Config, log *zap.Logger) *sampler {
	s := &sampler{host: h, budget: cfg.FrameBudget, log: log}
	if sh, ok := h.(ScrollHost); ok {
		s.sh = sh
		s.cancel = sh.OnScroll(s.onScroll)
	} else {
		log.Debug("host has no scroll notifications, scroll sampler disabled")
	}
	return s
}

// Progress returns how far anchor has travelled into a viewport: 0 while it
// is below the bottom edge, 1 once its top reaches the top edge.
func Progress(anchor *Element, viewport Rect) float64 {
	if viewport.Height <= 0 {
		return 0
	}
	top := anchor.Bounds().Y - viewport.Y
	p := (viewport.Height - top) / viewport.Height
	return math.Max(0, math.Min(1, p))
}

// subscribe adds a scrub callback and applies the current progress.
func (s *sampler) subscribe(el, anchor *Element, fn func(float64)) func() {
	sub := &scrubSub{el: el, anchor: anchor, fn: fn}
	return s.add(sub)
}

// subscribePath places el along the polyline of the element matched by sel.
// A selector that matches nothing, or a target without a usable path,
// disables the feature for el.
func (s *sampler) subscribePath(reg *Registration) func() {
	target := queryFirst(s.host.Root(), reg.snap.Path)
	if target == nil || pathLength(target.Path) == 0 {
		s.log.Debug("motion path unavailable",
			zap.Uint32("element", reg.el.ID),
			zap.String("path", reg.snap.Path),
		)
		return nil
	}
	return s.add(&scrubSub{el: reg.el, anchor: reg.anchor, path: target})
}

func (s *sampler) add(sub *scrubSub) func() {
	if s.sh == nil {
		return func() {}
	}
	s.subs = append(s.subs, sub)
	s.apply(sub, s.sh.ViewportRect())
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(x *scrubSub) bool { return x == sub })
	}
}

// drop removes every subscription for el.
func (s *sampler) drop(el *Element) {
	s.subs = slices.DeleteFunc(s.subs, func(x *scrubSub) bool { return x.el == el })
}

func (s *sampler) onScroll() {
	vp := s.sh.ViewportRect()
	for _, sub := range slices.Clone(s.subs) {
		s.apply(sub, vp)
	}
	if s.frame == nil {
		s.frame = s.host.RequestFrame(s.sample)
	}
}

func (s *sampler) apply(sub *scrubSub, vp Rect) {
	p := Progress(sub.anchor, vp)
	if sub.path != nil {
		if !s.host.Root().Contains(sub.path) {
			return
		}
		// The path may have been cleared or shortened since subscribing.
		if pathLength(sub.path.Path) == 0 {
			sub.el.SetMotionOffset(Vec2{})
			return
		}
		pt := pointAlong(sub.path.Path, p)
		start := sub.path.Path[0]
		sub.el.SetMotionOffset(Vec2{X: pt.X - start.X, Y: pt.Y - start.Y})
		return
	}
	if err := safeCall(func() error { sub.fn(p); return nil }); err != nil {
		s.log.Warn("scrub callback failed", zap.Uint32("element", sub.el.ID), zap.Error(err))
	}
}

// sample records one frame interval.
func (s *sampler) sample(dt time.Duration) {
	s.frame = nil
	s.stats.Samples++
	s.total += dt
	s.stats.Mean = s.total / time.Duration(s.stats.Samples)
	s.stats.Max = max(s.stats.Max, dt)
	if s.budget <= 0 || dt <= s.budget {
		s.slow = false
		return
	}
	s.stats.Slow++
	if !s.slow {
		s.slow = true
		s.log.Warn("slow frames while scrolling",
			zap.Duration("interval", dt),
			zap.Duration("budget", s.budget),
		)
	}
}

func (s *sampler) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.frame != nil {
		s.frame.Stop()
		s.frame = nil
	}
	for _, sub := range s.subs {
		if sub.path != nil {
			sub.el.SetMotionOffset(Vec2{})
		}
	}
	s.subs = nil
}

// pathLength returns the length of a polyline; fewer than two points have
// no length.
func pathLength(pts []Vec2) float64 {
	var n float64
	for i := 1; i < len(pts); i++ {
		n += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return n
}

// pointAlong returns the point at fraction t of the polyline's length.
func pointAlong(pts []Vec2, t float64) Vec2 {
	want := pathLength(pts) * t
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		if seg > 0 && want <= seg {
			f := want / seg
			return Vec2{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f}
		}
		want -= seg
	}
	return pts[len(pts)-1]
}

// queryFirst returns the first element under root (root included) matching
// sel, or nil when sel is empty, malformed or matches nothing.
func queryFirst(root *Element, sel string) *Element {
	if sel == "" {
		return nil
	}
	s, err := ParseSelector(sel)
	if err != nil {
		return nil
	}
	if s.Matches(root) {
		return root
	}
	return root.Query(s)
}
