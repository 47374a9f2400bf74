package reveal

import "slices"

// intersectionObserver is the Document implementation of
// IntersectionObserver. Entries are computed at the end of every Update and
// delivered only for targets whose intersecting state changed, plus one
// initial entry per Observe call.
type intersectionObserver struct {
	doc     *Document
	fn      func([]IntersectionEntry)
	targets []*observedTarget
	done    bool
}

type observedTarget struct {
	el        *Element
	opts      ObserveOptions
	delivered bool
	last      bool
}

// NewIntersectionObserver implements IntersectionHost.
func (d *Document) NewIntersectionObserver(fn func([]IntersectionEntry)) IntersectionObserver {
	o := &intersectionObserver{doc: d, fn: fn}
	d.intersectionObs = append(d.intersectionObs, o)
	return o
}

// Observe starts observing target. Observing an already observed target
// replaces its options and schedules a fresh initial entry.
func (o *intersectionObserver) Observe(target *Element, opts ObserveOptions) {
	if o.done {
		return
	}
	for _, t := range o.targets {
		if t.el == target {
			t.opts = opts
			t.delivered = false
			return
		}
	}
	o.targets = append(o.targets, &observedTarget{el: target, opts: opts})
}

func (o *intersectionObserver) Unobserve(target *Element) {
	o.targets = slices.DeleteFunc(o.targets, func(t *observedTarget) bool { return t.el == target })
}

func (o *intersectionObserver) Disconnect() {
	if o.done {
		return
	}
	o.done = true
	o.targets = nil
	o.doc.intersectionObs = slices.DeleteFunc(o.doc.intersectionObs, func(x *intersectionObserver) bool { return x == o })
}

// Intersect computes the overlap of target against the viewport shrunk by
// opts, the same way the observer does.
func (d *Document) Intersect(target *Element, opts ObserveOptions) IntersectionEntry {
	root := d.viewport.Rect()
	in := opts.Inset
	in.Bottom += opts.BottomFraction * root.Height
	region := root.Inset(in)
	b := target.Bounds()

	var ratio float64
	if area := b.Area(); area > 0 {
		ratio = b.Intersection(region).Area() / area
	} else if region.Area() > 0 && region.Contains(b.X, b.Y) {
		// Zero-size boxes count as fully visible when their origin is inside.
		ratio = 1
	}
	intersecting := ratio > 0 && ratio >= opts.Threshold-1e-9
	return IntersectionEntry{
		Target:       target,
		Intersecting: intersecting,
		Ratio:        ratio,
		Bounds:       b,
		RootBounds:   region,
	}
}

func (d *Document) deliverIntersections() {
	for _, o := range slices.Clone(d.intersectionObs) {
		if o.done {
			continue
		}
		var entries []IntersectionEntry
		for _, t := range o.targets {
			if !t.el.IsConnected() {
				continue
			}
			e := d.Intersect(t.el, t.opts)
			if t.delivered && e.Intersecting == t.last {
				continue
			}
			t.delivered = true
			t.last = e.Intersecting
			entries = append(entries, e)
		}
		if len(entries) > 0 {
			o.fn(entries)
		}
	}
}
