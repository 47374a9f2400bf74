package reveal

import (
	"slices"

	"go.uber.org/zap"
)

// detector owns the engine's single intersection observer. Registrations
// are attached in batches and intersection entries fan out to every
// registration sharing the entry's anchor.
type detector struct {
	ih      IntersectionHost // nil: reveal on flush
	obs     IntersectionObserver
	batch   *Batcher[*Registration]
	anchors map[*Element][]*Registration
	onEntry func(reg *Registration, visible bool)
	log     *zap.Logger
}

func newDetector(h Host, cfg Config, log *zap.Logger, onEntry func(*Registration, bool)) *detector {
	d := &detector{
		anchors: make(map[*Element][]*Registration),
		onEntry: onEntry,
		log:     log,
	}
	if ih, ok := h.(IntersectionHost); ok {
		d.ih = ih
	} else {
		log.Debug("host has no intersection observer, revealing immediately")
	}
	d.batch = NewBatcher(h, cfg.BatchWindow, d.attach)
	return d
}

// observe queues regs for the next attach pass.
func (d *detector) observe(regs ...*Registration) {
	d.batch.Add(regs...)
}

// attach is the batch flush: one pass over newly discovered registrations in
// discovery order.
func (d *detector) attach(regs []*Registration) {
	if d.ih == nil {
		for _, reg := range regs {
			if !reg.removed {
				d.onEntry(reg, true)
			}
		}
		return
	}
	if d.obs == nil {
		d.obs = d.ih.NewIntersectionObserver(d.deliver)
	}
	for _, reg := range regs {
		if reg.removed {
			continue
		}
		// The first registration on an anchor decides its detection options;
		// observing again re-arms the initial entry for the newcomer.
		opts := reg.snap.observeOptions()
		if shared := d.anchors[reg.anchor]; len(shared) > 0 {
			opts = shared[0].snap.observeOptions()
		}
		d.anchors[reg.anchor] = append(d.anchors[reg.anchor], reg)
		d.obs.Observe(reg.anchor, opts)
	}
}

// deliver fans entries out to the registrations anchored on each target.
func (d *detector) deliver(entries []IntersectionEntry) {
	for _, e := range entries {
		visible := e.Intersecting && e.Ratio > 0
		for _, reg := range slices.Clone(d.anchors[e.Target]) {
			d.onEntry(reg, visible)
		}
	}
}

// unobserve detaches reg. The anchor stays observed while other
// registrations still use it.
func (d *detector) unobserve(reg *Registration) {
	regs, ok := d.anchors[reg.anchor]
	if !ok {
		return
	}
	regs = slices.DeleteFunc(slices.Clone(regs), func(r *Registration) bool { return r == reg })
	if len(regs) > 0 {
		d.anchors[reg.anchor] = regs
		return
	}
	delete(d.anchors, reg.anchor)
	if d.obs != nil {
		d.obs.Unobserve(reg.anchor)
	}
}

// observed reports whether reg is attached to the observer.
func (d *detector) observed(reg *Registration) bool {
	return slices.Contains(d.anchors[reg.anchor], reg)
}

// flush forces the pending batch.
func (d *detector) flush() {
	d.batch.Flush()
}

// disconnectAll drops the pending batch and releases the observer.
func (d *detector) disconnectAll() {
	d.batch.Stop()
	if d.obs != nil {
		d.obs.Disconnect()
		d.obs = nil
	}
	clear(d.anchors)
}
