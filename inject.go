package reveal

// syntheticScroll is one injected scroll position, applied on one update.
type syntheticScroll struct {
	x, y float64
}

// InjectScrollTo queues a jump to the given scroll offset. The event is
// consumed on the next Update.
func (d *Document) InjectScrollTo(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticScroll{x: x, y: y})
}

// InjectScrollBy queues a relative scroll, measured from the scroll offset
// the queue will have reached when the event is consumed.
func (d *Document) InjectScrollBy(dx, dy float64) {
	x, y := d.queuedScroll()
	d.InjectScrollTo(x+dx, y+dy)
}

// InjectSwipe queues a linear scroll from the current (queued) offset to
// (toX, toY) spread over frames updates. Minimum frames is 1.
func (d *Document) InjectSwipe(toX, toY float64, frames int) {
	frames = max(frames, 1)
	fromX, fromY := d.queuedScroll()
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		d.InjectScrollTo(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// PendingInjections returns the number of queued scroll events.
func (d *Document) PendingInjections() int {
	return len(d.injectQueue)
}

func (d *Document) queuedScroll() (float64, float64) {
	if n := len(d.injectQueue); n > 0 {
		last := d.injectQueue[n-1]
		return last.x, last.y
	}
	return d.viewport.ScrollX, d.viewport.ScrollY
}

// processInjected pops one scroll event and applies it. Returns true if an
// event was consumed.
func (d *Document) processInjected() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]
	d.viewport.ScrollTo(evt.x, evt.y)
	return true
}
