package reveal

import "time"

// Batcher collects items and hands them to a flush function once per
// window: the first Add arms a timer, later Adds inside the window join the
// same batch, and the timer flushes everything in insertion order. Both the
// mutation watcher and the visibility detector use it.
type Batcher[T any] struct {
	sched   Scheduler
	window  time.Duration
	flush   func([]T)
	pending []T
	timer   Timer
	stopped bool
	flushes int
}

// NewBatcher creates a batcher flushing window after the first pending Add.
func NewBatcher[T any](sched Scheduler, window time.Duration, flush func([]T)) *Batcher[T] {
	return &Batcher[T]{sched: sched, window: window, flush: flush}
}

// Add queues items. No-op after Stop.
func (b *Batcher[T]) Add(items ...T) {
	if b.stopped || len(items) == 0 {
		return
	}
	b.pending = append(b.pending, items...)
	if b.timer == nil {
		b.timer = b.sched.AfterFunc(b.window, b.Flush)
	}
}

// Flush hands all pending items to the flush function now. No-op when
// nothing is pending.
func (b *Batcher[T]) Flush() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if len(b.pending) == 0 {
		return
	}
	items := b.pending
	b.pending = nil
	b.flushes++
	b.flush(items)
}

// Stop drops pending items and disarms the timer. Later Adds are ignored.
func (b *Batcher[T]) Stop() {
	b.stopped = true
	b.pending = nil
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// Len returns the number of pending items.
func (b *Batcher[T]) Len() int {
	return len(b.pending)
}

// Flushes returns how many non-empty flushes have run.
func (b *Batcher[T]) Flushes() int {
	return b.flushes
}
