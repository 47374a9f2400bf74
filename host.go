package reveal

import "time"

// Host is the environment an Engine runs in: the element tree plus the
// timer, frame and mutation primitives. Document is the built-in Host.
//
// Optional capabilities are separate interfaces checked by type assertion:
// IntersectionHost, KeyframeHost, MotionPreferenceHost, ScrollHost and
// ResizeHost. A host lacking one gets the documented fallback.
type Host interface {
	Scheduler

	// Root returns the document root element.
	Root() *Element

	// RequestFrame schedules fn for the next display refresh. dt is the
	// time since the previous refresh.
	RequestFrame(fn func(dt time.Duration)) Timer

	// ObserveMutations reports child insertions and removals anywhere
	// under root.
	ObserveMutations(root *Element, fn func([]MutationRecord)) Observer
}

// Scheduler is the timer primitive used by Batcher.
type Scheduler interface {
	// Now returns the host clock.
	Now() time.Duration
	// AfterFunc calls fn once d has elapsed on the host clock.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or was already stopped.
	Stop() bool
}

// Observer is a live subscription to host notifications.
type Observer interface {
	Disconnect()
}

// MutationRecord describes one change to Target's child list.
type MutationRecord struct {
	Target  *Element
	Added   []*Element
	Removed []*Element
}

// IntersectionHost provides the viewport-intersection primitive.
type IntersectionHost interface {
	NewIntersectionObserver(fn func([]IntersectionEntry)) IntersectionObserver
}

// IntersectionObserver is one shared observation handle. Observing a target
// always produces an initial entry on the next delivery.
type IntersectionObserver interface {
	Observe(target *Element, opts ObserveOptions)
	Unobserve(target *Element)
	Disconnect()
}

// ObserveOptions configure the detection region and threshold for a target.
type ObserveOptions struct {
	// Inset shrinks the viewport before overlap is measured.
	Inset Insets
	// BottomFraction adds an extra bottom inset as a fraction of the
	// viewport height.
	BottomFraction float64
	// Threshold is the minimum overlap ratio for the target to count as
	// intersecting. Zero means any non-zero overlap.
	Threshold float64
}

// IntersectionEntry reports the overlap state of an observed target.
type IntersectionEntry struct {
	Target       *Element
	Intersecting bool
	Ratio        float64
	Bounds       Rect
	RootBounds   Rect
}

// KeyframeHost provides declarative keyframe animation.
type KeyframeHost interface {
	// Animate runs frames on el. onFinish is called once on natural
	// completion, never after Cancel.
	Animate(el *Element, frames Keyframes, timing Timing, onFinish func()) Animation
}

// Timing parameterizes one keyframe animation run.
type Timing struct {
	Duration time.Duration
	Easing   string
}

// Animation is an in-flight keyframe animation.
type Animation interface {
	// Cancel stops the animation and drops its visual effect. Cancelling a
	// finished or cancelled animation is a no-op.
	Cancel()
}

// MotionPreferenceHost reports the user's reduced-motion preference.
type MotionPreferenceHost interface {
	PrefersReducedMotion() bool
}

// ScrollHost delivers scroll notifications and the viewport rectangle in
// document coordinates.
type ScrollHost interface {
	OnScroll(fn func()) (cancel func())
	ViewportRect() Rect
}

// ResizeHost delivers viewport resize notifications.
type ResizeHost interface {
	OnResize(fn func()) (cancel func())
}
