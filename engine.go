package reveal

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

const (
	defaultSelector      = "[data-aos]"
	defaultChildSelector = "[data-aos-child]"
)

// Engine tracks the elements of one Host and reveals them as they scroll
// into view. Engines are independent: each owns its observer handles,
// tables and registry, and Destroy releases all of it.
//
// An Engine is not safe for concurrent use; drive it from the host's thread.
type Engine struct {
	host  Host
	cfg   Config
	log   *zap.Logger
	hooks Hooks
	sink  EventSink

	presets   map[string]Preset
	keyframes map[string]Keyframes
	sel       Selector
	childSel  Selector

	regs  map[*Element]*Registration
	order []*Registration

	run   *runner
	mach  *machine
	det   *detector
	watch *watcher
	samp  *sampler

	timelines    map[string]*Timeline
	cancelResize func()

	reduced   bool
	disabled  bool
	destroyed bool
}

// Option configures an Engine at Init.
type Option func(*Engine)

// WithLogger sets the engine's logger. The package logger is used otherwise.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithHooks installs user callbacks.
func WithHooks(h Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// WithPresets adds presets on top of the built-in catalog.
func WithPresets(presets map[string]Preset) Option {
	return func(e *Engine) {
		for name, p := range presets {
			e.presets[name] = p
		}
	}
}

// WithKeyframes adds keyframe lists on top of the built-in ones. Invalid
// lists are logged and skipped.
func WithKeyframes(frames map[string]Keyframes) Option {
	return func(e *Engine) {
		for name, k := range frames {
			if err := e.RegisterKeyframes(name, k); err != nil {
				e.log.Warn("keyframes skipped", zap.Error(err))
			}
		}
	}
}

// WithCatalog registers a catalog's presets and keyframes and overlays its
// defaults onto the engine configuration.
func WithCatalog(c *Catalog) Option {
	return func(e *Engine) {
		if c == nil {
			return
		}
		e.RegisterCatalog(c)
		cfg, err := c.Config(e.cfg)
		if err != nil {
			e.log.Warn("catalog defaults ignored", zap.Error(err))
			return
		}
		e.cfg = cfg
	}
}

// Init creates an engine over h: it scans the document for elements
// matching cfg.Selector, resolves and prepares each, attaches them to the
// shared intersection observer and starts watching for insertions and
// removals. Init returns at once; reveals happen from host callbacks.
func Init(h Host, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		host:      h,
		cfg:       cfg,
		log:       Logger(),
		presets:   BuiltinPresets(),
		keyframes: builtinKeyframes(),
		regs:      make(map[*Element]*Registration),
		timelines: make(map[string]*Timeline),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cfg.Disable {
		e.disabled = true
		e.log.Debug("engine disabled")
		return e
	}

	e.sel = e.selector(e.cfg.Selector, defaultSelector)
	e.childSel = e.selector(e.cfg.ChildSelector, defaultChildSelector)
	if e.cfg.RespectReducedMotion {
		if mp, ok := h.(MotionPreferenceHost); ok {
			e.reduced = mp.PrefersReducedMotion()
		}
	}

	kf, _ := h.(KeyframeHost)
	e.run = &runner{host: h, kf: kf, keyframes: e.keyframes, log: e.log}
	e.mach = &machine{run: e.run, hooks: e.hooks, sink: e.sink, log: e.log}
	e.run.onComplete = e.mach.complete
	e.det = newDetector(h, e.cfg, e.log, e.mach.handle)
	e.mach.det = e.det
	e.samp = newSampler(h, e.cfg, e.log)
	e.watch = newWatcher(h, e.sel, e.cfg, e.track, e.prune, e.sweep)

	e.track(e.scan())
	e.watch.start(h.Root())
	if e.cfg.RefreshOnResize {
		if rh, ok := h.(ResizeHost); ok {
			e.cancelResize = rh.OnResize(func() { e.Refresh() })
		}
	}
	e.log.Debug("engine started",
		zap.Int("tracked", len(e.order)),
		zap.Bool("reducedMotion", e.reduced),
	)
	return e
}

// selector parses s, falling back to def when s is malformed.
func (e *Engine) selector(s, def string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		e.log.Warn("invalid selector, using default", zap.String("selector", s), zap.Error(err))
		return MustParseSelector(def)
	}
	return sel
}

func (e *Engine) active() bool {
	return !e.disabled && !e.destroyed
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// ReducedMotion reports whether the engine applies terminal styles without
// animation.
func (e *Engine) ReducedMotion() bool {
	return e.reduced
}

// --- Tracking ---

// scan returns the trackable elements of the document in document order.
func (e *Engine) scan() []*Element {
	root := e.host.Root()
	var out []*Element
	if e.sel.Matches(root) {
		out = append(out, root)
	}
	return append(out, root.QueryAll(e.sel)...)
}

// track registers the untracked, still connected elements among els and
// hands them to the detector as one batch.
func (e *Engine) track(els []*Element) {
	if !e.active() {
		return
	}
	var regs []*Registration
	for _, el := range els {
		if e.regs[el] != nil || !e.connected(el) {
			continue
		}
		regs = append(regs, e.build(el, Resolve(el, e.cfg, e.presets)))
	}
	e.attach(regs)
}

func (e *Engine) attach(regs []*Registration) {
	if len(regs) == 0 {
		return
	}
	if e.reduced {
		for _, reg := range regs {
			setState(reg, StateRevealed)
			e.run.finish(reg)
		}
		return
	}
	e.det.observe(regs...)
}

// build creates and prepares the registration for el.
func (e *Engine) build(el *Element, snap Snapshot) *Registration {
	reg := e.newRegistration(el, snap)
	reg.anchor = el
	if snap.Anchor != "" {
		if a := queryFirst(e.host.Root(), snap.Anchor); a != nil {
			reg.anchor = a
		} else {
			e.log.Debug("anchor not found, observing element",
				zap.Uint32("element", el.ID),
				zap.String("anchor", snap.Anchor),
			)
		}
	}
	e.add(reg)
	if snap.StaggerParent {
		e.collectChildren(reg)
	}
	e.run.prepare(reg)
	if snap.Path != "" {
		reg.unscrub = e.samp.subscribePath(reg)
	}
	return reg
}

func (e *Engine) newRegistration(el *Element, snap Snapshot) *Registration {
	reg := &Registration{
		el:              el,
		snap:            snap,
		savedStyle:      el.Style(),
		savedTransition: el.Transition(),
		hadClass:        el.HasClass(snap.Class),
	}
	reg.strategy = e.run.selectStrategy(snap)
	return reg
}

// collectChildren registers the container's marked descendants in document
// order with delays base + index*interval.
func (e *Engine) collectChildren(container *Registration) {
	for _, el := range container.el.QueryAll(e.childSel) {
		if e.regs[el] != nil {
			continue
		}
		snap := resolveChild(el, e.cfg, e.presets)
		snap.StaggerParent = false
		child := e.newRegistration(el, snap)
		child.anchor = container.anchor
		child.parent = container
		child.staggerDelay = container.snap.Delay + time.Duration(len(container.children))*container.snap.Stagger
		container.children = append(container.children, child)
		e.add(child)
		e.run.prepare(child)
	}
}

func (e *Engine) add(reg *Registration) {
	e.regs[reg.el] = reg
	e.order = append(e.order, reg)
}

// prune drops the registration of a node the host removed. The detached
// element is not touched.
func (e *Engine) prune(el *Element) {
	e.samp.drop(el)
	reg := e.regs[el]
	if reg == nil {
		return
	}
	e.drop(reg)
}

// sweep drops every registration whose element is no longer under the
// document root.
func (e *Engine) sweep() {
	for _, reg := range slices.Clone(e.order) {
		if reg.removed || e.connected(reg.el) {
			continue
		}
		e.samp.drop(reg.el)
		e.drop(reg)
	}
}

// drop removes reg, and its stagger children, from the engine: handles are
// cancelled, the anchor is unobserved and the registry entry is deleted.
func (e *Engine) drop(reg *Registration) {
	if reg.removed {
		return
	}
	reg.removed = true
	e.run.cancel(reg)
	e.det.unobserve(reg)
	if reg.unscrub != nil {
		reg.unscrub()
		reg.unscrub = nil
	}
	delete(e.regs, reg.el)
	e.order = slices.DeleteFunc(e.order, func(r *Registration) bool { return r == reg })
	for _, c := range reg.children {
		e.drop(c)
	}
}

func (e *Engine) connected(el *Element) bool {
	return e.host.Root().Contains(el)
}

// --- Public operations ---

// RefreshOption configures Refresh.
type RefreshOption func(*refreshOptions)

type refreshOptions struct {
	reresolve bool
}

// WithReresolve makes Refresh resolve every tracked element again. A
// registration whose snapshot changed is rebuilt and starts over from
// pending; unchanged ones are left alone.
func WithReresolve() RefreshOption {
	return func(o *refreshOptions) { o.reresolve = true }
}

// Refresh scans the document for matching elements that are not tracked yet
// and attaches them. Tracked elements are not disturbed.
func (e *Engine) Refresh(opts ...RefreshOption) {
	if !e.active() {
		return
	}
	var o refreshOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.reresolve {
		var rebuilt []*Registration
		for _, reg := range slices.Clone(e.order) {
			if reg.removed || reg.parent != nil || reg.manual {
				continue
			}
			if r := e.reresolve(reg); r != nil {
				rebuilt = append(rebuilt, r)
			}
		}
		e.attach(rebuilt)
	}
	e.track(e.scan())
}

// reresolve rebuilds reg when its element's resolved snapshot changed. It
// returns the new registration, or nil when nothing changed.
func (e *Engine) reresolve(reg *Registration) *Registration {
	el := reg.el
	if !e.connected(el) || !e.sel.Matches(el) {
		return nil
	}
	snap := Resolve(el, e.cfg, e.presets)
	if snap == reg.snap {
		return nil
	}
	e.drop(reg)
	e.restoreClass(reg)
	next := e.build(el, snap)
	inherit(next, reg)
	return next
}

// inherit carries the pre-tracking state over to a rebuilt registration.
func inherit(next, prev *Registration) {
	next.savedStyle = prev.savedStyle
	next.savedTransition = prev.savedTransition
	next.hadClass = prev.hadClass && prev.snap.Class == next.snap.Class
}

func (e *Engine) restoreClass(reg *Registration) {
	if !reg.hadClass {
		reg.el.RemoveClass(reg.snap.Class)
	}
	for _, c := range reg.children {
		e.restoreClass(c)
	}
}

// Destroy tears the engine down: observers are disconnected, timelines
// stopped, pending delays, keyframe animations and springs cancelled, and
// every tracked element that is still connected gets back the style,
// transition and classes it had before tracking. Destroy is idempotent.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	if e.disabled {
		return
	}
	for _, t := range e.timelines {
		t.Stop()
	}
	clear(e.timelines)
	if e.cancelResize != nil {
		e.cancelResize()
		e.cancelResize = nil
	}
	e.samp.stop()
	e.watch.stop()
	e.det.disconnectAll()
	for _, reg := range e.order {
		e.run.cancel(reg)
		reg.removed = true
		if !e.connected(reg.el) {
			continue
		}
		reg.el.SetTransition(reg.savedTransition)
		reg.el.SetStyleImmediate(reg.savedStyle)
		if !reg.hadClass {
			reg.el.RemoveClass(reg.snap.Class)
		}
	}
	clear(e.regs)
	e.order = nil
	e.log.Debug("engine destroyed")
}

// RegisterPreset adds or replaces a named preset. It applies to elements
// resolved afterwards.
func (e *Engine) RegisterPreset(name string, p Preset) {
	e.presets[name] = p
}

// RegisterKeyframes adds or replaces a named keyframe list.
func (e *Engine) RegisterKeyframes(name string, frames Keyframes) error {
	if err := frames.Validate(); err != nil {
		return fmt.Errorf("keyframes %q: %w", name, err)
	}
	e.keyframes[name] = frames
	return nil
}

// RegisterCatalog adds a catalog's presets and keyframe lists. Catalog
// defaults only apply through WithCatalog at Init.
func (e *Engine) RegisterCatalog(c *Catalog) {
	for name, p := range c.Presets {
		e.RegisterPreset(name, p)
	}
	for name, k := range c.Keyframes {
		if err := e.RegisterKeyframes(name, k); err != nil {
			e.log.Warn("keyframes skipped", zap.Error(err))
		}
	}
}

// AnimateOptions override the resolved settings of a manual animation.
// Zero values inherit from the element's attributes, preset and defaults.
type AnimateOptions struct {
	Effect   string
	Duration time.Duration
	Delay    time.Duration
	Easing   string
}

// snapshotFor resolves el with opts applied on top.
func (e *Engine) snapshotFor(el *Element, opts AnimateOptions) Snapshot {
	effect := opts.Effect
	if effect == "" {
		effect, _ = el.Attr(AttrEffect)
	}
	snap := resolveEffect(el, effect, e.cfg, e.presets)
	if opts.Duration > 0 {
		snap.Duration = opts.Duration
	}
	if opts.Delay > 0 {
		snap.Delay = opts.Delay
	}
	if _, ok := EasingFunc(opts.Easing); ok {
		snap.Easing = opts.Easing
	}
	return snap
}

// Animate prepares el and reveals it now, outside the scroll-triggered
// flow. An existing registration for el is replaced. Returns nil when the
// engine is inactive or el is not in the document.
func (e *Engine) Animate(el *Element, opts AnimateOptions) *Registration {
	if !e.active() || el == nil || !e.connected(el) {
		return nil
	}
	prev := e.regs[el]
	if prev != nil {
		e.drop(prev)
		e.restoreClass(prev)
	}
	reg := e.build(el, e.snapshotFor(el, opts))
	reg.manual = true
	if prev != nil {
		inherit(reg, prev)
	}
	if e.reduced {
		setState(reg, StateRevealed)
		e.run.finish(reg)
		return reg
	}
	e.mach.reveal(reg)
	return reg
}

// Registration returns the registration tracking el, or nil.
func (e *Engine) Registration(el *Element) *Registration {
	return e.regs[el]
}

// Registrations returns all registrations in discovery order.
func (e *Engine) Registrations() []*Registration {
	return slices.Clone(e.order)
}

// Scrub calls fn with el's scroll progress in [0,1] now and on every scroll
// notification, whatever el's reveal state. Progress follows el's anchor
// when el is tracked. The returned function cancels the subscription.
func (e *Engine) Scrub(el *Element, fn func(progress float64)) (cancel func()) {
	if !e.active() || el == nil || fn == nil {
		return func() {}
	}
	anchor := el
	if reg := e.regs[el]; reg != nil {
		anchor = reg.anchor
	}
	return e.samp.subscribe(el, anchor, fn)
}

// FrameStats returns the frame-interval statistics sampled while scrolling.
func (e *Engine) FrameStats() FrameStats {
	if e.samp == nil {
		return FrameStats{}
	}
	return e.samp.stats
}

// Flush forces the pending detector batch. Destroy does not need it; it is
// for hosts that want new registrations attached before the next window.
func (e *Engine) Flush() {
	if e.active() {
		e.det.flush()
	}
}

// DetectorFlushes returns how many attach passes the detector ran.
func (e *Engine) DetectorFlushes() int {
	if e.det == nil {
		return 0
	}
	return e.det.batch.Flushes()
}
