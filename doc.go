// Package reveal is a scroll-triggered reveal engine: elements marked with
// data-aos attributes start in a pre-reveal visual state and animate into
// their final state as they scroll into view.
//
// The engine runs against a [Host], the environment that owns the element
// tree, timers, frame callbacks and mutation notifications. [Document] is
// the built-in host: a retained element tree with a scrolling [Viewport] and
// a virtual clock, rendered with [Ebitengine].
//
// # Quick start
//
// Build a document, mark elements, and start an engine:
//
//	doc := reveal.NewDocument(800, 600)
//
//	card := reveal.NewBox("div", 40, 900, 320, 180)
//	card.SetAttr(reveal.AttrEffect, "fade-up")
//	card.SetAttr(reveal.AttrDuration, "600")
//	doc.Root().AddChild(card)
//
//	engine := reveal.Init(doc, reveal.DefaultConfig())
//	defer engine.Destroy()
//
//	reveal.Run(doc, reveal.RunConfig{Title: "Reveal", Width: 800, Height: 600})
//
// Without a window, drive the document clock directly. Nothing happens
// between calls to [Document.Update]:
//
//	doc.Viewport().ScrollTo(0, 600)
//	doc.Advance(time.Second, 16*time.Millisecond)
//
// # Attributes
//
// Each setting resolves in order: element attribute, the preset named by
// the element's effect, then the global [Config]. Attribute values that do
// not parse fall through to the next level.
//
//	data-aos                   effect name, e.g. "fade-up", "zoom-in", "bounce"
//	data-aos-duration          milliseconds
//	data-aos-delay             milliseconds
//	data-aos-easing            curve name, e.g. "ease-out-back"
//	data-aos-offset            pixels the element must travel past the trigger line
//	data-aos-once              "true", "false" or empty (true)
//	data-aos-mirror            reset when scrolled back out; alias data-aos-animate-out
//	data-aos-anchor            selector of the node whose position triggers the reveal
//	data-aos-anchor-placement  e.g. "center-bottom", "top-center"
//	data-aos-stagger           child interval of a "stagger" container, milliseconds
//	data-aos-stiffness         spring constant; declaring it selects the spring
//	data-aos-damping           spring damping
//	data-aos-class             class added on reveal
//	data-aos-path              selector of a polyline element to follow while scrolling
//
// # Strategies
//
// Every registration animates with one strategy, selected once from its
// resolved settings: keyframe lists for attention seekers (when the host
// implements [KeyframeHost]), a damped [Spring], stagger fan-out for
// containers, and otherwise a plain style toggle animated by the element's
// [Transition].
//
// # Optional host capabilities
//
// Hosts opt into features by implementing [IntersectionHost],
// [KeyframeHost], [MotionPreferenceHost], [ScrollHost] and [ResizeHost].
// A host without intersection support reveals everything at once; one
// without keyframes falls back to transitions.
//
// # Presets and catalogs
//
// [BuiltinPresets] is the default effect catalog. More presets and keyframe
// lists can be loaded from YAML with [LoadCatalog] and installed with
// [WithCatalog], or registered at run time.
//
// # Events
//
// [Hooks] receive reveal, reset and completion callbacks. An [EventSink]
// receives the same transitions as [Event] values; the reveal/ecs module
// forwards them into a [Donburi] world.
//
// # Scripts and tooling
//
// [LoadScript] parses a YAML or JSON scroll script that a [Document] replays
// one step per Update, which makes scroll-driven behavior reproducible in
// tests. The reveal command (cmd/reveal) validates catalogs and replays
// scripts against a page description without opening a window.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package reveal
