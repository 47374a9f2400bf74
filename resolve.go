package reveal

import (
	"math"
	"strconv"
	"time"
)

// Attribute names read from tracked elements.
const (
	AttrEffect          = "data-aos"
	AttrDuration        = "data-aos-duration"
	AttrDelay           = "data-aos-delay"
	AttrEasing          = "data-aos-easing"
	AttrOffset          = "data-aos-offset"
	AttrOnce            = "data-aos-once"
	AttrMirror          = "data-aos-mirror"
	AttrAnimateOut      = "data-aos-animate-out"
	AttrAnchor          = "data-aos-anchor"
	AttrAnchorPlacement = "data-aos-anchor-placement"
	AttrStagger         = "data-aos-stagger"
	AttrStiffness       = "data-aos-stiffness"
	AttrDamping         = "data-aos-damping"
	AttrClass           = "data-aos-class"
	AttrChild           = "data-aos-child"
	AttrPath            = "data-aos-path"
)

// Snapshot is the immutable resolved configuration of one registration.
type Snapshot struct {
	Effect    string
	Duration  time.Duration
	Delay     time.Duration
	Easing    string
	Offset    float64
	Once      bool
	Mirror    bool
	Placement Placement
	Stagger   time.Duration
	Stiffness float64
	Damping   float64
	Class     string

	// Anchor and Path are the selectors as declared; lookups happen when
	// the registration is built.
	Anchor string
	Path   string

	Keyframes     string
	Spring        bool
	StaggerParent bool

	// Initial is the pre-reveal visual state, Final the revealed one.
	Initial Style
	Final   Style
}

// observeOptions realizes the offset and placement as detection options.
func (s Snapshot) observeOptions() ObserveOptions {
	return ObserveOptions{
		Inset:          Insets{Bottom: s.Offset},
		BottomFraction: s.Placement.bottomFraction(),
		Threshold:      s.Placement.threshold(),
	}
}

// Resolve computes the snapshot for el. For every setting the element
// attribute wins, then the preset named by the element's effect, then the
// global default. Attribute values that do not parse fall through to the
// next level. Resolve reads live attribute values and caches nothing.
func Resolve(el *Element, defaults Config, presets map[string]Preset) Snapshot {
	effect, _ := el.Attr(AttrEffect)
	return resolveEffect(el, effect, defaults, presets)
}

// resolveChild resolves a stagger child, whose effect comes from its marker
// attribute.
func resolveChild(el *Element, defaults Config, presets map[string]Preset) Snapshot {
	effect, _ := el.Attr(AttrChild)
	if effect == "" {
		effect = defaults.ChildEffect
	}
	return resolveEffect(el, effect, defaults, presets)
}

func resolveEffect(el *Element, effect string, defaults Config, presets map[string]Preset) Snapshot {
	p, known := presets[effect]
	if !known {
		p = Preset{From: Hidden()}
	}

	s := Snapshot{
		Effect:        effect,
		Keyframes:     p.Keyframes,
		StaggerParent: p.Stagger,
		Initial:       p.From,
		Final:         Visible(),
	}
	if p.To != nil {
		s.Final = *p.To
	}

	s.Duration = msAttr(el, AttrDuration, p.Duration, defaults.Duration)
	s.Delay = msAttr(el, AttrDelay, p.Delay, defaults.Delay)
	s.Stagger = msAttr(el, AttrStagger, p.Interval, defaults.Stagger)
	s.Offset = floatAttr(el, AttrOffset, p.Offset, defaults.Offset, false)
	s.Stiffness = floatAttr(el, AttrStiffness, p.Stiffness, defaults.Stiffness, true)
	s.Damping = floatAttr(el, AttrDamping, p.Damping, defaults.Damping, true)
	s.Stiffness, s.Damping = StableSpring(s.Stiffness, s.Damping)
	s.Once = boolAttr(el, p.Once, defaults.Once, AttrOnce)
	s.Mirror = boolAttr(el, p.Mirror, defaults.Mirror, AttrMirror, AttrAnimateOut)

	s.Easing = defaults.Easing
	if _, ok := EasingFunc(p.Easing); ok {
		s.Easing = p.Easing
	}
	if v, ok := el.Attr(AttrEasing); ok {
		if _, known := EasingFunc(v); known {
			s.Easing = v
		}
	}

	s.Placement, _ = ParsePlacement(defaults.Placement)
	if v, ok := el.Attr(AttrAnchorPlacement); ok {
		if pl, ok := ParsePlacement(v); ok {
			s.Placement = pl
		}
	}

	s.Class = p.Class
	if v, ok := el.Attr(AttrClass); ok && v != "" {
		s.Class = v
	}
	s.Anchor, _ = el.Attr(AttrAnchor)
	s.Path, _ = el.Attr(AttrPath)

	// A spring is requested by the preset or by declaring spring constants
	// on the element itself.
	s.Spring = p.Spring || validFloat(el, AttrStiffness) || validFloat(el, AttrDamping)
	return s
}

// ParseTriState parses a tri-state boolean attribute value: "true" and ""
// are true, "false" is false, anything else is undecided.
func ParseTriState(v string) (value, ok bool) {
	switch v {
	case "", "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func boolAttr(el *Element, preset *bool, def bool, names ...string) bool {
	for _, name := range names {
		if v, present := el.Attr(name); present {
			if b, ok := ParseTriState(v); ok {
				return b
			}
		}
	}
	if preset != nil {
		return *preset
	}
	return def
}

func parseNumber(v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func validFloat(el *Element, name string) bool {
	v, ok := el.Attr(name)
	if !ok {
		return false
	}
	f, ok := parseNumber(v)
	return ok && f >= 0
}

func floatAttr(el *Element, name string, preset *float64, def float64, nonNegative bool) float64 {
	if v, ok := el.Attr(name); ok {
		if f, ok := parseNumber(v); ok && (!nonNegative || f >= 0) {
			return f
		}
	}
	if preset != nil {
		return *preset
	}
	return def
}

// msAttr reads a millisecond attribute. Negative values do not parse.
func msAttr(el *Element, name string, preset *time.Duration, def time.Duration) time.Duration {
	if v, ok := el.Attr(name); ok {
		if f, ok := parseNumber(v); ok && f >= 0 {
			return time.Duration(f * float64(time.Millisecond))
		}
	}
	if preset != nil && *preset >= 0 {
		return *preset
	}
	return def
}
