package reveal

import (
	"fmt"
	"sort"
)

// Keyframe is one stop of a keyframe list. Offset is in [0, 1].
type Keyframe struct {
	Offset float64 `yaml:"offset"`
	Style  Style   `yaml:"style"`
}

// Keyframes is an ordered keyframe list spanning offsets 0 to 1.
type Keyframes []Keyframe

// Validate checks that the list has at least two frames, starts at 0, ends
// at 1 and is sorted.
func (k Keyframes) Validate() error {
	if len(k) < 2 {
		return fmt.Errorf("keyframes: need at least 2 frames, got %d", len(k))
	}
	if k[0].Offset != 0 || k[len(k)-1].Offset != 1 {
		return fmt.Errorf("keyframes: offsets must span 0 to 1, got %v to %v", k[0].Offset, k[len(k)-1].Offset)
	}
	if !sort.SliceIsSorted(k, func(i, j int) bool { return k[i].Offset < k[j].Offset }) {
		return fmt.Errorf("keyframes: offsets not sorted")
	}
	return nil
}

// frame builds a keyframe from the visible style modified by fn.
func frame(offset float64, fn func(*Style)) Keyframe {
	s := Visible()
	if fn != nil {
		fn(&s)
	}
	return Keyframe{Offset: offset, Style: s}
}

// frames expands one style onto several offsets, like a CSS rule
// "0%, 20%, 53% { ... }".
func frames(fn func(*Style), offsets ...float64) Keyframes {
	out := make(Keyframes, len(offsets))
	for i, o := range offsets {
		out[i] = frame(o, fn)
	}
	return out
}

func sorted(parts ...Keyframes) Keyframes {
	var out Keyframes
	for _, p := range parts {
		out = append(out, p...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

func translateY(px float64) func(*Style) { return func(s *Style) { s.TranslateY = px } }
func translateX(px float64) func(*Style) { return func(s *Style) { s.TranslateX = px } }
func scale(f float64) func(*Style)       { return func(s *Style) { s.Scale = f } }
func rotate(deg float64) func(*Style)    { return func(s *Style) { s.Rotate = deg } }
func scaleRotate(f, deg float64) func(*Style) {
	return func(s *Style) { s.Scale, s.Rotate = f, deg }
}

// BuiltinKeyframes returns the attention-seeker animations of the default
// catalog.
func BuiltinKeyframes() map[string]Keyframes {
	return builtinKeyframes()
}

func builtinKeyframes() map[string]Keyframes {
	return map[string]Keyframes{
		"bounce": sorted(
			frames(nil, 0, 0.2, 0.53, 0.8, 1),
			frames(translateY(-15), 0.4, 0.43),
			frames(translateY(-7), 0.7),
			frames(translateY(-3), 0.9),
		),
		"tada": sorted(
			frames(nil, 0, 1),
			frames(scaleRotate(0.9, -3), 0.1, 0.2),
			frames(scaleRotate(1.1, 3), 0.3, 0.5, 0.7, 0.9),
			frames(scaleRotate(1.1, -3), 0.4, 0.6, 0.8),
		),
		"pulse": sorted(
			frames(nil, 0, 1),
			frames(scale(1.05), 0.5),
		),
		"rubber-band": sorted(
			frames(nil, 0, 1),
			frames(scale(1.25), 0.3),
			frames(scale(0.75), 0.4),
			frames(scale(1.15), 0.5),
			frames(scale(0.95), 0.65),
			frames(scale(1.05), 0.75),
		),
		"shake": sorted(
			frames(nil, 0, 1),
			frames(translateX(-5), 0.1, 0.3, 0.5, 0.7, 0.9),
			frames(translateX(5), 0.2, 0.4, 0.6, 0.8),
		),
		"pop": sorted(
			frames(scale(0), 0),
			frames(scale(1.2), 0.5),
			frames(nil, 1),
		),
		"swing": sorted(
			frames(nil, 0, 1),
			frames(rotate(15), 0.2),
			frames(rotate(-10), 0.4),
			frames(rotate(5), 0.6),
			frames(rotate(-5), 0.8),
		),
	}
}
