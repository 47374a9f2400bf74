package reveal

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default element fill.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for path points and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Intersection returns the overlapping area of r and other. The result has
// zero size when the rectangles do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.X+r.Width, other.X+other.Width)
	y1 := math.Min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns Width*Height, or 0 for degenerate rectangles.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Inset shrinks r by the given insets. Negative results clamp to zero size.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Left - in.Right,
		Height: r.Height - in.Top - in.Bottom,
	}
	out.Width = math.Max(out.Width, 0)
	out.Height = math.Max(out.Height, 0)
	return out
}

// Insets are per-edge distances in pixels. Positive values shrink a
// rectangle, the way a negative CSS root margin shrinks the detection region.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// State is the reveal state of a registration.
type State uint8

const (
	StatePending  State = iota // initial, pre-reveal visual state applied
	StateRevealed              // entered visual state applied
	StateReset                 // pre-reveal state restored (mirror mode)
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRevealed:
		return "revealed"
	case StateReset:
		return "reset"
	default:
		return "unknown"
	}
}

// StrategyKind names the animation strategy selected for a registration.
type StrategyKind uint8

const (
	StrategyTransition StrategyKind = iota // style toggle animated by the element's transition
	StrategyKeyframes                      // declarative keyframe list run by the host
	StrategySpring                         // procedural spring integrator
	StrategyStagger                        // container revealed at once, children fanned out
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyTransition:
		return "transition"
	case StrategyKeyframes:
		return "keyframes"
	case StrategySpring:
		return "spring"
	case StrategyStagger:
		return "stagger"
	default:
		return "unknown"
	}
}

// Placement selects the qualitative trigger point of an anchor:
// which element edge has to cross which viewport line.
type Placement uint8

const (
	PlacementTopBottom Placement = iota // element top crosses viewport bottom (default)
	PlacementCenterBottom
	PlacementBottomBottom
	PlacementTopCenter
	PlacementCenterCenter
	PlacementBottomCenter
	PlacementTopTop
	PlacementCenterTop
	PlacementBottomTop
)

var placementNames = map[string]Placement{
	"top-bottom":    PlacementTopBottom,
	"center-bottom": PlacementCenterBottom,
	"bottom-bottom": PlacementBottomBottom,
	"top-center":    PlacementTopCenter,
	"center-center": PlacementCenterCenter,
	"bottom-center": PlacementBottomCenter,
	"top-top":       PlacementTopTop,
	"center-top":    PlacementCenterTop,
	"bottom-top":    PlacementBottomTop,
}

// ParsePlacement parses names such as "center-bottom".
func ParsePlacement(s string) (Placement, bool) {
	p, ok := placementNames[s]
	return p, ok
}

// threshold returns the overlap ratio the anchor needs before it counts as
// entered: top edge = any overlap, center = half, bottom = fully inside.
func (p Placement) threshold() float64 {
	switch p % 3 {
	case 1:
		return 0.5
	case 2:
		return 1
	default:
		return 0
	}
}

// bottomFraction returns the extra bottom inset as a fraction of viewport
// height for the viewport line of the placement.
func (p Placement) bottomFraction() float64 {
	switch p / 3 {
	case 1:
		return 0.5
	case 2:
		return 0.75
	default:
		return 0
	}
}
