package reveal

import "time"

// Style is the animatable visual state of an element. The zero value is not
// the resting state; use Visible for that.
//
// Translate percentages are relative to the element's own box, the same way
// CSS resolves translateX(100%).
type Style struct {
	Opacity       float64 `yaml:"opacity"`
	TranslateX    float64 `yaml:"translateX"`
	TranslateY    float64 `yaml:"translateY"`
	TranslateXPct float64 `yaml:"translateXPct"`
	TranslateYPct float64 `yaml:"translateYPct"`
	Scale         float64 `yaml:"scale"`
	Rotate        float64 `yaml:"rotate"`  // degrees, in-plane
	RotateX       float64 `yaml:"rotateX"` // degrees
	RotateY       float64 `yaml:"rotateY"` // degrees
	Perspective   float64 `yaml:"perspective"`
	Blur          float64 `yaml:"blur"` // px
	Brightness    float64 `yaml:"brightness"`
	ClipTop       float64 `yaml:"clipTop"` // inset fractions in [0, 1]
	ClipRight     float64 `yaml:"clipRight"`
	ClipBottom    float64 `yaml:"clipBottom"`
	ClipLeft      float64 `yaml:"clipLeft"`
	Shadow        float64 `yaml:"shadow"` // box-shadow strength in [0, 1]
}

// Visible returns the resting, fully revealed style: opaque, untransformed,
// unfiltered and unclipped.
func Visible() Style {
	return Style{Opacity: 1, Scale: 1, Brightness: 1}
}

// Hidden returns Visible with zero opacity, the fallback initial state for
// effects the catalog does not know.
func Hidden() Style {
	s := Visible()
	s.Opacity = 0
	return s
}

// IsIdentity reports whether s carries no transform, filter or clip.
func (s Style) IsIdentity() bool {
	v := Visible()
	v.Opacity = s.Opacity
	v.Shadow = s.Shadow
	return s == v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpStyle interpolates every field of a toward b. t outside [0, 1]
// extrapolates, which the spring strategy relies on for overshoot.
func lerpStyle(a, b Style, t float64) Style {
	return Style{
		Opacity:       lerp(a.Opacity, b.Opacity, t),
		TranslateX:    lerp(a.TranslateX, b.TranslateX, t),
		TranslateY:    lerp(a.TranslateY, b.TranslateY, t),
		TranslateXPct: lerp(a.TranslateXPct, b.TranslateXPct, t),
		TranslateYPct: lerp(a.TranslateYPct, b.TranslateYPct, t),
		Scale:         lerp(a.Scale, b.Scale, t),
		Rotate:        lerp(a.Rotate, b.Rotate, t),
		RotateX:       lerp(a.RotateX, b.RotateX, t),
		RotateY:       lerp(a.RotateY, b.RotateY, t),
		Perspective:   lerp(a.Perspective, b.Perspective, t),
		Blur:          lerp(a.Blur, b.Blur, t),
		Brightness:    lerp(a.Brightness, b.Brightness, t),
		ClipTop:       lerp(a.ClipTop, b.ClipTop, t),
		ClipRight:     lerp(a.ClipRight, b.ClipRight, t),
		ClipBottom:    lerp(a.ClipBottom, b.ClipBottom, t),
		ClipLeft:      lerp(a.ClipLeft, b.ClipLeft, t),
		Shadow:        lerp(a.Shadow, b.Shadow, t),
	}
}

// Transition is an element's transition declaration. While set, style
// changes made with Element.SetStyle animate from the current value.
type Transition struct {
	Duration time.Duration
	Delay    time.Duration
	Easing   string
}
