package reveal

import (
	"time"

	"github.com/tanema/gween/ease"
)

// easings maps curve names accepted in data-aos-easing to gween easing
// functions. CSS keywords map to their closest polynomial curve.
var easings = map[string]ease.TweenFunc{
	"linear":            ease.Linear,
	"ease":              ease.OutQuad,
	"ease-in":           ease.InQuad,
	"ease-out":          ease.OutQuad,
	"ease-in-out":       ease.InOutQuad,
	"ease-in-back":      ease.InBack,
	"ease-out-back":     ease.OutBack,
	"ease-in-out-back":  ease.InOutBack,
	"ease-in-sine":      ease.InSine,
	"ease-out-sine":     ease.OutSine,
	"ease-in-out-sine":  ease.InOutSine,
	"ease-in-quad":      ease.InQuad,
	"ease-out-quad":     ease.OutQuad,
	"ease-in-out-quad":  ease.InOutQuad,
	"ease-in-cubic":     ease.InCubic,
	"ease-out-cubic":    ease.OutCubic,
	"ease-in-out-cubic": ease.InOutCubic,
	"ease-in-quart":     ease.InQuart,
	"ease-out-quart":    ease.OutQuart,
	"ease-in-out-quart": ease.InOutQuart,
	"ease-in-expo":      ease.InExpo,
	"ease-out-expo":     ease.OutExpo,
	"ease-out-elastic":  ease.OutElastic,
	"ease-out-bounce":   ease.OutBounce,
}

// EasingFunc returns the easing function registered under name.
func EasingFunc(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// easingOrLinear resolves name, falling back to linear for unknown curves.
func easingOrLinear(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.Linear
}

// seconds converts a duration to the float32 seconds gween works in.
func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}
