package tween

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// DefaultElasticity is applied when a configuration leaves the elastic
// parameter unset.
const DefaultElasticity = 400

var easings = map[string]ease.TweenFunc{
	"linear":          ease.Linear,
	"easeInQuad":      ease.InQuad,
	"easeOutQuad":     ease.OutQuad,
	"easeInOutQuad":   ease.InOutQuad,
	"easeInCubic":     ease.InCubic,
	"easeOutCubic":    ease.OutCubic,
	"easeInOutCubic":  ease.InOutCubic,
	"easeInQuart":     ease.InQuart,
	"easeOutQuart":    ease.OutQuart,
	"easeInOutQuart":  ease.InOutQuart,
	"easeInQuint":     ease.InQuint,
	"easeOutQuint":    ease.OutQuint,
	"easeInOutQuint":  ease.InOutQuint,
	"easeInSine":      ease.InSine,
	"easeOutSine":     ease.OutSine,
	"easeInOutSine":   ease.InOutSine,
	"easeInExpo":      ease.InExpo,
	"easeOutExpo":     ease.OutExpo,
	"easeInOutExpo":   ease.InOutExpo,
	"easeInCirc":      ease.InCirc,
	"easeOutCirc":     ease.OutCirc,
	"easeInOutCirc":   ease.InOutCirc,
	"easeInBack":      ease.InBack,
	"easeOutBack":     ease.OutBack,
	"easeInOutBack":   ease.InOutBack,
	"easeInBounce":    ease.InBounce,
	"easeOutBounce":   ease.OutBounce,
	"easeInOutBounce": ease.InOutBounce,
}

// Easing resolves an easing name. Elastic curves are parameterized by the
// elasticity value (1..1000); every other name ignores it.
func Easing(name string, elasticity float64) (ease.TweenFunc, bool) {
	switch name {
	case "easeInElastic":
		return inElastic(elasticity), true
	case "easeOutElastic":
		return outElastic(elasticity), true
	case "easeInOutElastic":
		return inOutElastic(elasticity), true
	}
	fn, ok := easings[name]
	return fn, ok
}

var builtinEasings = func() map[string]bool {
	names := make(map[string]bool, len(easings)+3)
	for name := range easings {
		names[name] = true
	}
	names["easeInElastic"] = true
	names["easeOutElastic"] = true
	names["easeInOutElastic"] = true
	return names
}()

// RegisterEasing adds a named curve, e.g. one compiled from a script.
// Built-in names cannot be replaced; custom names can, so edited scripts
// re-register under the same name on reload.
func RegisterEasing(name string, fn ease.TweenFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("tween: easing needs a name and a function")
	}
	if builtinEasings[name] {
		return fmt.Errorf("tween: easing %q is built in", name)
	}
	easings[name] = fn
	return nil
}

// periodFor maps elasticity onto the sine period of the elastic curves.
// Higher elasticity means a longer period and softer overshoot.
func periodFor(elasticity float64) float64 {
	e := math.Min(math.Max(elasticity, 1), 1000)
	return 0.2 + e/1250
}

func outElastic(elasticity float64) ease.TweenFunc {
	p := periodFor(elasticity)
	return func(t, b, c, d float32) float32 {
		s := elasticProgress(t, d)
		if s == 0 {
			return b
		}
		if s >= 1 {
			return b + c
		}
		decay := math.Pow(2, -10*s) * math.Sin((s-p/4)*(2*math.Pi)/p)
		return b + c*float32(decay) + c
	}
}

func inElastic(elasticity float64) ease.TweenFunc {
	p := periodFor(elasticity)
	return func(t, b, c, d float32) float32 {
		s := elasticProgress(t, d)
		if s == 0 {
			return b
		}
		if s >= 1 {
			return b + c
		}
		s--
		rise := -math.Pow(2, 10*s) * math.Sin((s-p/4)*(2*math.Pi)/p)
		return b + c*float32(rise)
	}
}

func inOutElastic(elasticity float64) ease.TweenFunc {
	in := inElastic(elasticity)
	out := outElastic(elasticity)
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		if t < d/2 {
			return in(t*2, b, c/2, d)
		}
		return out(t*2-d, b+c/2, c/2, d)
	}
}

func elasticProgress(t, d float32) float64 {
	if d <= 0 {
		return 1
	}
	s := float64(t / d)
	if s < 0 {
		return 0
	}
	return s
}
