package tween

import (
	"math"
	"testing"
)

func TestEasingLookup(t *testing.T) {
	known := []string{
		"linear",
		"easeInQuad", "easeOutQuad", "easeInOutQuad",
		"easeInCubic", "easeOutCubic", "easeInOutCubic",
		"easeInSine", "easeOutSine", "easeInOutSine",
		"easeInExpo", "easeOutExpo", "easeInOutExpo",
		"easeInBounce", "easeOutBounce", "easeInOutBounce",
		"easeInElastic", "easeOutElastic", "easeInOutElastic",
	}
	for _, name := range known {
		if _, ok := Easing(name, DefaultElasticity); !ok {
			t.Fatalf("expected %q to resolve", name)
		}
	}
	if _, ok := Easing("easeInNothing", DefaultElasticity); ok {
		t.Fatalf("unknown easing should not resolve")
	}
}

func TestElasticEndpoints(t *testing.T) {
	cases := []struct {
		name       string
		easing     string
		elasticity float64
	}{
		{"in_default", "easeInElastic", DefaultElasticity},
		{"out_default", "easeOutElastic", DefaultElasticity},
		{"inout_default", "easeInOutElastic", DefaultElasticity},
		{"in_stiff", "easeInElastic", 1},
		{"out_soft", "easeOutElastic", 1000},
		{"clamped_above_range", "easeOutElastic", 5000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fn, ok := Easing(c.easing, c.elasticity)
			if !ok {
				t.Fatalf("easing %q missing", c.easing)
			}
			if got := fn(0, 2, 10, 1000); got != 2 {
				t.Fatalf("expected start value 2, got %v", got)
			}
			if got := fn(1000, 2, 10, 1000); math.Abs(float64(got)-12) > 1e-3 {
				t.Fatalf("expected end value 12, got %v", got)
			}
		})
	}
}

func TestElasticOvershoots(t *testing.T) {
	fn, _ := Easing("easeOutElastic", DefaultElasticity)
	over := false
	for i := 1; i < 100; i++ {
		v := fn(float32(i)*10, 0, 1, 1000)
		if v > 1 {
			over = true
			break
		}
	}
	if !over {
		t.Fatalf("out-elastic should overshoot its target")
	}
}

func TestRegisterEasing(t *testing.T) {
	flat := func(t, b, c, d float32) float32 { return b }

	if err := RegisterEasing("", flat); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := RegisterEasing("custom_flat", nil); err == nil {
		t.Fatalf("expected nil function to fail")
	}
	if err := RegisterEasing("linear", flat); err == nil {
		t.Fatalf("built-in names must not be replaceable")
	}
	if err := RegisterEasing("easeOutElastic", flat); err == nil {
		t.Fatalf("elastic names must not be replaceable")
	}

	if err := RegisterEasing("custom_flat", flat); err != nil {
		t.Fatalf("RegisterEasing: %v", err)
	}
	fn, ok := Easing("custom_flat", DefaultElasticity)
	if !ok {
		t.Fatalf("registered easing should resolve")
	}
	if got := fn(500, 3, 10, 1000); got != 3 {
		t.Fatalf("expected registered curve to run, got %v", got)
	}

	// Custom names overwrite, so a reloaded script replaces its old curve.
	end := func(t, b, c, d float32) float32 { return b + c }
	if err := RegisterEasing("custom_flat", end); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	fn, _ = Easing("custom_flat", DefaultElasticity)
	if got := fn(500, 3, 10, 1000); got != 13 {
		t.Fatalf("expected replacement curve to run, got %v", got)
	}
}
