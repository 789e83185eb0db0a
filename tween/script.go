package tween

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/tanema/gween/ease"
)

// Scripted easing: a tengo source defines `ease := func(t) { ... }` mapping
// normalized progress [0,1] to a normalized eased value. The script is
// compiled once; each call sets __t and re-runs the compiled program.
const easeDispatchScript = `
__out = ease(__t)
`

// ScriptEase compiles a tengo easing script into a curve usable by the
// interpolation engine. Script errors after compilation degrade to holding
// the start value rather than failing the frame.
func ScriptEase(src []byte) (ease.TweenFunc, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), []byte(easeDispatchScript)...))
	if err := script.Add("__t", 0.0); err != nil {
		return nil, err
	}
	if err := script.Add("__out", 0.0); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("tween: compile easing script: %w", err)
	}

	// Probe once so bad scripts fail at registration, not mid-animation.
	if err := compiled.Set("__t", 0.0); err != nil {
		return nil, err
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("tween: run easing script: %w", err)
	}

	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		progress := float64(t / d)
		if progress < 0 {
			progress = 0
		}
		if progress > 1 {
			progress = 1
		}
		if err := compiled.Set("__t", progress); err != nil {
			return b
		}
		if err := compiled.Run(); err != nil {
			return b
		}
		return b + c*float32(compiled.Get("__out").Float())
	}, nil
}

// RegisterScriptEasing compiles src and registers it under name.
func RegisterScriptEasing(name string, src []byte) error {
	fn, err := ScriptEase(src)
	if err != nil {
		return err
	}
	return RegisterEasing(name, fn)
}
