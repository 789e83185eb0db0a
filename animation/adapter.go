package animation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mazznoer/csscolorparser"
	"go.uber.org/zap"

	"github.com/milk9111/scenetween/scene"
	"github.com/milk9111/scenetween/tween"
)

// writeState remembers the last value written into the scene graph so
// overlapping interpolations (several animations restarting at time zero in
// one frame) do not issue redundant writes.
type writeState struct {
	nums    []float64
	text    string
	hasNums bool
	hasText bool
}

func (s *writeState) reset() {
	s.nums = s.nums[:0]
	s.text = ""
	s.hasNums = false
	s.hasText = false
}

// changedNums stores v and reports whether it differs from the last write.
func (s *writeState) changedNums(v []float64) bool {
	if s.hasNums && len(s.nums) == len(v) {
		same := true
		for i := range v {
			if v[i] != s.nums[i] {
				same = false
				break
			}
		}
		if same {
			return false
		}
	}
	s.nums = append(s.nums[:0], v...)
	s.hasNums = true
	return true
}

func (s *writeState) changedText(v string) bool {
	if s.hasText && s.text == v {
		return false
	}
	s.text = v
	s.hasText = true
	return true
}

// interpConfig assembles the engine configuration shared by every route.
func (a *Animation) interpConfig(from, to []float64, onUpdate func([]float64)) tween.Config {
	easing, ok := tween.Easing(a.cfg.Easing, a.cfg.Elasticity)
	if !ok {
		a.logger().Warn("animation: unknown easing, falling back",
			zap.String("easing", a.cfg.Easing))
		easing, _ = tween.Easing(defaultEasing, a.cfg.Elasticity)
	}
	return tween.Config{
		From:       from,
		To:         to,
		Duration:   a.cfg.Dur,
		Easing:     easing,
		Loop:       a.cfg.Loop,
		Direction:  tween.ParseDirection(a.cfg.Dir),
		OnUpdate:   onUpdate,
		OnComplete: a.complete,
	}
}

// buildVector wires a 2/3/4-lane interpolation for a vector property.
// Rotation endpoints convert degrees to radians; the written-back value
// stays in radians (the transform node is treated as radian-native).
func (a *Animation) buildVector() error {
	n := a.route.VecLen
	if a.cfg.To == "" {
		return fmt.Errorf("animation: property %q has no `to` endpoint", a.cfg.Property)
	}
	to, err := scene.ParseVec(a.cfg.To, n)
	if err != nil {
		return err
	}
	var from []float64
	if a.cfg.From != "" {
		if from, err = scene.ParseVec(a.cfg.From, n); err != nil {
			return err
		}
	} else {
		cur, _ := scene.GetProperty(a.entity, a.route.Path)
		from = vecComponents(cur, n)
	}
	if a.route.Rotation {
		for i := range from {
			from[i] = mgl64.DegToRad(from[i])
			to[i] = mgl64.DegToRad(to[i])
		}
	}

	path := a.route.Path
	transform := a.route.Transform
	onUpdate := func(vals []float64) {
		if !a.write.changedNums(vals) {
			return
		}
		if transform {
			a.writeTransform(path, vals)
			return
		}
		_ = scene.SetProperty(a.entity, path, vecValue(vals, n))
	}

	in, err := tween.New(a.interpConfig(from, to, onUpdate))
	if err != nil {
		return err
	}
	a.interp = in
	return nil
}

// writeTransform bypasses the managed accessor for the spatial transform
// vectors and lands directly on the entity node.
func (a *Animation) writeTransform(path string, vals []float64) {
	node := a.entity.Node()
	if node == nil {
		return
	}
	var dst *mgl64.Vec3
	switch path {
	case scene.PropPosition:
		dst = &node.Position
	case scene.PropRotation:
		dst = &node.Rotation
	case scene.PropScale:
		dst = &node.Scale
	default:
		return
	}
	for i := 0; i < len(vals) && i < 3; i++ {
		dst[i] = vals[i]
	}
}

// buildColor wires three normalized r/g/b lanes against a raw color
// container. The destination decides whether values land in r/g/b or x/y/z
// fields.
func (a *Animation) buildColor() error {
	if a.cfg.To == "" {
		return fmt.Errorf("animation: property %q has no `to` endpoint", a.cfg.Property)
	}
	rawPath := a.route.Path
	if !hasRawPrefix(rawPath) {
		rawPath = "components." + rawPath
	}
	dst, err := resolveRawValue(a.entity, rawPath)
	if err != nil {
		return err
	}
	if err := colorWritable(dst); err != nil {
		return err
	}

	toC, err := csscolorparser.Parse(a.cfg.To)
	if err != nil {
		return fmt.Errorf("animation: bad `to` color %q: %w", a.cfg.To, err)
	}
	a.toColor = toC
	if a.cfg.From != "" {
		fromC, err := csscolorparser.Parse(a.cfg.From)
		if err != nil {
			return fmt.Errorf("animation: bad `from` color %q: %w", a.cfg.From, err)
		}
		a.fromColor = fromC
	} else {
		r, g, b, err := readColor(dst)
		if err != nil {
			return err
		}
		a.fromColor = csscolorparser.Color{R: r, G: g, B: b, A: 1}
	}

	from := []float64{a.fromColor.R, a.fromColor.G, a.fromColor.B}
	to := []float64{a.toColor.R, a.toColor.G, a.toColor.B}
	onUpdate := func(vals []float64) {
		if !a.write.changedNums(vals) {
			return
		}
		_ = writeColor(dst, vals[0], vals[1], vals[2])
	}

	in, err := tween.New(a.interpConfig(from, to, onUpdate))
	if err != nil {
		return err
	}
	a.interp = in
	return nil
}

// buildScalar wires the raw, managed, and default routes: a single numeric
// lane, boolean-text coercion, or discrete string endpoints.
func (a *Animation) buildScalar() error {
	if a.cfg.To == "" {
		return fmt.Errorf("animation: property %q has no `to` endpoint", a.cfg.Property)
	}

	var tgt target
	raw := a.route.Kind == RouteRawPath
	if raw {
		var err error
		if tgt, err = resolveRaw(a.entity, a.route.Path); err != nil {
			return err
		}
	}
	read := func() (any, bool) {
		if raw {
			v, err := tgt.read()
			return v, err == nil
		}
		return scene.GetProperty(a.entity, a.route.Path)
	}
	write := func(v any) {
		if raw {
			_ = tgt.write(v)
			return
		}
		_ = scene.SetProperty(a.entity, a.route.Path, v)
	}

	if a.cfg.To == "true" || a.cfg.To == "false" {
		return a.buildBool(read, write)
	}

	toF, toErr := strconv.ParseFloat(strings.TrimSpace(a.cfg.To), 64)
	if toErr == nil {
		fromF, ok := a.numericFrom(read)
		if ok {
			onUpdate := func(vals []float64) {
				if !a.write.changedNums(vals) {
					return
				}
				write(vals[0])
			}
			in, err := tween.New(a.interpConfig([]float64{fromF}, []float64{toF}, onUpdate))
			if err != nil {
				return err
			}
			a.interp = in
			return nil
		}
	}

	// Non-numeric endpoints interpolate discretely: hold `from`, snap to
	// `to` when the cycle reaches its end.
	a.fromText = a.cfg.From
	a.toText = a.cfg.To
	if a.fromText == "" {
		if cur, ok := read(); ok {
			a.fromText = looseString(cur)
		}
	}
	onUpdate := func(vals []float64) {
		text := a.fromText
		if vals[0] >= 1 {
			text = a.toText
		}
		if !a.write.changedText(text) {
			return
		}
		write(text)
	}
	in, err := tween.New(a.interpConfig([]float64{0}, []float64{1}, onUpdate))
	if err != nil {
		return err
	}
	a.interp = in
	return nil
}

// buildBool coerces boolean text endpoints onto a 0/1 lane; written-back
// values become true at >= 1.
func (a *Animation) buildBool(read func() (any, bool), write func(any)) error {
	to := 0.0
	if a.cfg.To == "true" {
		to = 1
	}
	from := 0.0
	switch a.cfg.From {
	case "true":
		from = 1
	case "false":
	case "":
		if cur, ok := read(); ok {
			if b, isBool := cur.(bool); isBool && b {
				from = 1
			}
		}
	default:
		if f, err := strconv.ParseFloat(a.cfg.From, 64); err == nil {
			from = f
		}
	}

	onUpdate := func(vals []float64) {
		if !a.write.changedNums(vals) {
			return
		}
		write(vals[0] >= 1)
	}
	in, err := tween.New(a.interpConfig([]float64{from}, []float64{to}, onUpdate))
	if err != nil {
		return err
	}
	a.interp = in
	return nil
}

// numericFrom resolves the starting number: the declared `from`, or a live
// sample of the current value. A non-numeric declared `from` rejects the
// numeric route so both endpoints fall back to strings.
func (a *Animation) numericFrom(read func() (any, bool)) (float64, bool) {
	if a.cfg.From != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(a.cfg.From), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	cur, ok := read()
	if !ok || cur == nil {
		return 0, true
	}
	if f, ok := looseFloat(cur); ok {
		return f, true
	}
	return 0, false
}

func looseFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func looseString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func vecComponents(v any, n int) []float64 {
	out := make([]float64, n)
	switch vec := v.(type) {
	case mgl64.Vec2:
		copy(out, vec[:])
	case mgl64.Vec3:
		copy(out, vec[:])
	case mgl64.Vec4:
		copy(out, vec[:])
	case []float64:
		copy(out, vec)
	}
	return out
}

func vecValue(vals []float64, n int) any {
	switch n {
	case 2:
		return mgl64.Vec2{vals[0], vals[1]}
	case 4:
		return mgl64.Vec4{vals[0], vals[1], vals[2], vals[3]}
	default:
		return mgl64.Vec3{vals[0], vals[1], vals[2]}
	}
}

// colorWritable verifies the destination exposes settable r/g/b or x/y/z
// fields before any interpolation is created.
func colorWritable(dst reflect.Value) error {
	if !dst.IsValid() {
		return fmt.Errorf("animation: color destination is not resolvable")
	}
	switch dst.Kind() {
	case reflect.Struct:
		if f, _ := colorFields(dst); f != nil {
			for _, fv := range f {
				if !fv.CanSet() {
					return fmt.Errorf("animation: color destination is not settable")
				}
			}
			return nil
		}
	case reflect.Array, reflect.Slice:
		if dst.Len() >= 3 && dst.Index(0).CanSet() {
			return nil
		}
	}
	return fmt.Errorf("animation: %s is not a color container", dst.Type())
}

// colorFields returns the three destination fields, preferring r/g/b over
// x/y/z, along with which naming was found.
func colorFields(dst reflect.Value) ([]reflect.Value, string) {
	lookup := func(names [3]string) []reflect.Value {
		out := make([]reflect.Value, 0, 3)
		for _, name := range names {
			f := dst.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, name) })
			if !f.IsValid() || !canHoldFloat(f) {
				return nil
			}
			out = append(out, f)
		}
		return out
	}
	if f := lookup([3]string{"r", "g", "b"}); f != nil {
		return f, "rgb"
	}
	if f := lookup([3]string{"x", "y", "z"}); f != nil {
		return f, "xyz"
	}
	return nil, ""
}

func canHoldFloat(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func readColor(dst reflect.Value) (r, g, b float64, err error) {
	switch dst.Kind() {
	case reflect.Struct:
		if f, _ := colorFields(dst); f != nil {
			return f[0].Float(), f[1].Float(), f[2].Float(), nil
		}
	case reflect.Array, reflect.Slice:
		if dst.Len() >= 3 {
			return dst.Index(0).Float(), dst.Index(1).Float(), dst.Index(2).Float(), nil
		}
	}
	return 0, 0, 0, fmt.Errorf("animation: cannot read color from %s", dst.Type())
}

func writeColor(dst reflect.Value, r, g, b float64) error {
	switch dst.Kind() {
	case reflect.Struct:
		if f, _ := colorFields(dst); f != nil {
			vals := [3]float64{r, g, b}
			for i, fv := range f {
				fv.SetFloat(vals[i])
			}
			return nil
		}
	case reflect.Array, reflect.Slice:
		if dst.Len() >= 3 {
			vals := [3]float64{r, g, b}
			for i := 0; i < 3; i++ {
				if err := setValue(dst.Index(i), vals[i]); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return fmt.Errorf("animation: cannot write color into %s", dst.Type())
}
