package animation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/milk9111/scenetween/scene"
)

// segmentCache memoizes dot-split path segment lists by path string. The
// frame loop is single-threaded, so a plain map is fine.
var segmentCache = map[string][]string{}

func splitPath(path string) []string {
	if segs, ok := segmentCache[path]; ok {
		return segs
	}
	segs := strings.Split(path, ".")
	segmentCache[path] = segs
	return segs
}

// target is a resolved raw-path destination: the terminal container plus the
// final property key within it.
type target struct {
	container reflect.Value
	key       string
}

// resolveRaw walks the dotted path over the entity raw tree down to the
// terminal container. Missing segments surface as plain errors; nothing is
// created along the way.
func resolveRaw(e *scene.Entity, path string) (target, error) {
	segs := splitPath(path)
	if len(segs) < 2 {
		return target{}, fmt.Errorf("animation: raw path %q is not addressable", path)
	}
	cur := reflect.ValueOf(e.RawRoot())
	for _, seg := range segs[:len(segs)-1] {
		next, err := step(cur, seg)
		if err != nil {
			return target{}, fmt.Errorf("animation: raw path %q: %w", path, err)
		}
		cur = next
	}
	cur = indirect(cur)
	return target{container: cur, key: segs[len(segs)-1]}, nil
}

// resolveRawValue walks the whole path and returns the terminal value
// itself, dereferenced. Used by the color route, whose destination is a
// container rather than a scalar.
func resolveRawValue(e *scene.Entity, path string) (reflect.Value, error) {
	segs := splitPath(path)
	cur := reflect.ValueOf(e.RawRoot())
	for _, seg := range segs {
		next, err := step(cur, seg)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("animation: raw path %q: %w", path, err)
		}
		cur = next
	}
	return indirect(cur), nil
}

func step(v reflect.Value, seg string) (reflect.Value, error) {
	v = indirect(v)
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("nil before %q", seg)
	}
	switch v.Kind() {
	case reflect.Map:
		mv := v.MapIndex(reflect.ValueOf(seg))
		if !mv.IsValid() {
			return reflect.Value{}, fmt.Errorf("no entry %q", seg)
		}
		return mv, nil
	case reflect.Struct:
		f := v.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, seg) })
		if !f.IsValid() {
			return reflect.Value{}, fmt.Errorf("no field %q", seg)
		}
		return f, nil
	case reflect.Array, reflect.Slice:
		idx, ok := axisIndex(seg)
		if !ok || idx >= v.Len() {
			return reflect.Value{}, fmt.Errorf("no element %q", seg)
		}
		return v.Index(idx), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot descend into %s at %q", v.Kind(), seg)
}

// indirect unwraps interfaces and pointers down to the concrete value.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// axisIndex maps vector/color component names (and digits) onto indices.
func axisIndex(seg string) (int, bool) {
	switch strings.ToLower(seg) {
	case "x", "r":
		return 0, true
	case "y", "g":
		return 1, true
	case "z", "b":
		return 2, true
	case "w", "a":
		return 3, true
	}
	n, err := strconv.Atoi(seg)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// read returns the current raw value at the target.
func (t target) read() (any, error) {
	v, err := t.element()
	if err != nil {
		return nil, err
	}
	v = indirect(v)
	if !v.IsValid() {
		return nil, nil
	}
	return v.Interface(), nil
}

// write stores a scalar at the target, converting to the destination's
// numeric type where needed.
func (t target) write(v any) error {
	c := t.container
	switch c.Kind() {
	case reflect.Map:
		c.SetMapIndex(reflect.ValueOf(t.key), reflect.ValueOf(v))
		return nil
	case reflect.Struct:
		f := c.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, t.key) })
		if !f.IsValid() {
			return fmt.Errorf("animation: no field %q", t.key)
		}
		return setValue(f, v)
	case reflect.Array, reflect.Slice:
		idx, ok := axisIndex(t.key)
		if !ok || idx >= c.Len() {
			return fmt.Errorf("animation: no element %q", t.key)
		}
		return setValue(c.Index(idx), v)
	}
	return fmt.Errorf("animation: cannot write into %s", c.Kind())
}

func (t target) element() (reflect.Value, error) {
	c := t.container
	if !c.IsValid() {
		return reflect.Value{}, fmt.Errorf("animation: unresolved target")
	}
	return step(c, t.key)
}

func setValue(dst reflect.Value, v any) error {
	if !dst.CanSet() {
		return fmt.Errorf("animation: destination is not settable")
	}
	src := reflect.ValueOf(v)
	if src.Type() == dst.Type() {
		dst.Set(src)
		return nil
	}
	if src.Type().ConvertibleTo(dst.Type()) {
		dst.Set(src.Convert(dst.Type()))
		return nil
	}
	return fmt.Errorf("animation: cannot store %T into %s", v, dst.Type())
}
