package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mazznoer/csscolorparser"
)

// PropType classifies a schema property for value coercion and animation
// routing.
type PropType int

const (
	TypeNumber PropType = iota
	TypeString
	TypeBoolean
	TypeVec2
	TypeVec3
	TypeVec4
	TypeColor
)

// VectorLen reports the component count for vector types, 0 otherwise.
func (t PropType) VectorLen() int {
	switch t {
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	}
	return 0
}

func (t PropType) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeVec2:
		return "vec2"
	case TypeVec3:
		return "vec3"
	case TypeVec4:
		return "vec4"
	case TypeColor:
		return "color"
	}
	return "unknown"
}

// PropDef declares one schema property.
type PropDef struct {
	Type    PropType
	Default any
}

// Schema maps property names to their declarations.
type Schema map[string]PropDef

// ParseVec parses a space-separated coordinate string ("0 180 12.5") into n
// components. Missing trailing components default to zero.
func ParseVec(s string, n int) ([]float64, error) {
	out := make([]float64, n)
	fields := strings.Fields(s)
	if len(fields) > n {
		return nil, fmt.Errorf("scene: %q has %d components, want at most %d", s, len(fields), n)
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("scene: bad coordinate %q in %q: %w", f, s, err)
		}
		out[i] = v
	}
	return out, nil
}

// ParseVec3 parses a coordinate string into a Vec3.
func ParseVec3(s string) (mgl64.Vec3, error) {
	v, err := ParseVec(s, 3)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

// FormatVec renders components back into the coordinate-string form.
func FormatVec(v []float64) string {
	fields := make([]string, len(v))
	for i, c := range v {
		fields[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return strings.Join(fields, " ")
}

// CoerceValue converts a raw (usually yaml-decoded) value into the canonical
// in-memory form for the property type: float64, string, bool, mgl64 vectors,
// or *csscolorparser.Color.
func CoerceValue(t PropType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch t {
	case TypeNumber:
		return toFloat(v)
	case TypeString:
		return toString(v), nil
	case TypeBoolean:
		return toBool(v)
	case TypeVec2:
		c, err := toComponents(v, 2)
		if err != nil {
			return nil, err
		}
		return mgl64.Vec2{c[0], c[1]}, nil
	case TypeVec3:
		c, err := toComponents(v, 3)
		if err != nil {
			return nil, err
		}
		return mgl64.Vec3{c[0], c[1], c[2]}, nil
	case TypeVec4:
		c, err := toComponents(v, 4)
		if err != nil {
			return nil, err
		}
		return mgl64.Vec4{c[0], c[1], c[2], c[3]}, nil
	case TypeColor:
		return toColor(v)
	}
	return v, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("scene: %q is not a number: %w", n, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("scene: cannot coerce %T to number", v)
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("scene: %q is not a boolean: %w", b, err)
		}
		return parsed, nil
	case float64:
		return b >= 1, nil
	case int:
		return b >= 1, nil
	}
	return false, fmt.Errorf("scene: cannot coerce %T to boolean", v)
}

func toComponents(v any, n int) ([]float64, error) {
	switch c := v.(type) {
	case string:
		return ParseVec(c, n)
	case []any:
		if len(c) > n {
			return nil, fmt.Errorf("scene: vector literal has %d components, want at most %d", len(c), n)
		}
		out := make([]float64, n)
		for i, e := range c {
			f, err := toFloat(e)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	case mgl64.Vec2:
		return padComponents(c[:], n), nil
	case mgl64.Vec3:
		return padComponents(c[:], n), nil
	case mgl64.Vec4:
		return padComponents(c[:], n), nil
	}
	return nil, fmt.Errorf("scene: cannot coerce %T to vec%d", v, n)
}

func padComponents(c []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, c)
	return out
}

func toColor(v any) (*csscolorparser.Color, error) {
	switch c := v.(type) {
	case *csscolorparser.Color:
		return c, nil
	case csscolorparser.Color:
		return &c, nil
	case string:
		parsed, err := csscolorparser.Parse(c)
		if err != nil {
			return nil, fmt.Errorf("scene: bad color %q: %w", c, err)
		}
		return &parsed, nil
	}
	return nil, fmt.Errorf("scene: cannot coerce %T to color", v)
}
