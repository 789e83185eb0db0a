package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mazznoer/csscolorparser"
)

func TestParseVec(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		n       int
		want    []float64
		wantErr bool
	}{
		{"full", "1 2 3", 3, []float64{1, 2, 3}, false},
		{"missing_trailing_default_zero", "1 2", 3, []float64{1, 2, 0}, false},
		{"empty_all_zero", "", 3, []float64{0, 0, 0}, false},
		{"negative_and_fraction", "-1.5 0.25", 2, []float64{-1.5, 0.25}, false},
		{"too_many", "1 2 3 4", 3, nil, true},
		{"not_a_number", "1 two 3", 3, nil, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseVec(c.in, c.n)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVec(%q, %d): %v", c.in, c.n, err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("expected %d components, got %d", len(c.want), len(got))
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("component %d: expected %v, got %v", i, c.want[i], got[i])
				}
			}
		})
	}
}

func TestCoerceValue(t *testing.T) {
	cases := []struct {
		name    string
		typ     PropType
		in      any
		want    any
		wantErr bool
	}{
		{"number_from_int", TypeNumber, 7, 7.0, false},
		{"number_from_string", TypeNumber, " 2.5 ", 2.5, false},
		{"number_bad_string", TypeNumber, "nope", nil, true},
		{"string_passthrough", TypeString, "hi", "hi", false},
		{"string_from_bool", TypeString, true, "true", false},
		{"boolean_from_string", TypeBoolean, "true", true, false},
		{"boolean_from_number", TypeBoolean, 1.0, true, false},
		{"boolean_bad", TypeBoolean, "maybe", nil, true},
		{"vec3_from_string", TypeVec3, "1 2 3", mgl64.Vec3{1, 2, 3}, false},
		{"vec3_pads_missing", TypeVec3, "1", mgl64.Vec3{1, 0, 0}, false},
		{"vec2_from_list", TypeVec2, []any{1, 2}, mgl64.Vec2{1, 2}, false},
		{"vec4_from_string", TypeVec4, "1 2 3 4", mgl64.Vec4{1, 2, 3, 4}, false},
		{"nil_stays_nil", TypeNumber, nil, nil, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := CoerceValue(c.typ, c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("CoerceValue: %v", err)
			}
			if got != c.want {
				t.Fatalf("expected %v (%T), got %v (%T)", c.want, c.want, got, got)
			}
		})
	}

	t.Run("color_from_name", func(t *testing.T) {
		got, err := CoerceValue(TypeColor, "red")
		if err != nil {
			t.Fatalf("CoerceValue: %v", err)
		}
		c, ok := got.(*csscolorparser.Color)
		if !ok {
			t.Fatalf("expected *csscolorparser.Color, got %T", got)
		}
		if c.R != 1 || c.G != 0 || c.B != 0 {
			t.Fatalf("expected pure red, got %+v", c)
		}
	})

	t.Run("color_bad", func(t *testing.T) {
		if _, err := CoerceValue(TypeColor, "not-a-color"); err == nil {
			t.Fatalf("expected error for bad color")
		}
	})
}

func TestFormatVecRoundTrip(t *testing.T) {
	in := []float64{1.5, -2, 0}
	s := FormatVec(in)
	out, err := ParseVec(s, 3)
	if err != nil {
		t.Fatalf("ParseVec(%q): %v", s, err)
	}
	for i := range in {
		if math.Abs(out[i]-in[i]) > 1e-12 {
			t.Fatalf("component %d: expected %v, got %v", i, in[i], out[i])
		}
	}
}
