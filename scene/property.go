package scene

import (
	"fmt"
	"strings"
)

// Transform property names resolved against the entity Node rather than a
// component data bag.
const (
	PropPosition = "position"
	PropRotation = "rotation"
	PropScale    = "scale"
)

// IsTransformProperty reports whether path names one of the built-in
// transform vectors.
func IsTransformProperty(path string) bool {
	switch path {
	case PropPosition, PropRotation, PropScale:
		return true
	}
	return false
}

// PropertyType reports the declared schema type for a dotted
// "component.property" path, or for a built-in transform property.
func PropertyType(e *Entity, path string) (PropType, bool) {
	if IsTransformProperty(path) {
		return TypeVec3, true
	}
	comp, prop, ok := strings.Cut(path, ".")
	if !ok || e == nil {
		return 0, false
	}
	inst, ok := e.comps[comp]
	if !ok || inst.Def == nil {
		return 0, false
	}
	pd, ok := inst.Def.Schema[prop]
	if !ok {
		return 0, false
	}
	return pd.Type, true
}

// GetProperty reads a value through the generic component-property accessor.
func GetProperty(e *Entity, path string) (any, bool) {
	if e == nil {
		return nil, false
	}
	switch path {
	case PropPosition:
		return e.node.Position, true
	case PropRotation:
		return e.node.Rotation, true
	case PropScale:
		return e.node.Scale, true
	}
	comp, prop, ok := strings.Cut(path, ".")
	if !ok {
		return nil, false
	}
	inst, ok := e.comps[comp]
	if !ok {
		return nil, false
	}
	v, ok := inst.Data[prop]
	return v, ok
}

// SetProperty writes a value through the generic component-property
// accessor. Values are coerced against the component schema when one is
// declared for the property.
func SetProperty(e *Entity, path string, v any) error {
	if e == nil {
		return fmt.Errorf("scene: entity is nil")
	}
	if IsTransformProperty(path) {
		vec, err := CoerceValue(TypeVec3, v)
		if err != nil {
			return err
		}
		c, err := toComponents(vec, 3)
		if err != nil {
			return err
		}
		switch path {
		case PropPosition:
			e.node.Position[0], e.node.Position[1], e.node.Position[2] = c[0], c[1], c[2]
		case PropRotation:
			e.node.Rotation[0], e.node.Rotation[1], e.node.Rotation[2] = c[0], c[1], c[2]
		case PropScale:
			e.node.Scale[0], e.node.Scale[1], e.node.Scale[2] = c[0], c[1], c[2]
		}
		return nil
	}

	comp, prop, ok := strings.Cut(path, ".")
	if !ok {
		return fmt.Errorf("scene: property path %q is not addressable", path)
	}
	inst, ok := e.comps[comp]
	if !ok {
		return fmt.Errorf("scene: entity %q has no component %q", e.name, comp)
	}
	if pd, ok := inst.Def.Schema[prop]; ok {
		coerced, err := CoerceValue(pd.Type, v)
		if err != nil {
			return err
		}
		v = coerced
	}
	if inst.Data == nil {
		inst.Data = make(map[string]any)
	}
	inst.Data[prop] = v
	return nil
}
