package animation

import (
	"strings"

	"github.com/milk9111/scenetween/scene"
)

// RouteKind tags how a property is read from and written to the scene graph.
type RouteKind int

const (
	// RouteDefault sniffs endpoints as number, boolean text, or string and
	// goes through the managed accessor.
	RouteDefault RouteKind = iota
	// RouteManaged is a managed property with a declared scalar schema type.
	RouteManaged
	// RouteRawPath walks the dotted path over the entity raw tree.
	RouteRawPath
	// RouteVector animates a 2/3/4-component vector property.
	RouteVector
	// RouteColor animates normalized r/g/b endpoints.
	RouteColor
)

func (k RouteKind) String() string {
	switch k {
	case RouteDefault:
		return "default"
	case RouteManaged:
		return "managed"
	case RouteRawPath:
		return "raw"
	case RouteVector:
		return "vector"
	case RouteColor:
		return "color"
	}
	return "unknown"
}

// Route is the read/write strategy for one animation instance. It is
// recomputed from scratch on every configuration update and every restart.
type Route struct {
	Kind RouteKind
	Path string
	// SchemaType is set for RouteManaged and RouteVector.
	SchemaType scene.PropType
	// VecLen is the lane count for RouteVector.
	VecLen int
	// Transform marks position/rotation/scale writes that bypass the
	// managed accessor and land directly on the entity Node.
	Transform bool
	// Rotation selects the degree->radian endpoint conversion.
	Rotation bool
}

var rawPrefixes = []string{"node.", "components."}

func hasRawPrefix(path string) bool {
	for _, p := range rawPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// classify decides the route for the configured property against the target
// entity's declared schema.
func classify(e *scene.Entity, cfg Config) Route {
	path := cfg.Property
	if cfg.Type == routeTypeColor {
		return Route{Kind: RouteColor, Path: path}
	}
	if cfg.RawProperty || hasRawPrefix(path) {
		return Route{Kind: RouteRawPath, Path: path}
	}
	if t, ok := scene.PropertyType(e, path); ok {
		if n := t.VectorLen(); n >= 2 {
			return Route{
				Kind:       RouteVector,
				Path:       path,
				SchemaType: t,
				VecLen:     n,
				Transform:  scene.IsTransformProperty(path),
				Rotation:   path == scene.PropRotation,
			}
		}
		return Route{Kind: RouteManaged, Path: path, SchemaType: t}
	}
	return Route{Kind: RouteDefault, Path: path}
}
