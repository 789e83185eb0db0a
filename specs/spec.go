// Package specs loads declarative scene files: yaml documents naming
// entities, their components, and any scripted easing curves the
// animations reference.
package specs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneSpec is one declarative scene document.
type SceneSpec struct {
	Name string `yaml:"name"`
	// Easings maps easing names to tengo script paths, relative to the
	// spec file.
	Easings  map[string]string `yaml:"easings"`
	Entities []EntitySpec      `yaml:"entities"`
}

// EntitySpec declares one entity and its components by full instance name
// ("material", "animation__fade"). The transform fields hold space-separated
// coordinates ("x y z") and are optional.
type EntitySpec struct {
	Name       string         `yaml:"name"`
	Position   string         `yaml:"position"`
	Rotation   string         `yaml:"rotation"`
	Scale      string         `yaml:"scale"`
	Components map[string]any `yaml:"components"`
}

// Load reads and decodes a scene spec from disk.
func Load(path string) (SceneSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneSpec{}, fmt.Errorf("specs: read %q: %w", path, err)
	}
	return Decode(data)
}

// Decode parses a scene spec document.
func Decode(data []byte) (SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return SceneSpec{}, fmt.Errorf("specs: decode scene spec: %w", err)
	}
	return spec, nil
}

// DecodeComponent converts a raw component block into a typed spec by
// round-tripping through yaml.
func DecodeComponent[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}
