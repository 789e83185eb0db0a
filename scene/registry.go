package scene

import (
	"fmt"
	"strings"
)

// registry is the process-wide component table. Register during application
// initialization, before any scene is built.
var registry = map[string]*ComponentDef{}

// Register adds a component definition. Registering the same name twice is
// an error.
func Register(def *ComponentDef) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("scene: component definition must have a name")
	}
	if strings.Contains(def.Name, instanceSeparator) {
		return fmt.Errorf("scene: component name %q must not contain %q", def.Name, instanceSeparator)
	}
	if _, ok := registry[def.Name]; ok {
		return fmt.Errorf("scene: component %q already registered", def.Name)
	}
	registry[def.Name] = def
	return nil
}

// MustRegister is Register that panics on error, for init-time wiring.
func MustRegister(def *ComponentDef) {
	if err := Register(def); err != nil {
		panic(err)
	}
}

// Lookup returns the definition for a base component name.
func Lookup(name string) (*ComponentDef, bool) {
	def, ok := registry[name]
	return def, ok
}

const instanceSeparator = "__"

// BaseName strips the "__suffix" instance qualifier from a component id.
func BaseName(id string) string {
	if i := strings.Index(id, instanceSeparator); i >= 0 {
		return id[:i]
	}
	return id
}
