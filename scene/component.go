package scene

// Behavior is the lifecycle contract for components that carry per-frame
// logic. Plain data components have no behavior.
type Behavior interface {
	// Init is called once, when the instance is first attached.
	Init(e *Entity, inst *Instance)
	// Update is called whenever the instance's configuration is (re)applied.
	Update(data map[string]any)
	// Tick is called every frame while the entity is playing. now and delta
	// are simulated milliseconds.
	Tick(now, delta float64)
	// Remove is called when the instance is detached or its entity removed.
	Remove()
	// Pause and Play follow the owning entity's pause state.
	Pause()
	Play()
}

// BaseBehavior provides no-op defaults. Embed it and override what you need.
type BaseBehavior struct{}

func (BaseBehavior) Init(*Entity, *Instance) {}
func (BaseBehavior) Update(map[string]any)   {}
func (BaseBehavior) Tick(float64, float64)   {}
func (BaseBehavior) Remove()                 {}
func (BaseBehavior) Pause()                  {}
func (BaseBehavior) Play()                   {}

// ComponentDef describes a registered component type.
type ComponentDef struct {
	Name   string
	Schema Schema
	// Multiple allows several instances on one entity, addressed as
	// "name__suffix".
	Multiple bool
	// New builds the behavior for a fresh instance. Nil for data components.
	New func() Behavior
}

// CoerceData applies schema defaults and converts raw values into their
// canonical forms. Values that fail coercion are kept raw; unknown keys pass
// through untouched.
func (d *ComponentDef) CoerceData(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw)+len(d.Schema))
	for k, v := range raw {
		out[k] = v
	}
	for key, pd := range d.Schema {
		v, ok := out[key]
		if !ok {
			v = pd.Default
		}
		coerced, err := CoerceValue(pd.Type, v)
		if err != nil || coerced == nil {
			continue
		}
		out[key] = coerced
	}
	return out
}

// Instance is one attached component on an entity.
type Instance struct {
	Def      *ComponentDef
	ID       string // full name, including any __suffix
	Data     map[string]any
	Behavior Behavior
	Entity   *Entity
}
