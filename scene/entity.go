package scene

import "fmt"

// Entity is a named scene node that owns component instances, a transform,
// and event listeners.
type Entity struct {
	name   string
	world  *World
	node   *Node
	comps  map[string]*Instance
	order  []string // attach order, for deterministic ticks
	events emitter
	paused bool
}

func newEntity(w *World, name string) *Entity {
	return &Entity{
		name:  name,
		world: w,
		node:  newNode(),
		comps: make(map[string]*Instance),
	}
}

// Name returns the entity name.
func (e *Entity) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// Node returns the entity transform.
func (e *Entity) Node() *Node {
	if e == nil {
		return nil
	}
	return e.node
}

// World returns the owning world.
func (e *Entity) World() *World {
	if e == nil {
		return nil
	}
	return e.world
}

// Paused reports whether the entity is paused.
func (e *Entity) Paused() bool {
	return e != nil && e.paused
}

// AddComponent attaches a component instance by full name ("material",
// "animation__fade"), or reapplies configuration to an existing instance.
func (e *Entity) AddComponent(id string, raw map[string]any) (*Instance, error) {
	if e == nil {
		return nil, fmt.Errorf("scene: entity is nil")
	}
	base := BaseName(id)
	def, ok := Lookup(base)
	if !ok {
		return nil, fmt.Errorf("scene: no component registered for %q", id)
	}
	if id != def.Name && !def.Multiple {
		return nil, fmt.Errorf("scene: component %q does not allow multiple instances", base)
	}

	data := def.CoerceData(raw)
	inst := e.comps[id]
	if inst == nil {
		inst = &Instance{Def: def, ID: id, Entity: e}
		if def.New != nil {
			inst.Behavior = def.New()
		}
		e.comps[id] = inst
		e.order = append(e.order, id)
		if inst.Behavior != nil {
			inst.Behavior.Init(e, inst)
		}
	}
	inst.Data = data
	if inst.Behavior != nil {
		inst.Behavior.Update(data)
	}
	return inst, nil
}

// RemoveComponent detaches an instance, invoking its behavior teardown.
func (e *Entity) RemoveComponent(id string) bool {
	if e == nil {
		return false
	}
	inst, ok := e.comps[id]
	if !ok {
		return false
	}
	if inst.Behavior != nil {
		inst.Behavior.Remove()
	}
	delete(e.comps, id)
	for i, n := range e.order {
		if n == id {
			e.order = append(e.order[:i:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

// Component returns the instance attached under the given full name.
func (e *Entity) Component(id string) (*Instance, bool) {
	if e == nil {
		return nil, false
	}
	inst, ok := e.comps[id]
	return inst, ok
}

// Components returns all attached instances in attach order.
func (e *Entity) Components() []*Instance {
	if e == nil {
		return nil
	}
	out := make([]*Instance, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.comps[id])
	}
	return out
}

// On attaches a named event listener and returns its id for Off.
func (e *Entity) On(name string, fn Handler) int {
	if e == nil {
		return 0
	}
	return e.events.on(name, fn)
}

// Off detaches a listener by name and id.
func (e *Entity) Off(name string, id int) bool {
	if e == nil {
		return false
	}
	return e.events.off(name, id)
}

// Emit dispatches an event to this entity's listeners synchronously.
func (e *Entity) Emit(name string, detail any) {
	if e == nil {
		return
	}
	e.events.emit(Event{Name: name, Detail: detail, Target: e})
}

// Pause suspends the entity: behaviors are told to pause and ticks stop.
func (e *Entity) Pause() {
	if e == nil || e.paused {
		return
	}
	e.paused = true
	for _, id := range e.order {
		if inst := e.comps[id]; inst != nil && inst.Behavior != nil {
			inst.Behavior.Pause()
		}
	}
}

// Play resumes a paused entity.
func (e *Entity) Play() {
	if e == nil || !e.paused {
		return
	}
	e.paused = false
	for _, id := range e.order {
		if inst := e.comps[id]; inst != nil && inst.Behavior != nil {
			inst.Behavior.Play()
		}
	}
}

// RawRoot exposes the entity's raw attribute tree for direct dotted-path
// access: "node" is the transform, "components" maps instance ids to their
// data bags.
func (e *Entity) RawRoot() map[string]any {
	if e == nil {
		return nil
	}
	comps := make(map[string]any, len(e.comps))
	for id, inst := range e.comps {
		comps[id] = inst.Data
	}
	return map[string]any{
		"node":       e.node,
		"components": comps,
	}
}

func (e *Entity) tick(now, delta float64) {
	if e == nil || e.paused {
		return
	}
	for _, id := range e.order {
		inst := e.comps[id]
		if inst != nil && inst.Behavior != nil {
			inst.Behavior.Tick(now, delta)
		}
	}
}

func (e *Entity) teardown() {
	if e == nil {
		return
	}
	for _, id := range e.order {
		if inst := e.comps[id]; inst != nil && inst.Behavior != nil {
			inst.Behavior.Remove()
		}
	}
	e.comps = make(map[string]*Instance)
	e.order = nil
}
