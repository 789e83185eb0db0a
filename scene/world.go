package scene

import "go.uber.org/zap"

// World owns entities and the simulated clock. Everything runs on the
// caller's frame loop; there is no internal goroutine.
type World struct {
	log      *zap.Logger
	entities []*Entity
	byName   map[string]*Entity
	timers   []frameTimer
	now      float64
}

type frameTimer struct {
	due float64
	fn  func()
}

// NewWorld creates an empty world. A nil logger disables logging.
func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		log:    log,
		byName: make(map[string]*Entity),
	}
}

// Logger returns the world logger. Safe on a nil world.
func (w *World) Logger() *zap.Logger {
	if w == nil || w.log == nil {
		return zap.NewNop()
	}
	return w.log
}

// Now returns the simulated clock in milliseconds.
func (w *World) Now() float64 {
	if w == nil {
		return 0
	}
	return w.now
}

// NewEntity creates and registers an entity. A second entity with the same
// name replaces the first in name lookup but both keep ticking.
func (w *World) NewEntity(name string) *Entity {
	if w == nil {
		return nil
	}
	e := newEntity(w, name)
	w.entities = append(w.entities, e)
	if name != "" {
		w.byName[name] = e
	}
	return e
}

// Entity returns the entity registered under name, or nil.
func (w *World) Entity(name string) *Entity {
	if w == nil {
		return nil
	}
	return w.byName[name]
}

// Entities returns all registered entities in creation order.
func (w *World) Entities() []*Entity {
	if w == nil {
		return nil
	}
	return w.entities
}

// RemoveEntity tears down an entity's components and unregisters it.
func (w *World) RemoveEntity(e *Entity) bool {
	if w == nil || e == nil {
		return false
	}
	for i, cur := range w.entities {
		if cur == e {
			e.teardown()
			w.entities = append(w.entities[:i:i], w.entities[i+1:]...)
			if w.byName[e.name] == e {
				delete(w.byName, e.name)
			}
			return true
		}
	}
	return false
}

// After schedules fn to run once the simulated clock advances ms past now.
// The timer fires during Update, before entity ticks, and cannot be canceled
// once armed.
func (w *World) After(ms float64, fn func()) {
	if w == nil || fn == nil {
		return
	}
	if ms < 0 {
		ms = 0
	}
	w.timers = append(w.timers, frameTimer{due: w.now + ms, fn: fn})
}

// Update advances the clock by delta milliseconds, fires due timers, then
// ticks every playing entity.
func (w *World) Update(delta float64) {
	if w == nil {
		return
	}
	w.now += delta
	w.fireTimers()
	for _, e := range w.entities {
		e.tick(w.now, delta)
	}
}

func (w *World) fireTimers() {
	if len(w.timers) == 0 {
		return
	}
	// Callbacks may arm new timers; those wait for the next frame.
	pending := w.timers
	w.timers = nil
	for _, t := range pending {
		if t.due <= w.now {
			t.fn()
			continue
		}
		w.timers = append(w.timers, t)
	}
}
