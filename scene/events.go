package scene

// Event is delivered to entity listeners.
type Event struct {
	Name   string
	Detail any
	Target *Entity
}

// Handler receives entity events.
type Handler func(Event)

type listener struct {
	id int
	fn Handler
}

// emitter is a per-entity registry of named event listeners.
type emitter struct {
	nextID    int
	listeners map[string][]listener
}

func (m *emitter) on(name string, fn Handler) int {
	if fn == nil {
		return 0
	}
	if m.listeners == nil {
		m.listeners = make(map[string][]listener)
	}
	m.nextID++
	m.listeners[name] = append(m.listeners[name], listener{id: m.nextID, fn: fn})
	return m.nextID
}

func (m *emitter) off(name string, id int) bool {
	ls := m.listeners[name]
	for i, l := range ls {
		if l.id == id {
			m.listeners[name] = append(ls[:i:i], ls[i+1:]...)
			return true
		}
	}
	return false
}

func (m *emitter) emit(evt Event) {
	ls := m.listeners[evt.Name]
	if len(ls) == 0 {
		return
	}
	// Copy so handlers can attach/detach listeners mid-dispatch.
	copied := append([]listener(nil), ls...)
	for _, l := range copied {
		l.fn(evt)
	}
}
