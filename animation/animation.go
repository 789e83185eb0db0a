package animation

import (
	"sync"

	"github.com/mazznoer/csscolorparser"
	"go.uber.org/zap"

	"github.com/milk9111/scenetween/scene"
	"github.com/milk9111/scenetween/tween"
)

// ComponentName is the registered scene component name. Additional
// instances attach as "animation__suffix".
const ComponentName = "animation"

// Lifecycle events emitted on the owning entity.
const (
	EventBegin    = "animationbegin"
	EventComplete = "animationcomplete"
)

// EventDetail identifies the instance that fired a lifecycle event.
type EventDetail struct {
	Name string
}

var registerOnce sync.Once

// Register adds the animation component to the process-wide scene registry.
// Call once during application initialization, before building scenes.
func Register() {
	registerOnce.Do(func() {
		scene.MustRegister(&scene.ComponentDef{
			Name:     ComponentName,
			Multiple: true,
			New:      func() scene.Behavior { return &Animation{} },
		})
	})
}

// Animation drives one declarative property tween on its entity. All state
// transitions happen on the frame loop; there is no internal locking.
type Animation struct {
	entity *scene.Entity
	inst   *scene.Instance

	cfg    Config
	route  Route
	interp *tween.Interp

	// time is the accumulated simulated time driving the interpolation.
	// Pausing freezes it; resuming continues from where it stopped.
	time       float64
	running    bool
	paused     bool
	wasRunning bool

	listeners []listenerRef
	write     writeState

	// Reusable endpoint scratch buffers for the color route.
	fromColor csscolorparser.Color
	toColor   csscolorparser.Color

	// Discrete endpoints for the string fallback.
	fromText string
	toText   string
}

type listenerRef struct {
	event string
	id    int
}

// Init records the owning entity and instance.
func (a *Animation) Init(e *scene.Entity, inst *scene.Instance) {
	a.entity = e
	a.inst = inst
}

// Update tears down the previous instance state and rebuilds everything
// from the new configuration. With no start triggers and autoplay on, the
// animation begins immediately (after the configured delay).
func (a *Animation) Update(data map[string]any) {
	a.teardown()
	cfg, err := ParseConfig(data)
	if err != nil {
		a.logger().Warn("animation: bad configuration", zap.Error(err))
		a.cfg = Config{}
		return
	}
	a.cfg = cfg
	if cfg.Property == "" {
		return
	}
	a.rebuild()
	a.attachListeners()
	if len(cfg.StartEvents) == 0 && cfg.Autoplay {
		a.beginAfterDelay()
	}
}

// Tick advances the interpolation while running. Completion is reported by
// the engine callback, not detected here.
func (a *Animation) Tick(now, delta float64) {
	if !a.running || a.interp == nil {
		return
	}
	a.time += delta
	a.interp.Tick(a.time)
}

// Remove detaches listeners and stops the instance for good.
func (a *Animation) Remove() {
	a.teardown()
}

// Pause handles entity-level suspension: listeners come off and the running
// flag is remembered so Play can restore it.
func (a *Animation) Pause() {
	a.wasRunning = a.running
	a.running = false
	a.detachListeners()
}

// Play re-attaches listeners after an entity-level pause and, if the
// animation had been running, resumes it at the previous simulated time.
func (a *Animation) Play() {
	if a.cfg.Property == "" {
		return
	}
	a.attachListeners()
	if a.wasRunning {
		a.running = true
	}
	a.wasRunning = false
}

// Running reports whether the instance is currently advancing.
func (a *Animation) Running() bool {
	return a != nil && a.running
}

// Time returns the accumulated simulated time in milliseconds.
func (a *Animation) Time() float64 {
	if a == nil {
		return 0
	}
	return a.time
}

// Config returns the active configuration.
func (a *Animation) Config() Config {
	if a == nil {
		return Config{}
	}
	return a.cfg
}

// beginAfterDelay begins now or arms a one-shot world timer. The armed
// callback cannot be canceled and does not re-check that this configuration
// is still current when it eventually fires.
func (a *Animation) beginAfterDelay() {
	if a.cfg.Delay > 0 {
		a.entity.World().After(a.cfg.Delay, a.begin)
		return
	}
	a.begin()
}

// begin restarts the animation from simulated time zero: the route is
// recomputed so empty `from` endpoints sample the value current right now,
// ownership of the property is claimed (stopping the previous owner), and
// the begin event fires.
func (a *Animation) begin() {
	a.rebuild()
	if a.interp == nil {
		return
	}
	a.time = 0
	a.paused = false
	a.write.reset()
	a.interp.Restart()
	claim(a.entity, a.cfg.Property, a)
	a.running = true
	a.interp.Seek(0)
	a.entity.Emit(EventBegin, EventDetail{Name: a.name()})
}

// pause and resume toggle the running flag only; elapsed time and the
// interpolation object stay untouched.
func (a *Animation) pause() {
	if !a.running {
		return
	}
	a.running = false
	a.paused = true
}

func (a *Animation) resume() {
	if !a.paused {
		return
	}
	a.paused = false
	a.running = true
}

// stop is invoked when another instance claims this instance's property.
// Listeners stay attached; only advancement stops.
func (a *Animation) stop() {
	a.running = false
	a.paused = false
}

// complete is the engine completion callback.
func (a *Animation) complete() {
	a.running = false
	a.paused = false
	a.entity.Emit(EventComplete, EventDetail{Name: a.name()})
}

// rebuild recomputes the property route and replaces the interpolation
// object. Failures log a warning and leave the instance idle.
func (a *Animation) rebuild() {
	a.interp = nil
	a.route = classify(a.entity, a.cfg)
	var err error
	switch a.route.Kind {
	case RouteVector:
		err = a.buildVector()
	case RouteColor:
		err = a.buildColor()
	default:
		err = a.buildScalar()
	}
	if err != nil {
		a.logger().Warn("animation: cannot build interpolation",
			zap.String("property", a.cfg.Property),
			zap.String("route", a.route.Kind.String()),
			zap.Error(err))
	}
}

func (a *Animation) attachListeners() {
	if len(a.listeners) > 0 {
		return
	}
	add := func(events []string, fn func()) {
		for _, name := range events {
			if name == "" {
				continue
			}
			id := a.entity.On(name, func(scene.Event) { fn() })
			a.listeners = append(a.listeners, listenerRef{event: name, id: id})
		}
	}
	add(a.cfg.StartEvents, a.beginAfterDelay)
	add(a.cfg.PauseEvents, a.pause)
	add(a.cfg.ResumeEvents, a.resume)
}

func (a *Animation) detachListeners() {
	for _, ref := range a.listeners {
		a.entity.Off(ref.event, ref.id)
	}
	a.listeners = nil
}

func (a *Animation) teardown() {
	a.running = false
	a.paused = false
	a.wasRunning = false
	a.detachListeners()
	release(a.entity, a.cfg.Property, a)
	a.interp = nil
}

func (a *Animation) name() string {
	if a.inst != nil {
		return a.inst.ID
	}
	return ComponentName
}

func (a *Animation) logger() *zap.Logger {
	return a.entity.World().Logger()
}
