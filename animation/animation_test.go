package animation

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mazznoer/csscolorparser"

	"github.com/milk9111/scenetween/scene"
)

var testRegisterOnce sync.Once

// panel is the component animated throughout these tests: a scalar, a
// boolean, a string, a vector, and a color property.
func registerTestComponents() {
	testRegisterOnce.Do(func() {
		Register()
		scene.MustRegister(&scene.ComponentDef{
			Name: "panel",
			Schema: scene.Schema{
				"opacity": {Type: scene.TypeNumber, Default: 1.0},
				"visible": {Type: scene.TypeBoolean, Default: false},
				"label":   {Type: scene.TypeString, Default: "low"},
				"size":    {Type: scene.TypeVec2, Default: "1 1"},
				"tint":    {Type: scene.TypeColor, Default: "black"},
			},
		})
	})
}

func newTestEntity(t *testing.T) (*scene.World, *scene.Entity) {
	t.Helper()
	registerTestComponents()
	w := scene.NewWorld(nil)
	e := w.NewEntity("box")
	if _, err := e.AddComponent("panel", nil); err != nil {
		t.Fatalf("add panel: %v", err)
	}
	return w, e
}

func addAnimation(t *testing.T, e *scene.Entity, id string, cfg map[string]any) *Animation {
	t.Helper()
	inst, err := e.AddComponent(id, cfg)
	if err != nil {
		t.Fatalf("add %s: %v", id, err)
	}
	a, ok := inst.Behavior.(*Animation)
	if !ok {
		t.Fatalf("expected animation behavior, got %T", inst.Behavior)
	}
	return a
}

func opacity(t *testing.T, e *scene.Entity) float64 {
	t.Helper()
	v, ok := scene.GetProperty(e, "panel.opacity")
	if !ok {
		t.Fatalf("panel.opacity missing")
	}
	f, ok := v.(float64)
	if !ok {
		t.Fatalf("expected float opacity, got %T", v)
	}
	return f
}

func TestEmptyPropertyStaysIdle(t *testing.T) {
	_, e := newTestEntity(t)
	a := addAnimation(t, e, "animation", map[string]any{"to": 1})
	if a.Running() {
		t.Fatalf("animation without a property must stay idle")
	}
	if a.interp != nil {
		t.Fatalf("no interpolation should be built")
	}
}

func TestNumericPropertyAnimatesToEndpoint(t *testing.T) {
	w, e := newTestEntity(t)

	var begins, completes int
	e.On(EventBegin, func(evt scene.Event) {
		begins++
		d, ok := evt.Detail.(EventDetail)
		if !ok || d.Name != "animation" {
			t.Fatalf("unexpected begin detail %v", evt.Detail)
		}
	})
	e.On(EventComplete, func(scene.Event) { completes++ })

	a := addAnimation(t, e, "animation", map[string]any{
		"property": "panel.opacity",
		"from":     0,
		"to":       10,
		"dur":      1000,
		"easing":   "linear",
	})

	if !a.Running() {
		t.Fatalf("autoplay should begin immediately")
	}
	if begins != 1 {
		t.Fatalf("expected one begin event, got %d", begins)
	}
	if got := opacity(t, e); got != 0 {
		t.Fatalf("expected start write at from, got %v", got)
	}

	w.Update(500)
	if got := opacity(t, e); math.Abs(got-5) > 1e-3 {
		t.Fatalf("expected 5 at midpoint, got %v", got)
	}

	w.Update(500)
	if got := opacity(t, e); math.Abs(got-10) > 1e-3 {
		t.Fatalf("expected 10 at end, got %v", got)
	}
	if completes != 1 {
		t.Fatalf("expected one complete event, got %d", completes)
	}
	if a.Running() {
		t.Fatalf("completed animation should stop")
	}

	w.Update(500)
	if completes != 1 {
		t.Fatalf("complete must fire once, got %d", completes)
	}
}

func TestFromSamplesCurrentValue(t *testing.T) {
	w, e := newTestEntity(t)
	if err := scene.SetProperty(e, "panel.opacity", 4.0); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	addAnimation(t, e, "animation", map[string]any{
		"property": "panel.opacity",
		"to":       8,
		"dur":      1000,
		"easing":   "linear",
	})
	w.Update(500)
	if got := opacity(t, e); math.Abs(got-6) > 1e-3 {
		t.Fatalf("expected midpoint between sampled 4 and 8, got %v", got)
	}
}

func TestLastStartWins(t *testing.T) {
	_, e := newTestEntity(t)

	first := addAnimation(t, e, "animation__first", map[string]any{
		"property": "panel.opacity", "from": 0, "to": 1, "dur": 1000,
	})
	if !first.Running() {
		t.Fatalf("first should run")
	}

	second := addAnimation(t, e, "animation__second", map[string]any{
		"property": "panel.opacity", "from": 1, "to": 0, "dur": 1000,
	})
	if first.Running() {
		t.Fatalf("starting a second animation on the property must stop the first")
	}
	if !second.Running() {
		t.Fatalf("second should run")
	}
	if owner(e, "panel.opacity") != second {
		t.Fatalf("second should own the property")
	}
}

func TestBooleanEndpoints(t *testing.T) {
	w, e := newTestEntity(t)
	addAnimation(t, e, "animation", map[string]any{
		"property": "panel.visible",
		"from":     "false",
		"to":       "true",
		"dur":      1000,
		"easing":   "linear",
	})

	w.Update(500)
	v, _ := scene.GetProperty(e, "panel.visible")
	if v != false {
		t.Fatalf("expected false before the lane reaches 1, got %v", v)
	}

	w.Update(500)
	v, _ = scene.GetProperty(e, "panel.visible")
	if v != true {
		t.Fatalf("expected true at the end, got %v", v)
	}
}

func TestDiscreteStringSnapsAtCycleEnd(t *testing.T) {
	w, e := newTestEntity(t)
	addAnimation(t, e, "animation", map[string]any{
		"property": "panel.label",
		"to":       "high",
		"dur":      1000,
		"easing":   "linear",
	})

	w.Update(999)
	v, _ := scene.GetProperty(e, "panel.label")
	if v != "low" {
		t.Fatalf("expected sampled from value to hold, got %v", v)
	}

	w.Update(1)
	v, _ = scene.GetProperty(e, "panel.label")
	if v != "high" {
		t.Fatalf("expected snap to the target at cycle end, got %v", v)
	}
}

func TestVectorTransformProperty(t *testing.T) {
	w, e := newTestEntity(t)
	addAnimation(t, e, "animation", map[string]any{
		"property": "position",
		"from":     "0 0 0",
		"to":       "10 20 0",
		"dur":      1000,
		"easing":   "linear",
	})

	w.Update(500)
	pos := e.Node().Position
	if math.Abs(pos[0]-5) > 1e-3 || math.Abs(pos[1]-10) > 1e-3 {
		t.Fatalf("expected midpoint 5/10, got %v", pos)
	}

	w.Update(500)
	pos = e.Node().Position
	if math.Abs(pos[0]-10) > 1e-3 || math.Abs(pos[1]-20) > 1e-3 {
		t.Fatalf("expected endpoint 10/20, got %v", pos)
	}
}

func TestRotationEndpointsConvertToRadians(t *testing.T) {
	w, e := newTestEntity(t)
	addAnimation(t, e, "animation", map[string]any{
		"property": "rotation",
		"from":     "0 0 0",
		"to":       "0 0 180",
		"dur":      1000,
		"easing":   "linear",
	})

	w.Update(1000)
	got := e.Node().Rotation[2]
	if math.Abs(got-math.Pi) > 1e-6 {
		t.Fatalf("expected pi radians, got %v", got)
	}
}

func TestVectorSchemaProperty(t *testing.T) {
	w, e := newTestEntity(t)
	addAnimation(t, e, "animation", map[string]any{
		"property": "panel.size",
		"from":     "0 0",
		"to":       "4 8",
		"dur":      1000,
		"easing":   "linear",
	})

	w.Update(500)
	v, _ := scene.GetProperty(e, "panel.size")
	size, ok := v.(mgl64.Vec2)
	if !ok {
		t.Fatalf("expected Vec2, got %T", v)
	}
	if math.Abs(size[0]-2) > 1e-3 || math.Abs(size[1]-4) > 1e-3 {
		t.Fatalf("expected 2/4 at midpoint, got %v", size)
	}
}

func TestColorProperty(t *testing.T) {
	w, e := newTestEntity(t)
	addAnimation(t, e, "animation", map[string]any{
		"property": "panel.tint",
		"type":     "color",
		"from":     "black",
		"to":       "white",
		"dur":      1000,
		"easing":   "linear",
	})

	w.Update(500)
	v, _ := scene.GetProperty(e, "panel.tint")
	c, ok := v.(*csscolorparser.Color)
	if !ok {
		t.Fatalf("expected *Color, got %T", v)
	}
	if math.Abs(c.R-0.5) > 1e-3 || math.Abs(c.G-0.5) > 1e-3 || math.Abs(c.B-0.5) > 1e-3 {
		t.Fatalf("expected mid gray, got %+v", c)
	}

	w.Update(500)
	if math.Abs(c.R-1) > 1e-3 || math.Abs(c.G-1) > 1e-3 || math.Abs(c.B-1) > 1e-3 {
		t.Fatalf("expected white, got %+v", c)
	}
}

func TestColorPropertySamplesFrom(t *testing.T) {
	w, e := newTestEntity(t)
	if err := scene.SetProperty(e, "panel.tint", "red"); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	addAnimation(t, e, "animation", map[string]any{
		"property": "panel.tint",
		"type":     "color",
		"to":       "blue",
		"dur":      1000,
		"easing":   "linear",
	})

	w.Update(500)
	v, _ := scene.GetProperty(e, "panel.tint")
	c := v.(*csscolorparser.Color)
	if math.Abs(c.R-0.5) > 1e-3 || math.Abs(c.B-0.5) > 1e-3 {
		t.Fatalf("expected halfway red->blue, got %+v", c)
	}
}

func TestRawNodePath(t *testing.T) {
	w, e := newTestEntity(t)
	addAnimation(t, e, "animation", map[string]any{
		"property": "node.position.x",
		"from":     0,
		"to":       100,
		"dur":      1000,
		"easing":   "linear",
	})

	w.Update(500)
	if got := e.Node().Position[0]; math.Abs(got-50) > 1e-3 {
		t.Fatalf("expected 50 at midpoint, got %v", got)
	}
	if got := e.Node().Position[1]; got != 0 {
		t.Fatalf("other components must stay untouched, got %v", got)
	}
}

func TestStartPauseResumeEvents(t *testing.T) {
	w, e := newTestEntity(t)
	a := addAnimation(t, e, "animation", map[string]any{
		"property":     "panel.opacity",
		"from":         0,
		"to":           10,
		"dur":          1000,
		"easing":       "linear",
		"startEvents":  []string{"go"},
		"pauseEvents":  []string{"halt"},
		"resumeEvents": []string{"cont"},
	})

	if a.Running() {
		t.Fatalf("start events disable autoplay")
	}
	w.Update(100)
	if a.Running() {
		t.Fatalf("must not start without the trigger")
	}

	e.Emit("go", nil)
	if !a.Running() {
		t.Fatalf("start event should begin the animation")
	}

	w.Update(300)
	e.Emit("halt", nil)
	if a.Running() {
		t.Fatalf("pause event should suspend")
	}
	elapsed := a.Time()

	w.Update(500)
	if a.Time() != elapsed {
		t.Fatalf("paused animation must not accumulate time")
	}
	if got := opacity(t, e); math.Abs(got-3) > 1e-3 {
		t.Fatalf("paused value should hold at 3, got %v", got)
	}

	e.Emit("cont", nil)
	if !a.Running() {
		t.Fatalf("resume event should continue")
	}
	w.Update(700)
	if got := opacity(t, e); math.Abs(got-10) > 1e-3 {
		t.Fatalf("expected completion after remaining time, got %v", got)
	}
}

func TestStartEventRestartsFromZero(t *testing.T) {
	w, e := newTestEntity(t)
	a := addAnimation(t, e, "animation", map[string]any{
		"property":    "panel.opacity",
		"from":        0,
		"to":          10,
		"dur":         1000,
		"easing":      "linear",
		"startEvents": []string{"go"},
	})

	e.Emit("go", nil)
	w.Update(600)
	if a.Time() != 600 {
		t.Fatalf("expected 600ms elapsed, got %v", a.Time())
	}

	e.Emit("go", nil)
	if a.Time() != 0 {
		t.Fatalf("restart should rewind to zero, got %v", a.Time())
	}
	if got := opacity(t, e); got != 0 {
		t.Fatalf("restart should rewrite the start value, got %v", got)
	}
}

func TestDelayDefersBegin(t *testing.T) {
	w, e := newTestEntity(t)
	a := addAnimation(t, e, "animation", map[string]any{
		"property": "panel.opacity",
		"from":     0,
		"to":       10,
		"dur":      1000,
		"delay":    500,
		"easing":   "linear",
	})

	if a.Running() {
		t.Fatalf("delayed animation must not start synchronously")
	}
	w.Update(250)
	if a.Running() {
		t.Fatalf("must not start before the delay elapses")
	}
	w.Update(250)
	if !a.Running() {
		t.Fatalf("expected start once the clock passes the delay")
	}
}

func TestEntityPauseSuspendsAndPlayResumes(t *testing.T) {
	w, e := newTestEntity(t)
	a := addAnimation(t, e, "animation", map[string]any{
		"property": "panel.opacity",
		"from":     0,
		"to":       10,
		"dur":      1000,
		"easing":   "linear",
	})

	w.Update(300)
	e.Pause()
	if a.Running() {
		t.Fatalf("entity pause should suspend the animation")
	}
	w.Update(400)
	if got := opacity(t, e); math.Abs(got-3) > 1e-3 {
		t.Fatalf("value should hold while the entity is paused, got %v", got)
	}

	e.Play()
	if !a.Running() {
		t.Fatalf("entity play should resume a previously running animation")
	}
	w.Update(700)
	if got := opacity(t, e); math.Abs(got-10) > 1e-3 {
		t.Fatalf("expected completion after resume, got %v", got)
	}
}

func TestLoopForeverKeepsRunning(t *testing.T) {
	w, e := newTestEntity(t)
	a := addAnimation(t, e, "animation", map[string]any{
		"property": "panel.opacity",
		"from":     0,
		"to":       10,
		"dur":      1000,
		"loop":     true,
		"dir":      "alternate",
		"easing":   "linear",
	})

	w.Update(1500)
	if !a.Running() {
		t.Fatalf("infinite loop must keep running")
	}
	if got := opacity(t, e); math.Abs(got-5) > 1e-3 {
		t.Fatalf("expected alternate cycle heading back to 5, got %v", got)
	}

	w.Update(2000)
	if !a.Running() {
		t.Fatalf("infinite loop must still be running")
	}
}

func TestReconfigureReleasesClaim(t *testing.T) {
	_, e := newTestEntity(t)
	a := addAnimation(t, e, "animation", map[string]any{
		"property": "panel.opacity", "from": 0, "to": 10, "dur": 1000,
	})
	if owner(e, "panel.opacity") != a {
		t.Fatalf("expected ownership after autoplay")
	}

	addAnimation(t, e, "animation", map[string]any{
		"property": "panel.label", "to": "high", "dur": 1000,
	})
	if owner(e, "panel.opacity") != nil {
		t.Fatalf("reconfiguring must release the old property claim")
	}
}

func TestRemoveComponentStops(t *testing.T) {
	w, e := newTestEntity(t)
	addAnimation(t, e, "animation", map[string]any{
		"property": "panel.opacity", "from": 0, "to": 10, "dur": 1000, "easing": "linear",
	})

	w.Update(500)
	e.RemoveComponent("animation")
	if owner(e, "panel.opacity") != nil {
		t.Fatalf("removal must release the claim")
	}

	before := opacity(t, e)
	w.Update(500)
	if got := opacity(t, e); got != before {
		t.Fatalf("removed animation must not keep writing, %v -> %v", before, got)
	}
}

func TestBadConfigurationIsIgnored(t *testing.T) {
	_, e := newTestEntity(t)
	a := addAnimation(t, e, "animation", map[string]any{
		"property": "panel.opacity",
		"to":       1,
		"loop":     "sometimes",
	})
	if a.Running() {
		t.Fatalf("unparseable configuration must leave the instance idle")
	}
	if a.Config().Property != "" {
		t.Fatalf("bad configuration should be cleared")
	}
}

func TestMissingToStaysIdle(t *testing.T) {
	_, e := newTestEntity(t)
	a := addAnimation(t, e, "animation", map[string]any{
		"property": "panel.opacity",
		"dur":      1000,
	})
	if a.Running() || a.interp != nil {
		t.Fatalf("missing `to` must not build an interpolation")
	}
}
