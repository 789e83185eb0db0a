package scene

import "testing"

func TestWorldClockAndTimers(t *testing.T) {
	t.Run("after_fires_once_due", func(t *testing.T) {
		w := NewWorld(nil)
		fired := 0
		w.After(100, func() { fired++ })

		w.Update(50)
		if fired != 0 {
			t.Fatalf("timer fired early at t=%v", w.Now())
		}
		w.Update(50)
		if fired != 1 {
			t.Fatalf("expected timer to fire at t=%v, fired=%d", w.Now(), fired)
		}
		w.Update(50)
		if fired != 1 {
			t.Fatalf("timer should fire once, fired=%d", fired)
		}
	})

	t.Run("zero_delay_fires_next_update", func(t *testing.T) {
		w := NewWorld(nil)
		fired := false
		w.After(0, func() { fired = true })
		if fired {
			t.Fatalf("timer must not fire synchronously")
		}
		w.Update(1)
		if !fired {
			t.Fatalf("expected zero-delay timer on first update")
		}
	})

	t.Run("timer_armed_in_callback_waits_a_frame", func(t *testing.T) {
		w := NewWorld(nil)
		var order []string
		w.After(0, func() {
			order = append(order, "outer")
			w.After(0, func() { order = append(order, "inner") })
		})

		w.Update(1)
		if len(order) != 1 || order[0] != "outer" {
			t.Fatalf("expected only outer after first update, got %v", order)
		}
		w.Update(1)
		if len(order) != 2 || order[1] != "inner" {
			t.Fatalf("expected inner on second update, got %v", order)
		}
	})

	t.Run("timers_fire_before_ticks", func(t *testing.T) {
		probe := registerProbe(t, "probe_timer_order", false)
		w := NewWorld(nil)
		e := w.NewEntity("box")
		if _, err := e.AddComponent("probe_timer_order", nil); err != nil {
			t.Fatalf("AddComponent: %v", err)
		}

		ticksAtFire := -1
		w.After(0, func() { ticksAtFire = probe.ticks })
		w.Update(1)
		if ticksAtFire != 0 {
			t.Fatalf("expected timer before entity ticks, saw %d ticks", ticksAtFire)
		}
	})
}

func TestWorldEntityRegistry(t *testing.T) {
	w := NewWorld(nil)
	a := w.NewEntity("a")
	b := w.NewEntity("b")

	if w.Entity("a") != a || w.Entity("b") != b {
		t.Fatalf("expected name lookup to return registered entities")
	}
	if len(w.Entities()) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(w.Entities()))
	}

	if !w.RemoveEntity(a) {
		t.Fatalf("RemoveEntity should report success")
	}
	if w.Entity("a") != nil {
		t.Fatalf("removed entity should not resolve by name")
	}
	if w.RemoveEntity(a) {
		t.Fatalf("second RemoveEntity should report failure")
	}
}

func TestRemoveEntityTearsDownBehaviors(t *testing.T) {
	probe := registerProbe(t, "probe_teardown", false)
	w := NewWorld(nil)
	e := w.NewEntity("box")
	if _, err := e.AddComponent("probe_teardown", nil); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}

	w.RemoveEntity(e)
	if probe.removes != 1 {
		t.Fatalf("expected behavior Remove on entity removal, got %d", probe.removes)
	}
	w.Update(16)
	if probe.ticks != 0 {
		t.Fatalf("removed entity must not tick, got %d", probe.ticks)
	}
}
