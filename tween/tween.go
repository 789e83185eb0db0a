// Package tween wraps github.com/tanema/gween with an absolute-time,
// multi-lane interpolation object: several numeric endpoints advanced
// together under one duration, easing, loop count, and direction.
package tween

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Direction controls how repeat cycles map onto the timeline.
type Direction int

const (
	Normal Direction = iota
	Reverse
	Alternate
)

// ParseDirection maps the declarative direction strings. Unknown values play
// forward.
func ParseDirection(s string) Direction {
	switch s {
	case "reverse":
		return Reverse
	case "alternate":
		return Alternate
	}
	return Normal
}

// Config describes one interpolation across parallel numeric lanes.
type Config struct {
	From, To []float64
	Duration float64 // milliseconds, must be positive
	Easing   ease.TweenFunc
	// Loop is the number of additional cycles after the first; negative
	// repeats forever.
	Loop      int
	Direction Direction

	// OnUpdate receives the current lane values after every Seek or Tick.
	OnUpdate func(values []float64)
	// OnComplete fires exactly once, when Tick passes the final cycle end.
	OnComplete func()
}

// Interp drives its lanes to an absolute simulated time. It never advances
// on its own; the owner decides what time it is.
type Interp struct {
	lanes      []*gween.Tween
	values     []float64
	duration   float64
	loop       int
	direction  Direction
	onUpdate   func([]float64)
	onComplete func()
	done       bool
}

// New builds an idle interpolation positioned at time zero.
func New(cfg Config) (*Interp, error) {
	if len(cfg.From) == 0 || len(cfg.From) != len(cfg.To) {
		return nil, fmt.Errorf("tween: need matching from/to lanes, got %d/%d", len(cfg.From), len(cfg.To))
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("tween: duration must be positive, got %v", cfg.Duration)
	}
	easing := cfg.Easing
	if easing == nil {
		easing = ease.Linear
	}
	in := &Interp{
		lanes:      make([]*gween.Tween, len(cfg.From)),
		values:     append([]float64(nil), cfg.From...),
		duration:   cfg.Duration,
		loop:       cfg.Loop,
		direction:  cfg.Direction,
		onUpdate:   cfg.OnUpdate,
		onComplete: cfg.OnComplete,
	}
	for i := range cfg.From {
		in.lanes[i] = gween.New(float32(cfg.From[i]), float32(cfg.To[i]), float32(cfg.Duration), easing)
	}
	return in, nil
}

// Values returns the current lane values. The slice is reused across frames.
func (in *Interp) Values() []float64 {
	if in == nil {
		return nil
	}
	return in.values
}

// Done reports whether completion has fired.
func (in *Interp) Done() bool {
	return in != nil && in.done
}

// Restart clears the completion latch so the owner can replay from zero.
func (in *Interp) Restart() {
	if in == nil {
		return
	}
	in.done = false
}

// Seek positions every lane at absolute time t and fires the update
// callback. Seeking never triggers completion.
func (in *Interp) Seek(t float64) {
	if in == nil {
		return
	}
	local, _ := in.localTime(t)
	for i, tw := range in.lanes {
		v, _ := tw.Set(float32(local))
		in.values[i] = float64(v)
	}
	if in.onUpdate != nil {
		in.onUpdate(in.values)
	}
}

// Tick advances to absolute time t and fires completion exactly once when
// the final cycle is passed.
func (in *Interp) Tick(t float64) {
	if in == nil {
		return
	}
	in.Seek(t)
	if in.done {
		return
	}
	if _, finished := in.localTime(t); finished {
		in.done = true
		if in.onComplete != nil {
			in.onComplete()
		}
	}
}

// localTime maps absolute elapsed time onto a position within one cycle,
// honoring loop count and direction. The second result reports whether t is
// at or past the end of the final cycle.
func (in *Interp) localTime(t float64) (float64, bool) {
	if t < 0 {
		t = 0
	}
	d := in.duration
	infinite := in.loop < 0
	cycles := in.loop + 1

	finished := false
	cycle := int(t / d)
	local := t - float64(cycle)*d
	if !infinite && t >= d*float64(cycles) {
		finished = true
		cycle = cycles - 1
		local = d
	}

	switch in.direction {
	case Reverse:
		local = d - local
	case Alternate:
		if cycle%2 == 1 {
			local = d - local
		}
	}
	return local, finished
}
