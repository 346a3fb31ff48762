// Package loop drives one update pass per rendered frame.
package loop

import "earth-explorer/internal/frame"

// Updater is anything advanced once per tick: bodies and the camera rig.
type Updater interface {
	Update(tick frame.Tick)
}

// UpdateFunc adapts a function to Updater.
type UpdateFunc func(tick frame.Tick)

func (f UpdateFunc) Update(tick frame.Tick) { f(tick) }

// Loop owns the scene clock. Each Step advances the clock, runs every updater, then asks
// for a redraw. A stopped loop ignores Step. A Loop is not reused across mounts: a fresh
// one starts the clock at zero again.
type Loop struct {
	clock    frame.Clock
	updaters []Updater
	redraw   func(frame.Tick)
	running  bool
	last     frame.Tick
}

// New returns a stopped loop that calls redraw after each pass. redraw may be nil.
func New(redraw func(frame.Tick), updaters ...Updater) *Loop {
	return &Loop{redraw: redraw, updaters: updaters}
}

// Add registers more updaters. They run in registration order.
func (l *Loop) Add(u ...Updater) {
	l.updaters = append(l.updaters, u...)
}

// Start lets Step run.
func (l *Loop) Start() { l.running = true }

// Stop makes Step a no-op until Start is called again. The clock keeps its value.
func (l *Loop) Stop() { l.running = false }

// Running reports whether Step currently runs.
func (l *Loop) Running() bool { return l.running }

// Step runs one pass with delta seconds since the previous frame and reports whether
// it ran. Every updater finishes before redraw is called.
func (l *Loop) Step(delta float32) bool {
	if !l.running {
		return false
	}
	tick := l.clock.Advance(delta)
	for _, u := range l.updaters {
		u.Update(tick)
	}
	l.last = tick
	if l.redraw != nil {
		l.redraw(tick)
	}
	return true
}

// Last returns the most recent tick.
func (l *Loop) Last() frame.Tick { return l.last }

// Elapsed returns seconds since the loop was created, counting running time only.
func (l *Loop) Elapsed() float32 { return l.clock.Elapsed() }
