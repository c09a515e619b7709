package input

import "github.com/plus3/scriptbridge/geom"

// Source reports which keys are physically held right now. Hosts implement
// it over their own device polling.
type Source interface {
	IsHeld(k Key) bool
}

// SourceFunc adapts a function to Source.
type SourceFunc func(k Key) bool

func (f SourceFunc) IsHeld(k Key) bool { return f(k) }

// Tracker turns raw held state into snapshots with press/release edges.
type Tracker struct {
	frame uint64
	held  [keyCount]bool
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Next polls src and returns the snapshot for the new frame. The returned
// snapshot is never modified afterwards.
func (t *Tracker) Next(src Source, mouseDelta geom.Vector2) *Snapshot {
	t.frame++
	snap := &Snapshot{
		frame:      t.frame,
		mouseDelta: mouseDelta,
	}

	for k := KeyUnknown + 1; k < keyCount; k++ {
		now := src != nil && src.IsHeld(k)
		was := t.held[k]

		var st KeyState
		if now {
			st |= Held
			if !was {
				st |= Pressed
			}
		} else if was {
			st |= Released
		}

		snap.keys[k] = st
		t.held[k] = now
	}

	return snap
}

// Reset forgets held state, e.g. after the host lost focus.
func (t *Tracker) Reset() {
	t.held = [keyCount]bool{}
}
