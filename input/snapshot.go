package input

import "github.com/plus3/scriptbridge/geom"

// KeyState is the state of one key within a frame.
type KeyState uint8

const (
	// Held is set while the key is down.
	Held KeyState = 1 << iota
	// Pressed is set only on the frame the key went down.
	Pressed
	// Released is set only on the frame the key went up.
	Released
)

// Snapshot is an immutable view of input for a single frame.
type Snapshot struct {
	frame      uint64
	keys       [keyCount]KeyState
	mouseDelta geom.Vector2
}

// Empty is a snapshot with nothing held.
var Empty = &Snapshot{}

// Frame returns the tracker frame number this snapshot was built for.
func (s *Snapshot) Frame() uint64 {
	return s.frame
}

func (s *Snapshot) state(k Key) KeyState {
	if s == nil || k >= keyCount {
		return 0
	}
	return s.keys[k]
}

// GetKey reports whether k is held this frame.
func (s *Snapshot) GetKey(k Key) bool {
	return s.state(k)&Held != 0
}

// GetKeyDown reports whether k transitioned to pressed this frame.
func (s *Snapshot) GetKeyDown(k Key) bool {
	return s.state(k)&Pressed != 0
}

// GetKeyUp reports whether k was released this frame.
func (s *Snapshot) GetKeyUp(k Key) bool {
	return s.state(k)&Released != 0
}

// MouseDelta is the cursor movement since the previous frame.
func (s *Snapshot) MouseDelta() geom.Vector2 {
	if s == nil {
		return geom.Vector2{}
	}
	return s.mouseDelta
}
