package behaviors

import (
	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/input"
)

const (
	// DefaultSpeed is used when a behavior's Speed is left at zero.
	DefaultSpeed float32 = 1
	baseStep     float32 = 0.5
	runFactor    float32 = 2
)

// Binding maps a held key to a direction.
type Binding struct {
	Key       input.Key
	Direction geom.Vector3
}

// ArrowBindings drive the cube: arrows move on the ground plane, right alt
// and right control move up and down.
var ArrowBindings = []Binding{
	{input.KeyRightArrow, geom.Right},
	{input.KeyLeftArrow, geom.Left},
	{input.KeyRightAlt, geom.Up},
	{input.KeyRightControl, geom.Down},
	{input.KeyUpArrow, geom.Forward},
	{input.KeyDownArrow, geom.Backward},
}

// WASDBindings drive the first-person camera.
var WASDBindings = []Binding{
	{input.KeyD, geom.Right},
	{input.KeyA, geom.Left},
	{input.KeySpace, geom.Up},
	{input.KeyLeftControl, geom.Down},
	{input.KeyW, geom.Forward},
	{input.KeyS, geom.Backward},
}

// Mover turns held keys into a per-frame displacement. The summed direction
// is normalized so diagonal input is not faster; its length is then
// 0.5 * Speed, doubled while Run is held, times the frame time.
type Mover struct {
	Bindings []Binding
	Run      input.Key
	Speed    float32
}

// Delta returns the displacement for one frame of length dt.
func (m Mover) Delta(snap *input.Snapshot, dt float32) geom.Vector3 {
	var raw geom.Vector3
	for _, b := range m.Bindings {
		if snap.GetKey(b.Key) {
			raw = raw.Add(b.Direction)
		}
	}

	// Opposite keys cancel to zero, which Normalized leaves alone.
	delta := raw.Normalized().Mul(baseStep * m.speed())
	if m.Run != input.KeyUnknown && snap.GetKey(m.Run) {
		delta = delta.Mul(runFactor)
	}
	return delta.Mul(dt)
}

func (m Mover) speed() float32 {
	if m.Speed == 0 {
		return DefaultSpeed
	}
	return m.Speed
}
