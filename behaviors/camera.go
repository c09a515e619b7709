package behaviors

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/input"
)

const (
	// DefaultSensitivity is degrees of rotation per unit of mouse delta.
	DefaultSensitivity float32 = 0.1
	maxPitch           float32 = 89
)

// CameraStart is where the camera places its entity on init.
var CameraStart = geom.Vec3(0, 0, -3)

// Camera is a first-person controller. The mouse yaws about world up and
// pitches about the camera's own right axis; WASD, Space and LeftControl fly
// relative to the current facing. The position is pushed to the native side
// every frame.
type Camera struct {
	ecs.BaseBehavior
	Speed       float32
	Sensitivity float32

	Bridge ecs.Singleton[bridge.Bridge]

	pitch float32
}

func (c *Camera) OnInit(frame *ecs.UpdateFrame) error {
	b := c.Bridge.Get()
	if b == nil {
		return fmt.Errorf("camera: %w: bridge", ErrMissingResource)
	}

	e := c.Entity()
	e.SetPosition(CameraStart)
	return b.SetCameraPosition(e.Position())
}

func (c *Camera) Tick(frame *ecs.UpdateFrame) error {
	e := c.Entity()

	look := frame.Input.MouseDelta()
	if !look.IsZero() {
		sensitivity := c.Sensitivity
		if sensitivity == 0 {
			sensitivity = DefaultSensitivity
		}

		pitch := mgl32.Clamp(c.pitch+look.Y()*sensitivity, -maxPitch, maxPitch)
		e.Rotate(geom.Up, look.X()*sensitivity, geom.World)
		e.Rotate(geom.Right, pitch-c.pitch, geom.Object)
		c.pitch = pitch
	}

	mover := Mover{Bindings: WASDBindings, Run: input.KeyShift, Speed: c.Speed}
	e.Translate(mover.Delta(frame.Input, frame.FrameTime()), geom.Object)

	return c.Bridge.Get().SetCameraPosition(e.Position())
}

// Pitch returns the accumulated pitch in degrees.
func (c *Camera) Pitch() float32 {
	return c.pitch
}
