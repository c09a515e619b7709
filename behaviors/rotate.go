package behaviors

import (
	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
)

// Rotate spins its entity about Axis at DegreesPerSecond, in object space
// when Local is set and world space otherwise.
type Rotate struct {
	ecs.BaseBehavior
	Axis             geom.Vector3
	DegreesPerSecond float32
	Local            bool
}

func (r *Rotate) Tick(frame *ecs.UpdateFrame) error {
	space := geom.World
	if r.Local {
		space = geom.Object
	}
	r.Entity().Rotate(r.Axis, r.DegreesPerSecond*frame.FrameTime(), space)
	return nil
}
