package geom

import "github.com/go-gl/mathgl/mgl32"

// Quat is an orientation.
type Quat = mgl32.Quat

// Space selects the reference frame of a transform operation.
type Space uint8

const (
	// World interprets deltas and axes in the ambient coordinate system.
	World Space = iota
	// Object interprets deltas and axes in the entity's own frame.
	Object
)

func (s Space) String() string {
	switch s {
	case World:
		return "World"
	case Object:
		return "Object"
	default:
		return "Space(?)"
	}
}

// Identity is the rotation that leaves vectors unchanged.
func Identity() Quat {
	return mgl32.QuatIdent()
}

// AngleAxis returns the rotation of angleDegrees about axis. The axis is
// normalized first; a zero axis yields the identity.
func AngleAxis(axis Vector3, angleDegrees float32) Quat {
	n := axis.Normalized()
	if n.IsZero() {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(mgl32.DegToRad(angleDegrees), mgl32.Vec3(n))
}

// Rotate applies q to v.
func Rotate(q Quat, v Vector3) Vector3 {
	return Vector3(q.Rotate(mgl32.Vec3(v)))
}
