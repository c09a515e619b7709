// Package geom holds the value types shared by behaviors, the transform
// contract and the native bridge. Vectors and rotations are thin wrappers over
// mgl32 so hosts that already speak mathgl can convert without copying.
package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Vector3 is a 3D vector. Values are copied, never shared.
type Vector3 mgl32.Vec3

// Vector2 is a 2D vector, used for mouse deltas.
type Vector2 mgl32.Vec2

var (
	Zero     = Vector3{0, 0, 0}
	Right    = Vector3{1, 0, 0}
	Left     = Vector3{-1, 0, 0}
	Up       = Vector3{0, 1, 0}
	Down     = Vector3{0, -1, 0}
	Forward  = Vector3{0, 0, 1}
	Backward = Vector3{0, 0, -1}
	One      = Vector3{1, 1, 1}
)

// Vec3 builds a Vector3 from components.
func Vec3(x, y, z float32) Vector3 {
	return Vector3{x, y, z}
}

func (v Vector3) X() float32 { return v[0] }
func (v Vector3) Y() float32 { return v[1] }
func (v Vector3) Z() float32 { return v[2] }

// Mgl returns the vector as an mgl32.Vec3.
func (v Vector3) Mgl() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3(mgl32.Vec3(v).Add(mgl32.Vec3(o)))
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3(mgl32.Vec3(v).Sub(mgl32.Vec3(o)))
}

// Mul scales the vector by s.
func (v Vector3) Mul(s float32) Vector3 {
	return Vector3(mgl32.Vec3(v).Mul(s))
}

// Scale multiplies v by o component-wise.
func (v Vector3) Scale(o Vector3) Vector3 {
	return Vector3{v[0] * o[0], v[1] * o[1], v[2] * o[2]}
}

// Div divides v by o component-wise. A zero component of o yields zero.
func (v Vector3) Div(o Vector3) Vector3 {
	var r Vector3
	for i := range r {
		if o[i] != 0 {
			r[i] = v[i] / o[i]
		}
	}
	return r
}

func (v Vector3) Dot(o Vector3) float32 {
	return mgl32.Vec3(v).Dot(mgl32.Vec3(o))
}

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3(mgl32.Vec3(v).Cross(mgl32.Vec3(o)))
}

func (v Vector3) Len() float32 {
	return mgl32.Vec3(v).Len()
}

// Normalized returns a unit vector with the same direction. Vectors shorter
// than float32 epsilon, the zero vector included, are returned unchanged.
func (v Vector3) Normalized() Vector3 {
	l := v.Len()
	if l < epsilon {
		return v
	}
	return v.Mul(1 / l)
}

// Normalize normalizes v in place and returns it for chaining.
func (v *Vector3) Normalize() *Vector3 {
	*v = v.Normalized()
	return v
}

// IsZero reports whether every component is exactly zero.
func (v Vector3) IsZero() bool {
	return v == Zero
}

// ApproxEqual reports whether every component differs by at most threshold.
func (v Vector3) ApproxEqual(o Vector3, threshold float32) bool {
	return mgl32.Vec3(v).ApproxFuncEqual(mgl32.Vec3(o), func(a, b float32) bool {
		return mgl32.Abs(a-b) <= threshold
	})
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}

func Vec2(x, y float32) Vector2 {
	return Vector2{x, y}
}

func (v Vector2) X() float32 { return v[0] }
func (v Vector2) Y() float32 { return v[1] }

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2(mgl32.Vec2(v).Add(mgl32.Vec2(o)))
}

func (v Vector2) IsZero() bool {
	return v[0] == 0 && v[1] == 0
}

// epsilon is the float32 machine epsilon.
const epsilon = 1.1920929e-07
