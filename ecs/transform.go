package ecs

import "github.com/plus3/scriptbridge/geom"

// Transform is a position, an orientation and a scale, stored relative to an
// optional parent transform.
//
// The Local accessors read and write the stored values. Position, Rotation and
// Scale are the world values derived through the parent chain:
//
//	world position = parent position + parent rotation * local position
//	world rotation = parent rotation * local rotation
//	world scale    = parent scale * local scale (component-wise)
//
// A parent's scale does not stretch its children's offsets.
//
// Translate and Rotate take a Space. In World space deltas and axes are used
// as given; in Object space they are first expressed in the entity's own
// frame. A first-person controller yaws in World space about Up and pitches in
// Object space about Right, in that order, so the view never rolls.
type Transform struct {
	position geom.Vector3
	rotation geom.Quat
	scale    geom.Vector3
	scaled   bool
	parent   *Transform
}

// NewTransform returns a root transform at the origin with identity
// orientation and unit scale.
func NewTransform() Transform {
	return Transform{rotation: geom.Identity(), scale: geom.One, scaled: true}
}

func (t *Transform) LocalPosition() geom.Vector3 {
	return t.position
}

// LocalRotation returns the orientation relative to the parent. A zero
// transform reports identity.
func (t *Transform) LocalRotation() geom.Quat {
	if t.rotation == (geom.Quat{}) {
		return geom.Identity()
	}
	return t.rotation
}

// LocalScale returns the scale relative to the parent. A zero transform
// reports unit scale.
func (t *Transform) LocalScale() geom.Vector3 {
	if !t.scaled {
		return geom.One
	}
	return t.scale
}

func (t *Transform) SetLocalPosition(pos geom.Vector3) {
	t.position = pos
}

func (t *Transform) SetLocalRotation(rot geom.Quat) {
	t.rotation = rot.Normalize()
}

func (t *Transform) SetLocalScale(scale geom.Vector3) {
	t.scale = scale
	t.scaled = true
}

// Position returns the world position.
func (t *Transform) Position() geom.Vector3 {
	if t.parent == nil {
		return t.position
	}
	return t.parent.Position().Add(geom.Rotate(t.parent.Rotation(), t.position))
}

// Rotation returns the world orientation.
func (t *Transform) Rotation() geom.Quat {
	if t.parent == nil {
		return t.LocalRotation()
	}
	return t.parent.Rotation().Mul(t.LocalRotation()).Normalize()
}

// Scale returns the world scale.
func (t *Transform) Scale() geom.Vector3 {
	if t.parent == nil {
		return t.LocalScale()
	}
	return t.parent.Scale().Scale(t.LocalScale())
}

// SetPosition places the transform at pos in world space.
func (t *Transform) SetPosition(pos geom.Vector3) {
	if t.parent == nil {
		t.position = pos
		return
	}
	inv := t.parent.Rotation().Conjugate()
	t.position = geom.Rotate(inv, pos.Sub(t.parent.Position()))
}

// SetRotation orients the transform to rot in world space.
func (t *Transform) SetRotation(rot geom.Quat) {
	if t.parent == nil {
		t.SetLocalRotation(rot)
		return
	}
	t.SetLocalRotation(t.parent.Rotation().Conjugate().Mul(rot))
}

// SetScale sets the world scale. A zero component in the parent's scale
// leaves the matching local component at zero.
func (t *Transform) SetScale(scale geom.Vector3) {
	if t.parent == nil {
		t.SetLocalScale(scale)
		return
	}
	t.SetLocalScale(scale.Div(t.parent.Scale()))
}

// Translate moves the transform by delta.
func (t *Transform) Translate(delta geom.Vector3, space geom.Space) {
	if space == geom.Object {
		delta = geom.Rotate(t.Rotation(), delta)
	}
	if t.parent == nil {
		t.position = t.position.Add(delta)
		return
	}
	t.SetPosition(t.Position().Add(delta))
}

// Rotate turns the transform by angleDegrees about axis.
func (t *Transform) Rotate(axis geom.Vector3, angleDegrees float32, space geom.Space) {
	t.RotateBy(geom.AngleAxis(axis, angleDegrees), space)
}

// RotateBy composes q with the current orientation.
func (t *Transform) RotateBy(q geom.Quat, space geom.Space) {
	if space == geom.Object {
		t.SetLocalRotation(t.LocalRotation().Mul(q))
		return
	}
	t.SetRotation(q.Mul(t.Rotation()))
}

// Rescale multiplies the scale component-wise by factors. In World space the
// product is taken against the world scale, in Object space against the local
// scale.
func (t *Transform) Rescale(factors geom.Vector3, space geom.Space) {
	if space == geom.Object {
		t.SetLocalScale(t.LocalScale().Scale(factors))
		return
	}
	t.SetScale(t.Scale().Scale(factors))
}

// Forward is the entity's +Z axis in world space.
func (t *Transform) Forward() geom.Vector3 {
	return geom.Rotate(t.Rotation(), geom.Forward)
}

// Right is the entity's +X axis in world space.
func (t *Transform) Right() geom.Vector3 {
	return geom.Rotate(t.Rotation(), geom.Right)
}

// Up is the entity's +Y axis in world space.
func (t *Transform) Up() geom.Vector3 {
	return geom.Rotate(t.Rotation(), geom.Up)
}

// reparent attaches t to parent, or detaches it when parent is nil, keeping
// the world pose.
func (t *Transform) reparent(parent *Transform) {
	pos, rot, scale := t.Position(), t.Rotation(), t.Scale()
	t.parent = parent
	t.SetPosition(pos)
	t.SetRotation(rot)
	t.SetScale(scale)
}
