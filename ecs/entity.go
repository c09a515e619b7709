package ecs

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/plus3/scriptbridge/geom"
)

// EntityId encodes the generation (upper 32 bits) and the slot index (lower 32 bits)
type EntityId uint64

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Generation extracts the generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a non-owning reference to an entity. Its Id is reset to 0
// when the entity is destroyed.
type EntityRef struct {
	Id    EntityId
	world *World
}

// Entity returns the referenced entity, or nil once it has been destroyed.
func (r *EntityRef) Entity() *Entity {
	if r == nil || r.Id == 0 || r.world == nil {
		return nil
	}
	return r.world.Entity(r.Id)
}

// Entity is an identity with a transform and an ordered list of attached
// behaviors. The world owns entities; entities own their behaviors. An entity
// may have a parent in the same world, and destroying a parent destroys its
// children.
type Entity struct {
	id        EntityId
	guid      uuid.UUID
	name      string
	world     *World
	transform Transform
	behaviors []*behaviorSlot
	parent    *Entity
	children  []*Entity
	alive     bool
}

func (e *Entity) Id() EntityId    { return e.id }
func (e *Entity) Guid() uuid.UUID { return e.guid }
func (e *Entity) Name() string    { return e.name }
func (e *Entity) World() *World   { return e.world }

// Alive reports whether the entity has not been destroyed.
func (e *Entity) Alive() bool {
	return e != nil && e.alive
}

// Transform returns the entity's transform for mutation through its
// Translate and Rotate methods.
func (e *Entity) Transform() *Transform {
	return &e.transform
}

func (e *Entity) Position() geom.Vector3 {
	return e.transform.Position()
}

// SetPosition places the entity directly. Behaviors use it for
// initialization only; per-frame motion goes through Translate.
func (e *Entity) SetPosition(pos geom.Vector3) {
	e.transform.SetPosition(pos)
}

func (e *Entity) Translate(delta geom.Vector3, space geom.Space) {
	e.transform.Translate(delta, space)
}

func (e *Entity) Rotate(axis geom.Vector3, angleDegrees float32, space geom.Space) {
	e.transform.Rotate(axis, angleDegrees, space)
}

func (e *Entity) Rescale(factors geom.Vector3, space geom.Space) {
	e.transform.Rescale(factors, space)
}

// Parent returns the parent entity, or nil for a root.
func (e *Entity) Parent() *Entity {
	return e.parent
}

// SetParent attaches e under parent, keeping its world pose. A nil parent
// detaches e. The child is appended to the parent's children.
func (e *Entity) SetParent(parent *Entity) error {
	if !e.Alive() {
		return fmt.Errorf("set parent of %d: %w", e.id, ErrEntityDestroyed)
	}
	if parent != nil {
		if !parent.Alive() {
			return fmt.Errorf("set parent of %d to %d: %w", e.id, parent.id, ErrEntityDestroyed)
		}
		if parent.world != e.world {
			return fmt.Errorf("set parent of %d to %d: parent in another world: %w", e.id, parent.id, ErrInvalidParent)
		}
		for p := parent; p != nil; p = p.parent {
			if p == e {
				return fmt.Errorf("set parent of %d to %d: would form a cycle: %w", e.id, parent.id, ErrInvalidParent)
			}
		}
	}
	if parent == e.parent {
		return nil
	}

	e.detach()
	if parent != nil {
		parent.children = append(parent.children, e)
		e.transform.reparent(&parent.transform)
	}
	e.parent = parent
	return nil
}

// detach removes e from its parent, keeping its world pose.
func (e *Entity) detach() {
	if e.parent == nil {
		return
	}
	e.parent.children = slices.DeleteFunc(e.parent.children, func(c *Entity) bool { return c == e })
	e.transform.reparent(nil)
	e.parent = nil
}

func (e *Entity) ChildCount() int {
	return len(e.children)
}

// Child returns the i-th child in attachment order, or nil when i is out of
// range.
func (e *Entity) Child(i int) *Entity {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// Children returns a copy of the children in attachment order.
func (e *Entity) Children() []*Entity {
	return slices.Clone(e.children)
}

// Destroy destroys the entity immediately. See World.Destroy.
func (e *Entity) Destroy() bool {
	return e.world.Destroy(e.id)
}

// BehaviorInfo describes one attached behavior.
type BehaviorInfo struct {
	Name     string
	State    BehaviorState
	Err      error
	Instance any
}

// Behaviors lists the attached behaviors in attachment order.
func (e *Entity) Behaviors() []BehaviorInfo {
	infos := make([]BehaviorInfo, len(e.behaviors))
	for i, slot := range e.behaviors {
		infos[i] = BehaviorInfo{
			Name:     slot.kind.name,
			State:    slot.state,
			Err:      slot.err,
			Instance: slot.instance,
		}
	}
	return infos
}
