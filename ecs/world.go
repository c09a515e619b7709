package ecs

import (
	"iter"
	"log/slog"
	"reflect"
	"slices"
	"weak"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
)

// World owns every entity and the singleton resources behaviors are given.
// It is driven by a single frame thread and is not safe for concurrent use.
type World struct {
	registry *BehaviorRegistry
	logger   *slog.Logger

	entities    *intmap.Map[EntityId, *Entity]
	order       []*Entity
	generations []uint32
	freeIndices []uint32
	guids       map[uuid.UUID]EntityId
	refs        *intmap.Map[EntityId, weak.Pointer[EntityRef]]

	singletons   map[reflect.Type]any
	destroyHooks []func(EntityId)

	step     uint64
	elapsed  float64
	stepping bool
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the logger used by the world and its schedulers.
func WithLogger(logger *slog.Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
	}
}

// NewWorld creates an empty world whose entities may create the behaviors
// registered in registry.
func NewWorld(registry *BehaviorRegistry, opts ...WorldOption) *World {
	w := &World{
		registry:   registry,
		logger:     slog.Default(),
		entities:   intmap.New[EntityId, *Entity](256),
		guids:      make(map[uuid.UUID]EntityId),
		refs:       intmap.New[EntityId, weak.Pointer[EntityRef]](256),
		singletons: make(map[reflect.Type]any),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Registry returns the behavior registry the world creates from.
func (w *World) Registry() *BehaviorRegistry {
	return w.registry
}

// Logger returns the world logger.
func (w *World) Logger() *slog.Logger {
	return w.logger
}

// TotalTime returns the simulated seconds over every step so far.
func (w *World) TotalTime() float64 {
	return w.elapsed
}

// NewEntity creates a live entity at the origin with no behaviors.
func (w *World) NewEntity(name string) *Entity {
	var index uint32
	if n := len(w.freeIndices); n > 0 {
		index = w.freeIndices[n-1]
		w.freeIndices = w.freeIndices[:n-1]
	} else {
		index = uint32(len(w.generations))
		w.generations = append(w.generations, 1)
	}

	e := &Entity{
		id:        NewEntityId(index, w.generations[index]),
		guid:      uuid.New(),
		name:      name,
		world:     w,
		transform: NewTransform(),
		alive:     true,
	}

	w.entities.Put(e.id, e)
	w.guids[e.guid] = e.id
	w.order = append(w.order, e)
	return e
}

// Entity returns the live entity with the given id, or nil.
func (w *World) Entity(id EntityId) *Entity {
	e, ok := w.entities.Get(id)
	if !ok {
		return nil
	}
	return e
}

// FindByGuid returns the live entity with the given guid, or nil.
func (w *World) FindByGuid(guid uuid.UUID) *Entity {
	id, ok := w.guids[guid]
	if !ok {
		return nil
	}
	return w.Entity(id)
}

// FindByName returns the first live entity with the given name, or nil.
func (w *World) FindByName(name string) *Entity {
	for _, e := range w.order {
		if e.name == name {
			return e
		}
	}
	return nil
}

// Entities iterates live entities in creation order.
func (w *World) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range w.order {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.order)
}

// OnDestroy registers fn to run after an entity's behaviors are destroyed.
func (w *World) OnDestroy(fn func(EntityId)) {
	w.destroyHooks = append(w.destroyHooks, fn)
}

// Destroy destroys the entity and every behavior attached to it. Behaviors
// that ran OnInit get OnDestroy, in attachment order. Children are destroyed
// first, depth-first in attachment order, and the entity is then detached
// from its parent. Returns false if the entity was not alive.
func (w *World) Destroy(id EntityId) bool {
	e := w.Entity(id)
	if e == nil || !e.alive {
		return false
	}

	e.alive = false
	for _, child := range slices.Clone(e.children) {
		w.Destroy(child.id)
	}
	e.detach()

	for _, slot := range e.behaviors {
		w.destroySlot(slot)
	}

	for _, hook := range w.destroyHooks {
		hook(id)
	}

	if weakPtr, ok := w.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
		}
		w.refs.Del(id)
	}

	w.entities.Del(id)
	delete(w.guids, e.guid)
	w.order = slices.DeleteFunc(w.order, func(o *Entity) bool { return o == e })

	index := id.Index()
	w.generations[index]++
	if w.generations[index] == 0 {
		w.generations[index] = 1
	}
	w.freeIndices = append(w.freeIndices, index)
	return true
}

func (w *World) destroySlot(slot *behaviorSlot) {
	prev := slot.state
	slot.state = BehaviorDestroyed
	if prev == BehaviorCreated || prev == BehaviorDestroyed || slot.destroy == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("behavior OnDestroy panicked",
				"behavior", slot.kind.name,
				"entity", slot.entity.id,
				"panic", r,
			)
		}
	}()
	slot.destroy.OnDestroy()
}

// CreateEntityRef returns the weak reference for id, creating it on first use.
func (w *World) CreateEntityRef(id EntityId) *EntityRef {
	if w.Entity(id) == nil {
		return nil
	}

	if weakPtr, ok := w.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		w.refs.Del(id)
	}

	ref := &EntityRef{Id: id, world: w}
	w.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the entity id behind ref if it is still alive.
func (w *World) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	if w.Entity(ref.Id) == nil {
		return 0, false
	}
	return ref.Id, true
}

// WorldStats is a point-in-time summary of a world.
type WorldStats struct {
	EntityCount     int
	BehaviorCount   int
	SingletonCount  int
	BehaviorsByKind map[string]int
	StateCounts     map[BehaviorState]int
	SingletonTypes  []string
}

// CollectStats walks the world and summarizes it.
func (w *World) CollectStats() *WorldStats {
	stats := &WorldStats{
		EntityCount:     len(w.order),
		SingletonCount:  len(w.singletons),
		BehaviorsByKind: make(map[string]int),
		StateCounts:     make(map[BehaviorState]int),
	}

	for _, e := range w.order {
		for _, slot := range e.behaviors {
			stats.BehaviorCount++
			stats.BehaviorsByKind[slot.kind.name]++
			stats.StateCounts[slot.state]++
		}
	}

	for t := range w.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)

	return stats
}
