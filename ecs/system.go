package ecs

import (
	"fmt"
	"reflect"
	"strings"
)

// Initializer is implemented by behaviors that need one-time setup. OnInit
// runs on the behavior's first step, before its first Tick. An error (or a
// panic) marks the behavior failed and it is never ticked.
type Initializer interface {
	OnInit(frame *UpdateFrame) error
}

// Ticker is implemented by behaviors with per-frame logic. Tick must return
// promptly; the whole simulation waits on it.
type Ticker interface {
	Tick(frame *UpdateFrame) error
}

// Destroyer is implemented by behaviors that release resources when their
// entity is destroyed. It is only called for behaviors that reached OnInit.
type Destroyer interface {
	OnDestroy()
}

// BaseBehavior gives a behavior a non-owning reference to its entity.
// Embed it in behavior structs.
type BaseBehavior struct {
	ref *EntityRef
}

// Entity returns the owning entity, or nil once it has been destroyed.
func (b *BaseBehavior) Entity() *Entity {
	return b.ref.Entity()
}

// EntityId returns the owning entity's id, or 0 once it has been destroyed.
func (b *BaseBehavior) EntityId() EntityId {
	if b.ref == nil {
		return 0
	}
	return b.ref.Id
}

func (b *BaseBehavior) bindEntity(ref *EntityRef) {
	b.ref = ref
}

type entityBinder interface {
	bindEntity(ref *EntityRef)
}

// BehaviorState is the lifecycle position of one attached behavior.
type BehaviorState uint8

const (
	BehaviorCreated BehaviorState = iota
	BehaviorInitialized
	BehaviorTicking
	BehaviorFailed
	BehaviorDestroyed
)

func (s BehaviorState) String() string {
	switch s {
	case BehaviorCreated:
		return "Created"
	case BehaviorInitialized:
		return "Initialized"
	case BehaviorTicking:
		return "Ticking"
	case BehaviorFailed:
		return "Failed"
	case BehaviorDestroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("BehaviorState(%d)", uint8(s))
	}
}

// behaviorSlot is an attached behavior with its lifecycle methods resolved
// once at creation.
type behaviorSlot struct {
	kind     *behaviorKind
	instance any
	entity   *Entity
	init     Initializer
	tick     Ticker
	destroy  Destroyer
	state    BehaviorState
	err      error
	bornStep uint64
}

// CreateBehavior allocates a T, attaches it to e and schedules it. T must be
// registered with the world's registry.
func CreateBehavior[T any](e *Entity) (*T, error) {
	kind, err := e.world.registry.kindOf(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	instance, err := e.attach(kind)
	if err != nil {
		return nil, err
	}
	return instance.(*T), nil
}

// CreateBehaviorByName is CreateBehavior for a variant registered under name.
// It returns a pointer to the new behavior.
func (e *Entity) CreateBehaviorByName(name string) (any, error) {
	kind, err := e.world.registry.kindNamed(name)
	if err != nil {
		return nil, err
	}
	return e.attach(kind)
}

func (e *Entity) attach(kind *behaviorKind) (any, error) {
	if !e.Alive() {
		return nil, fmt.Errorf("%w: cannot attach %s to entity %d", ErrEntityDestroyed, kind.name, e.id)
	}

	instance := kind.factory()
	e.world.initializeSingletons(instance)

	if binder, ok := instance.(entityBinder); ok {
		binder.bindEntity(e.world.CreateEntityRef(e.id))
	}

	slot := &behaviorSlot{
		kind:     kind,
		instance: instance,
		entity:   e,
		state:    BehaviorCreated,
		bornStep: e.world.step,
	}
	slot.init, _ = instance.(Initializer)
	slot.tick, _ = instance.(Ticker)
	slot.destroy, _ = instance.(Destroyer)

	e.behaviors = append(e.behaviors, slot)
	return instance, nil
}

// initializeSingletons wires every Singleton[...] field of a behavior to w.
func (w *World) initializeSingletons(instance any) {
	value := reflect.ValueOf(instance)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return
	}

	valueType := value.Type()
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		fieldType := valueType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		if strings.HasPrefix(field.Type().Name(), "Singleton[") {
			initMethod := field.Addr().MethodByName("Init")
			if !initMethod.IsValid() {
				panic("Init method not found on Singleton field: " + fieldType.Name)
			}
			initMethod.Call([]reflect.Value{reflect.ValueOf(w)})
		}
	}
}
