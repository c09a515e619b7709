package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// BehaviorRegistry maps behavior variants to factories. Each World is created
// from one registry; entities can only create registered variants.
type BehaviorRegistry struct {
	byType map[reflect.Type]*behaviorKind
	byName map[string]*behaviorKind
	kinds  []*behaviorKind
}

type behaviorKind struct {
	name    string
	typ     reflect.Type
	factory func() any
	index   int
}

// NewBehaviorRegistry creates an empty registry.
func NewBehaviorRegistry() *BehaviorRegistry {
	return &BehaviorRegistry{
		byType: make(map[reflect.Type]*behaviorKind),
		byName: make(map[string]*behaviorKind),
	}
}

// RegisterBehavior registers T under its type name.
// This must be called for each behavior type before it can be created.
func RegisterBehavior[T any](r *BehaviorRegistry) {
	RegisterBehaviorNamed[T](r, reflect.TypeFor[T]().Name())
}

// RegisterBehaviorNamed registers T under name. Behavior types must be
// structs; registering the same type or name twice panics.
func RegisterBehaviorNamed[T any](r *BehaviorRegistry, name string) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		panic("behavior type " + t.String() + " must be a struct")
	}
	if name == "" {
		panic("behavior type " + t.String() + " registered without a name")
	}
	if _, ok := r.byType[t]; ok {
		panic("behavior type " + t.String() + " already registered")
	}
	if _, ok := r.byName[name]; ok {
		panic("behavior name " + name + " already registered")
	}

	kind := &behaviorKind{
		name: name,
		typ:  t,
		factory: func() any {
			return new(T)
		},
		index: len(r.kinds),
	}
	r.byType[t] = kind
	r.byName[name] = kind
	r.kinds = append(r.kinds, kind)
}

// Names returns registered names, sorted.
func (r *BehaviorRegistry) Names() []string {
	names := make([]string, 0, len(r.kinds))
	for _, k := range r.kinds {
		names = append(names, k.name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether name is registered.
func (r *BehaviorRegistry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

func (r *BehaviorRegistry) kindOf(t reflect.Type) (*behaviorKind, error) {
	kind, ok := r.byType[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredBehavior, t)
	}
	return kind, nil
}

func (r *BehaviorRegistry) kindNamed(name string) (*behaviorKind, error) {
	kind, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnregisteredBehavior, name, strings.Join(r.Names(), ", "))
	}
	return kind, nil
}
