package ecs

import "reflect"

// Singleton provides access to a single resource owned by the world rather
// than by any entity: the native bridge, the window controller, settings.
// Behaviors declare Singleton fields and the world wires them on creation,
// so nothing reaches for package-level globals.
type Singleton[T any] struct {
	world *World
	ptr   *T
}

// NewSingleton creates a Singleton accessor for the given world.
// If initializer is provided and the singleton doesn't exist yet,
// it will be created with the initializer value. Otherwise, a zero value is used.
// This guarantees the singleton exists in the world after the call.
func NewSingleton[T any](world *World, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if _, ok := world.singletons[t]; !ok {
		value := new(T)
		if len(initializer) > 0 {
			*value = initializer[0]
		}
		world.singletons[t] = value
	}

	s := &Singleton[T]{}
	s.Init(world)
	return s
}

// SetSingleton stores value as the world's T resource, replacing any previous
// one. Use it for resources built elsewhere that must not be copied.
func SetSingleton[T any](world *World, value *T) {
	world.singletons[reflect.TypeFor[T]()] = value
}

// GetSingleton returns the world's T resource, or nil.
func GetSingleton[T any](world *World) *T {
	value, ok := world.singletons[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return value.(*T)
}

// Init binds the Singleton to a world.
// This is called automatically when a behavior is created.
func (s *Singleton[T]) Init(world *World) {
	s.world = world
	s.updateCache()
}

// Get returns a pointer to the resource.
// Returns nil if the resource has not been added to the world.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.updateCache()
	}
	return s.ptr
}

// Exists returns true if the resource has been added to the world
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.world == nil {
		return
	}
	s.ptr = GetSingleton[T](s.world)
}
