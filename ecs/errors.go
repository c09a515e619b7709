package ecs

import "errors"

var (
	// ErrUnregisteredBehavior is returned when creating a behavior variant
	// that was never registered.
	ErrUnregisteredBehavior = errors.New("behavior not registered")
	// ErrEntityDestroyed is returned when attaching to a destroyed entity.
	ErrEntityDestroyed = errors.New("entity destroyed")
	// ErrInvalidParent is returned when a parent link would cross worlds or
	// form a cycle.
	ErrInvalidParent = errors.New("invalid parent")
)
