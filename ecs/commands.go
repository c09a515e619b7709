package ecs

import (
	"errors"
	"fmt"
)

// Commands provides a buffer for deferred world operations that are executed at the end of a frame.
// Destroying through Commands never pulls an entity out from under the behaviors still running this step.
type Commands struct {
	destroys []EntityId
	spawns   []spawnCommand
	defers   []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	name  string
	setup func(*Entity) error
}

type deferCommand struct {
	fn func()
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(entity EntityId) {
	c.destroys = append(c.destroys, entity)
}

// Spawn queues an entity creation; setup runs right after the entity exists
// and usually attaches behaviors. Its behaviors start on the next step.
func (c *Commands) Spawn(name string, setup func(*Entity) error) {
	c.spawns = append(c.spawns, spawnCommand{name: name, setup: setup})
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Flush applies queued commands to world and resets the buffer. Setup
// errors are collected; an entity whose setup failed is destroyed again.
func (c *Commands) Flush(world *World) error {
	var errs []error

	for _, id := range c.destroys {
		world.Destroy(id)
	}

	for _, cmd := range c.spawns {
		e := world.NewEntity(cmd.name)
		if cmd.setup == nil {
			continue
		}
		if err := cmd.setup(e); err != nil {
			errs = append(errs, fmt.Errorf("spawn %q: %w", cmd.name, err))
			world.Destroy(e.Id())
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.destroys = c.destroys[:0]
	c.spawns = c.spawns[:0]
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}
