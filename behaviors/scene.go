package behaviors

import (
	"fmt"
	"strings"

	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
)

// Install registers every stock behavior on registry.
func Install(registry *ecs.BehaviorRegistry) {
	ecs.RegisterBehavior[Cube](registry)
	ecs.RegisterBehavior[Camera](registry)
	ecs.RegisterBehavior[WindowController](registry)
	ecs.RegisterBehavior[Rotate](registry)
}

// DefaultNames is the scene DefaultScene builds.
var DefaultNames = []string{"Cube", "Camera", "WindowController"}

// DefaultScene creates one entity each for a cube, the camera and the window
// controller.
func DefaultScene(world *ecs.World) error {
	return Populate(world, DefaultNames)
}

// Populate creates one entity per name, named after the behavior in lower
// case, and attaches the named behavior to it. A Rotate gets a slow spin
// about world up.
func Populate(world *ecs.World, names []string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		e := world.NewEntity(strings.ToLower(name))
		instance, err := e.CreateBehaviorByName(name)
		if err != nil {
			e.Destroy()
			return fmt.Errorf("populate scene: %w", err)
		}

		if r, ok := instance.(*Rotate); ok {
			r.Axis = geom.Up
			r.DegreesPerSecond = 45
		}
	}
	return nil
}
