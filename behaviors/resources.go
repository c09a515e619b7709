// Package behaviors holds the stock behavior variants: a cube steered with
// the arrow keys, a first-person camera, a window controller and a spinner.
package behaviors

import (
	"errors"

	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/window"
)

// ErrMissingResource is returned from OnInit when a behavior needs a world
// resource the host did not provide.
var ErrMissingResource = errors.New("missing world resource")

// Resources are the host-owned services behaviors reach through singletons.
type Resources struct {
	Bridge *bridge.Bridge
	Window *window.Controller
}

// Provide registers res on world. The bridge is attached so slots are
// released when their entity is destroyed.
func Provide(world *ecs.World, res Resources) {
	if res.Bridge != nil {
		ecs.SetSingleton(world, res.Bridge)
		res.Bridge.Attach(world)
	}
	if res.Window != nil {
		ecs.SetSingleton(world, res.Window)
	}
}
