package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
)

type Drifter struct {
	ecs.BaseBehavior
	Velocity geom.Vector3
}

func (d *Drifter) OnInit(frame *ecs.UpdateFrame) error {
	fmt.Printf("%s starts at %v\n", d.Entity().Name(), d.Entity().Position())
	return nil
}

func (d *Drifter) Tick(frame *ecs.UpdateFrame) error {
	d.Entity().Translate(d.Velocity.Mul(frame.FrameTime()), geom.World)
	return nil
}

// ExampleScheduler demonstrates basic scheduler usage: register a behavior,
// attach it to an entity and step the world.
func ExampleScheduler() {
	registry := ecs.NewBehaviorRegistry()
	ecs.RegisterBehavior[Drifter](registry)

	world := ecs.NewWorld(registry)
	scheduler := ecs.NewScheduler(world)

	e := world.NewEntity("drifter")
	drifter, _ := ecs.CreateBehavior[Drifter](e)
	drifter.Velocity = geom.Vec3(0, 0, 1)

	for range 4 {
		scheduler.Once(0.25, nil)
	}

	fmt.Printf("after one second: %v\n", e.Position())

	// Output:
	// drifter starts at (0.000, 0.000, 0.000)
	// after one second: (0.000, 0.000, 1.000)
}

// ExampleScheduler_Run demonstrates running the scheduler with a context.
func ExampleScheduler_Run() {
	registry := ecs.NewBehaviorRegistry()
	world := ecs.NewWorld(registry)
	scheduler := ecs.NewScheduler(world)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 10*time.Millisecond, nil)

	fmt.Println("Scheduler stopped")

	// Output:
	// Scheduler stopped
}

// ExampleScheduler_GetStats demonstrates per-behavior execution statistics.
func ExampleScheduler_GetStats() {
	registry := ecs.NewBehaviorRegistry()
	ecs.RegisterBehavior[Drifter](registry)

	world := ecs.NewWorld(registry)
	scheduler := ecs.NewScheduler(world)

	for _, name := range []string{"a", "b"} {
		ecs.CreateBehavior[Drifter](world.NewEntity(name))
	}

	scheduler.Once(1.0/60, nil)
	scheduler.Once(1.0/60, nil)

	stats := scheduler.GetStats()
	fmt.Printf("Frames: %d\n", stats.Frames)
	for _, b := range stats.Behaviors {
		fmt.Printf("%s: %d inits, %d ticks\n", b.Name, b.InitCount, b.ExecutionCount)
	}

	// Output:
	// a starts at (0.000, 0.000, 0.000)
	// b starts at (0.000, 0.000, 0.000)
	// Frames: 2
	// Drifter: 2 inits, 4 ticks
}
