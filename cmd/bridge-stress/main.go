package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"

	"github.com/plus3/scriptbridge/behaviors"
	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/host"
	"github.com/plus3/scriptbridge/input"
	"github.com/plus3/scriptbridge/window"
)

// wander holds one arrow key at a time, switching every few steps, so every
// cube moves and updates its slot on every step.
type wander struct {
	step int
}

var arrows = []input.Key{input.KeyUpArrow, input.KeyRightArrow, input.KeyDownArrow, input.KeyLeftArrow}

func (w *wander) IsHeld(k input.Key) bool {
	return k == arrows[(w.step/30)%len(arrows)]
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	cubeCount := flag.Int("cubes", 10000, "The number of cubes to spawn, each owning one position slot.")
	churn := flag.Int("churn", 50, "Cubes destroyed and respawned per step.")
	profileMode := flag.String("profile", "", "Write a profile: cpu or mem.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if *cubeCount < 1 {
		log.Fatal("need at least one cube")
	}

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	log.Println("Starting bridge stress test...")

	cfg := host.DefaultConfig()
	cfg.Behaviors = nil
	session, err := host.NewSession(cfg, window.NewHeadless(cfg.Resolution))
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	log.Printf("Spawning %d cubes...\n", *cubeCount)
	cubes := make([]ecs.EntityId, 0, *cubeCount)
	for range *cubeCount {
		cubes = append(cubes, spawnCube(session.World))
	}
	if _, err := ecs.CreateBehavior[behaviors.Camera](session.World.NewEntity("camera")); err != nil {
		log.Fatalf("Failed to attach camera: %v", err)
	}
	log.Println("Population complete.")

	report := &Report{
		Duration:       *duration,
		Cubes:          *cubeCount,
		Churn:          *churn,
		GCPauseMetrics: *gcPauseMetrics,
		StepTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	src := &wander{}
	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			stepStart := time.Now()
			for range *churn {
				i := rand.IntN(len(cubes))
				session.World.Destroy(cubes[i])
				cubes[i] = spawnCube(session.World)
			}
			session.Step(deltaTime.Seconds(), src, geom.Vector2{})
			report.StepTime.Samples = append(report.StepTime.Samples, time.Since(stepStart))

			src.step++
			report.TotalSteps++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.StepTime.Finalize()
	report.LiveSlots = session.Store.PositionCount()
	report.CameraPushes = session.Store.CameraPushes()
	report.Failures = session.Failures()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

func spawnCube(world *ecs.World) ecs.EntityId {
	e := world.NewEntity("cube")
	e.SetPosition(geom.Vec3(rand.Float32()*100-50, 0, rand.Float32()*100-50))
	ecs.CreateBehavior[behaviors.Cube](e)
	return e.Id()
}
