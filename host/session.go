// Package host assembles a runnable session out of the world, the bridge
// and the window controller. Frontends (ebiten, terminal, raylib) feed it
// device input once per frame and draw what the native store holds.
package host

import (
	"fmt"
	"log/slog"

	"github.com/plus3/scriptbridge/behaviors"
	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/bridge/native"
	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/input"
	"github.com/plus3/scriptbridge/window"
)

// Config describes a session.
type Config struct {
	// Resolution is the windowed resolution the app starts with.
	Resolution geom.Extent2D
	// Behaviors names the behaviors to spawn, one entity each.
	Behaviors []string
	// Policy is the scheduler's Tick failure policy.
	Policy ecs.TickErrorPolicy
	// Wrap, if set, decorates the native store before the bridge sees it.
	Wrap   func(bridge.Native) bridge.Native
	Logger *slog.Logger
}

// DefaultConfig runs the stock scene at 1280x720.
func DefaultConfig() Config {
	return Config{
		Resolution: geom.Extent(1280, 720),
		Behaviors:  behaviors.DefaultNames,
		Policy:     ecs.DeactivateOnError,
	}
}

// Session is one running world.
type Session struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Store     *native.Store
	Bridge    *bridge.Bridge
	Window    *window.Controller

	tracker *input.Tracker
	logger  *slog.Logger
}

// NewSession builds the world, installs the stock behaviors and populates
// the scene. backend is the frontend's window.
func NewSession(cfg Config, backend window.Backend) (*Session, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := native.NewStore()
	var n bridge.Native = store
	if cfg.Wrap != nil {
		n = cfg.Wrap(store)
	}

	registry := ecs.NewBehaviorRegistry()
	behaviors.Install(registry)

	world := ecs.NewWorld(registry, ecs.WithLogger(logger))
	s := &Session{
		World:     world,
		Scheduler: ecs.NewScheduler(world, ecs.WithTickErrorPolicy(cfg.Policy)),
		Store:     store,
		Bridge:    bridge.New(n, bridge.WithLogger(logger)),
		Window: window.NewController(backend,
			window.WithLogger(logger),
			window.WithInitialResolution(cfg.Resolution)),
		tracker: input.NewTracker(),
		logger:  logger,
	}

	behaviors.Provide(world, behaviors.Resources{Bridge: s.Bridge, Window: s.Window})

	if err := behaviors.Populate(world, cfg.Behaviors); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return s, nil
}

// Step polls src, runs one scheduler step and applies window policy. It
// reports false once the app asked to quit.
func (s *Session) Step(dt float64, src input.Source, mouseDelta geom.Vector2) bool {
	snap := s.tracker.Next(src, mouseDelta)
	s.Scheduler.Once(dt, snap)
	s.Window.Update()
	return !s.Window.QuitRequested()
}

// ReleaseInput forgets held keys, e.g. when the frontend loses focus.
func (s *Session) ReleaseInput() {
	s.tracker.Reset()
}

// Failures is the number of behavior failures so far.
func (s *Session) Failures() int64 {
	var n int64
	for _, b := range s.Scheduler.GetStats().Behaviors {
		n += b.FailureCount
	}
	return n
}

func (s *Session) Logger() *slog.Logger {
	return s.logger
}
