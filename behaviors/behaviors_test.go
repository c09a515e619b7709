package behaviors_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/plus3/scriptbridge/behaviors"
	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/bridge/native"
	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/input"
	"github.com/plus3/scriptbridge/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame60 = 1.0 / 60

// refusingStore never lets a slot go.
type refusingStore struct {
	*native.Store
}

func (r *refusingStore) RemovePositionSlot(bridge.SlotHandle) error {
	return errors.New("slot removal refused")
}

type harness struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	store     *native.Store
	bridge    *bridge.Bridge
	backend   *window.Headless
	window    *window.Controller
	tracker   *input.Tracker
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry := ecs.NewBehaviorRegistry()
	behaviors.Install(registry)

	h := &harness{
		world:   ecs.NewWorld(registry, ecs.WithLogger(logger)),
		store:   native.NewStore(),
		backend: window.NewHeadless(geom.Extent(800, 600)),
		tracker: input.NewTracker(),
	}
	h.bridge = bridge.New(h.store, bridge.WithLogger(logger))
	h.window = window.NewController(h.backend, window.WithLogger(logger), window.WithInitialResolution(h.backend.Size))
	h.scheduler = ecs.NewScheduler(h.world)

	behaviors.Provide(h.world, behaviors.Resources{Bridge: h.bridge, Window: h.window})
	return h
}

// step runs one frame with the given keys held and mouse delta.
func (h *harness) step(mouse geom.Vector2, held ...input.Key) {
	snap := h.tracker.Next(input.SourceFunc(func(k input.Key) bool {
		for _, want := range held {
			if k == want {
				return true
			}
		}
		return false
	}), mouse)
	h.scheduler.Once(frame60, snap)
}

func (h *harness) keys(held ...input.Key) {
	h.step(geom.Vector2{}, held...)
}

func TestCube(t *testing.T) {
	t.Run("forward and run for one frame", func(t *testing.T) {
		h := newHarness(t)
		e := h.world.NewEntity("cube")
		cube, err := ecs.CreateBehavior[behaviors.Cube](e)
		require.NoError(t, err)
		cube.Speed = 3

		h.keys(input.KeyUpArrow, input.KeyShift)

		assertVec(t, geom.Vec3(0, 0, 0.05), e.Position())
		pos, ok := h.store.Position(cube.Handle())
		require.True(t, ok)
		assertVec(t, geom.Vec3(0, 0, 0.05), pos)
	})

	t.Run("one slot per cube", func(t *testing.T) {
		h := newHarness(t)
		cubes := make([]*behaviors.Cube, 5)
		for i := range cubes {
			e := h.world.NewEntity("cube")
			e.SetPosition(geom.Vec3(float32(i), 0, 0))
			cubes[i], _ = ecs.CreateBehavior[behaviors.Cube](e)
		}

		h.keys()
		h.keys(input.KeyRightArrow)

		assert.Equal(t, 5, h.store.PositionCount())
		seen := make(map[bridge.SlotHandle]bool)
		for _, c := range cubes {
			assert.False(t, seen[c.Handle()])
			seen[c.Handle()] = true
		}
	})

	t.Run("destroy releases the slot", func(t *testing.T) {
		h := newHarness(t)
		e := h.world.NewEntity("cube")
		cube, err := ecs.CreateBehavior[behaviors.Cube](e)
		require.NoError(t, err)

		h.keys()
		handle := cube.Handle()
		require.NotZero(t, handle)

		e.Destroy()
		assert.Equal(t, 0, h.store.PositionCount())
		assert.Equal(t, 0, h.bridge.SlotCount())
		assert.ErrorIs(t, h.store.UpdatePositionSlot(handle, geom.Zero), bridge.ErrInvalidHandle)
	})

	t.Run("refused slot release is logged", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		registry := ecs.NewBehaviorRegistry()
		behaviors.Install(registry)
		world := ecs.NewWorld(registry, ecs.WithLogger(logger))
		store := &refusingStore{Store: native.NewStore()}
		behaviors.Provide(world, behaviors.Resources{Bridge: bridge.New(store, bridge.WithLogger(logger))})

		e := world.NewEntity("cube")
		_, err := ecs.CreateBehavior[behaviors.Cube](e)
		require.NoError(t, err)
		ecs.NewScheduler(world).Once(frame60, nil)

		e.Destroy()
		assert.Contains(t, logs.String(), "cube slot release failed")
		assert.Contains(t, logs.String(), "slot removal refused")
		assert.Equal(t, 1, store.PositionCount())
	})

	t.Run("missing bridge fails init", func(t *testing.T) {
		registry := ecs.NewBehaviorRegistry()
		behaviors.Install(registry)
		world := ecs.NewWorld(registry, ecs.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

		e := world.NewEntity("cube")
		_, err := ecs.CreateBehavior[behaviors.Cube](e)
		require.NoError(t, err)

		ecs.NewScheduler(world).Once(frame60, nil)

		info := e.Behaviors()[0]
		assert.Equal(t, ecs.BehaviorFailed, info.State)
		assert.ErrorIs(t, info.Err, behaviors.ErrMissingResource)
	})
}

func TestCamera(t *testing.T) {
	t.Run("starts behind the origin and pushes", func(t *testing.T) {
		h := newHarness(t)
		e := h.world.NewEntity("camera")
		_, err := ecs.CreateBehavior[behaviors.Camera](e)
		require.NoError(t, err)

		h.keys()
		assertVec(t, behaviors.CameraStart, h.store.Camera())
		assert.Equal(t, uint64(2), h.store.CameraPushes(), "one push on init, one per tick")
	})

	t.Run("moves relative to facing", func(t *testing.T) {
		h := newHarness(t)
		e := h.world.NewEntity("camera")
		camera, err := ecs.CreateBehavior[behaviors.Camera](e)
		require.NoError(t, err)
		camera.Sensitivity = 1

		h.keys()
		h.step(geom.Vec2(90, 0))
		h.keys(input.KeyW)

		want := behaviors.CameraStart.Add(geom.Right.Mul(0.5 * frame60))
		assertVec(t, want, e.Position())
		assertVec(t, want, h.store.Camera())
	})

	t.Run("pitch is clamped and never rolls", func(t *testing.T) {
		h := newHarness(t)
		e := h.world.NewEntity("camera")
		camera, err := ecs.CreateBehavior[behaviors.Camera](e)
		require.NoError(t, err)
		camera.Sensitivity = 1

		for range 20 {
			h.step(geom.Vec2(13, 17))
		}

		assert.InDelta(t, 89, camera.Pitch(), 1e-4)
		assert.InDelta(t, 0, e.Transform().Right().Y(), 1e-4)
	})
}

func TestWindowController(t *testing.T) {
	newScene := func(t *testing.T) *harness {
		h := newHarness(t)
		_, err := ecs.CreateBehavior[behaviors.WindowController](h.world.NewEntity("window"))
		require.NoError(t, err)
		h.keys()
		return h
	}

	t.Run("toggles on key down only", func(t *testing.T) {
		h := newScene(t)

		h.keys(input.KeyF)
		h.keys(input.KeyF)
		assert.True(t, h.window.Borderless())

		h.keys()
		h.keys(input.KeyF)
		assert.False(t, h.window.Borderless())

		h.keys(input.KeyM)
		assert.True(t, h.window.MinimizeOnFocusLoss())
	})

	t.Run("resolution presets and restore", func(t *testing.T) {
		h := newScene(t)

		h.keys(input.KeyTwo)
		assert.Equal(t, behaviors.Resolution900p, h.backend.Size)

		h.keys(input.KeyThree)
		assert.Equal(t, behaviors.Resolution1080p, h.backend.Size)

		h.keys(input.KeyZero)
		assert.Equal(t, geom.Extent(800, 600), h.backend.Size)
	})

	t.Run("escape quits", func(t *testing.T) {
		h := newScene(t)
		h.keys(input.KeyEscape)
		assert.True(t, h.window.QuitRequested())
	})
}

func TestRotate(t *testing.T) {
	h := newHarness(t)
	e := h.world.NewEntity("spinner")
	r, err := ecs.CreateBehavior[behaviors.Rotate](e)
	require.NoError(t, err)
	r.Axis = geom.Up
	r.DegreesPerSecond = 90 * 60

	h.keys()
	assertVec(t, geom.Right, e.Transform().Forward())
}

func TestScene(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, behaviors.DefaultScene(h.world))

	assert.Equal(t, 3, h.world.Len())
	require.NotNil(t, h.world.FindByName("camera"))

	h.keys()
	assert.Equal(t, 1, h.store.PositionCount())
	assertVec(t, behaviors.CameraStart, h.store.Camera())

	err := behaviors.Populate(h.world, []string{"Rotate", "Teapot"})
	assert.ErrorIs(t, err, ecs.ErrUnregisteredBehavior)
	assert.Nil(t, h.world.FindByName("teapot"))
	assert.NotNil(t, h.world.FindByName("rotate"))
}

func assertVec(t *testing.T, want, got geom.Vector3) {
	t.Helper()
	assert.Truef(t, want.ApproxEqual(got, 1e-5), "want %v, got %v", want, got)
}
