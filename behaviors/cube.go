package behaviors

import (
	"fmt"
	"log/slog"

	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/input"
)

// Cube registers its position with the native side once and then updates
// that slot whenever it moves. Arrow keys move it in world space; Shift runs.
type Cube struct {
	ecs.BaseBehavior
	Speed float32

	Bridge ecs.Singleton[bridge.Bridge]

	handle bridge.SlotHandle
}

func (c *Cube) OnInit(frame *ecs.UpdateFrame) error {
	b := c.Bridge.Get()
	if b == nil {
		return fmt.Errorf("cube: %w: bridge", ErrMissingResource)
	}

	h, err := b.AddPositionSlot(c.EntityId(), c.Entity().Position())
	if err != nil {
		return fmt.Errorf("cube: add slot: %w", err)
	}
	c.handle = h
	return nil
}

func (c *Cube) Tick(frame *ecs.UpdateFrame) error {
	mover := Mover{Bindings: ArrowBindings, Run: input.KeyShift, Speed: c.Speed}
	delta := mover.Delta(frame.Input, frame.FrameTime())
	if delta.IsZero() {
		return nil
	}

	e := c.Entity()
	e.Translate(delta, geom.World)
	return c.Bridge.Get().UpdatePositionSlot(c.EntityId(), c.handle, e.Position())
}

func (c *Cube) OnDestroy() {
	if c.handle == 0 {
		return
	}
	if b := c.Bridge.Get(); b != nil {
		if err := b.RemovePositionSlot(c.EntityId(), c.handle); err != nil {
			c.logger().Warn("cube slot release failed", "entity", c.EntityId(), "handle", c.handle, "error", err)
		}
	}
	c.handle = 0
}

func (c *Cube) logger() *slog.Logger {
	if e := c.Entity(); e != nil {
		return e.World().Logger()
	}
	return slog.Default()
}

// Handle returns the slot issued in OnInit, or 0.
func (c *Cube) Handle() bridge.SlotHandle {
	return c.handle
}
