package bridge

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
)

// Bridge is the managed-side view of a Native implementation. Register it as
// a world singleton and call Attach so destroyed entities release their slots.
type Bridge struct {
	native  Native
	logger  *slog.Logger
	owners  *intmap.Map[SlotHandle, ecs.EntityId]
	byOwner map[ecs.EntityId][]SlotHandle

	cameraPushes uint64
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger used to report native failures.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// New wraps native.
func New(native Native, opts ...Option) *Bridge {
	b := &Bridge{
		native:  native,
		logger:  slog.Default(),
		owners:  intmap.New[SlotHandle, ecs.EntityId](64),
		byOwner: make(map[ecs.EntityId][]SlotHandle),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach hooks entity destruction in world so every slot an entity created
// is removed when the entity goes away.
func (b *Bridge) Attach(world *ecs.World) {
	world.OnDestroy(func(id ecs.EntityId) {
		b.ReleaseOwner(id)
	})
}

// Native returns the wrapped port.
func (b *Bridge) Native() Native {
	return b.native
}

// SetCameraPosition pushes the camera position to the native side.
func (b *Bridge) SetCameraPosition(pos geom.Vector3) error {
	err := guard("SetCameraPosition", func() error {
		return b.native.SetCameraPosition(pos)
	})
	if err != nil {
		b.logger.Error("camera push failed", "position", pos, "error", err)
		return err
	}
	b.cameraPushes++
	return nil
}

// CameraPushes counts successful camera pushes.
func (b *Bridge) CameraPushes() uint64 {
	return b.cameraPushes
}

// AddPositionSlot inserts a native row for owner and returns its handle.
func (b *Bridge) AddPositionSlot(owner ecs.EntityId, pos geom.Vector3) (SlotHandle, error) {
	var h SlotHandle
	err := guard("AddPositionSlot", func() error {
		var err error
		h, err = b.native.AddPositionSlot(pos)
		return err
	})
	if err != nil {
		b.logger.Error("slot add failed", "owner", owner, "error", err)
		return 0, err
	}

	b.owners.Put(h, owner)
	b.byOwner[owner] = append(b.byOwner[owner], h)
	return h, nil
}

// UpdatePositionSlot overwrites the row at h. The handle must have been
// issued to owner by AddPositionSlot and not released since.
func (b *Bridge) UpdatePositionSlot(owner ecs.EntityId, h SlotHandle, pos geom.Vector3) error {
	if err := b.checkOwner(owner, h); err != nil {
		return err
	}
	return guard("UpdatePositionSlot", func() error {
		return b.native.UpdatePositionSlot(h, pos)
	})
}

// RemovePositionSlot removes the row at h and forgets the handle. If the
// native side refuses, the handle stays owned so ReleaseOwner can retry.
func (b *Bridge) RemovePositionSlot(owner ecs.EntityId, h SlotHandle) error {
	if err := b.checkOwner(owner, h); err != nil {
		return err
	}
	return b.remove(owner, h)
}

// ReleaseOwner removes every slot owner created and returns how many were
// released. Slots the native side refuses to remove stay owned.
func (b *Bridge) ReleaseOwner(owner ecs.EntityId) int {
	var released int
	for _, h := range slices.Clone(b.byOwner[owner]) {
		if err := b.remove(owner, h); err != nil {
			b.logger.Warn("slot release failed", "owner", owner, "handle", h, "error", err)
			continue
		}
		released++
	}
	return released
}

// remove calls the native side first and only drops the ownership record
// once the row is gone, or was never there.
func (b *Bridge) remove(owner ecs.EntityId, h SlotHandle) error {
	err := guard("RemovePositionSlot", func() error {
		return b.native.RemovePositionSlot(h)
	})
	if err == nil || errors.Is(err, ErrInvalidHandle) {
		b.forget(owner, h)
	}
	return err
}

// OwnedSlots returns the handles currently held by owner.
func (b *Bridge) OwnedSlots(owner ecs.EntityId) []SlotHandle {
	return append([]SlotHandle(nil), b.byOwner[owner]...)
}

// SlotCount is the number of live handles tracked by the bridge.
func (b *Bridge) SlotCount() int {
	return b.owners.Len()
}

func (b *Bridge) checkOwner(owner ecs.EntityId, h SlotHandle) error {
	got, ok := b.owners.Get(h)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	if got != owner {
		return fmt.Errorf("%w: %s held by entity %d, used by %d", ErrForeignHandle, h, got, owner)
	}
	return nil
}

func (b *Bridge) forget(owner ecs.EntityId, h SlotHandle) {
	b.owners.Del(h)
	handles := b.byOwner[owner]
	for i, held := range handles {
		if held == h {
			handles = append(handles[:i], handles[i+1:]...)
			break
		}
	}
	if len(handles) == 0 {
		delete(b.byOwner, owner)
	} else {
		b.byOwner[owner] = handles
	}
}

// guard runs a native call and converts a panic into ErrNativeFault.
func guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w in %s: %v", ErrNativeFault, op, r)
		}
	}()
	return fn()
}
