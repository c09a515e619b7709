// Package bridge is the boundary between behavior code and engine-owned
// state. Native is the port the engine implements; Bridge is the managed-side
// facade behaviors talk to. Bridge never lets a native fault escape as a
// panic, and it refuses handles that were not issued to the calling entity.
package bridge

import (
	"errors"

	"github.com/plus3/scriptbridge/geom"
)

var (
	// ErrInvalidHandle is returned for handles that were never issued by the
	// table, were removed, or predate a table reset.
	ErrInvalidHandle = errors.New("invalid slot handle")
	// ErrForeignHandle is returned when an entity uses a handle issued to
	// another entity.
	ErrForeignHandle = errors.New("slot handle owned by another entity")
	// ErrTableFull is returned when a table cannot issue more rows.
	ErrTableFull = errors.New("slot table full")
	// ErrNativeFault wraps a panic raised on the native side of a call.
	ErrNativeFault = errors.New("native fault")
)

// Native is implemented by engine-side storage.
//
// SetCameraPosition is a direct push: no handle, idempotent, safe every frame.
// The PositionSlot calls form the indexed registration scheme: Add once per
// logical object, Update by handle afterwards.
type Native interface {
	SetCameraPosition(pos geom.Vector3) error
	AddPositionSlot(pos geom.Vector3) (SlotHandle, error)
	UpdatePositionSlot(h SlotHandle, pos geom.Vector3) error
	RemovePositionSlot(h SlotHandle) error
}
