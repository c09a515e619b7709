// Package native is an in-process stand-in for engine-owned state: the
// current camera position and a table of object positions addressed by slot
// handle. Hosts read it to draw; behaviors reach it only through bridge.Bridge.
package native

import (
	"iter"

	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/geom"
)

// Store implements bridge.Native. It is not safe for concurrent use; the
// frame thread owns it.
type Store struct {
	camera       geom.Vector3
	cameraPushes uint64
	positions    *SlotTable[geom.Vector3]
}

var _ bridge.Native = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		positions: NewSlotTable[geom.Vector3](),
	}
}

func (s *Store) SetCameraPosition(pos geom.Vector3) error {
	s.camera = pos
	s.cameraPushes++
	return nil
}

func (s *Store) AddPositionSlot(pos geom.Vector3) (bridge.SlotHandle, error) {
	return s.positions.Add(pos)
}

func (s *Store) UpdatePositionSlot(h bridge.SlotHandle, pos geom.Vector3) error {
	return s.positions.Update(h, pos)
}

func (s *Store) RemovePositionSlot(h bridge.SlotHandle) error {
	return s.positions.Remove(h)
}

// Camera returns the last pushed camera position.
func (s *Store) Camera() geom.Vector3 {
	return s.camera
}

// CameraPushes counts SetCameraPosition calls.
func (s *Store) CameraPushes() uint64 {
	return s.cameraPushes
}

// Position returns the row at h.
func (s *Store) Position(h bridge.SlotHandle) (geom.Vector3, bool) {
	return s.positions.Get(h)
}

// Positions iterates every live position row.
func (s *Store) Positions() iter.Seq2[bridge.SlotHandle, geom.Vector3] {
	return s.positions.All()
}

// PositionCount is the number of live position rows.
func (s *Store) PositionCount() int {
	return s.positions.Len()
}

// Reset clears the position table and invalidates every issued handle.
func (s *Store) Reset() {
	s.positions.Reset()
}
