package bridge

import "fmt"

// SlotHandle identifies a row in a native-side table. The upper 32 bits hold
// the generation the row was issued with, the lower 32 bits the row index.
// Generation 0 is never issued, so the zero handle is always invalid.
type SlotHandle uint64

// NewSlotHandle packs a row index and generation.
func NewSlotHandle(index uint32, generation uint32) SlotHandle {
	return SlotHandle(uint64(generation)<<32 | uint64(index))
}

// Index extracts the row index.
func (h SlotHandle) Index() uint32 {
	return uint32(h & 0xFFFFFFFF)
}

// Generation extracts the generation the handle was issued with.
func (h SlotHandle) Generation() uint32 {
	return uint32(h >> 32)
}

func (h SlotHandle) String() string {
	return fmt.Sprintf("slot#%d/g%d", h.Index(), h.Generation())
}
