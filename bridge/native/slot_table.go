package native

import (
	"fmt"
	"iter"
	"math"

	"github.com/plus3/scriptbridge/bridge"
)

const (
	slotBlockSize = 64
)

// SlotTable is a dense, block-allocated table addressed by SlotHandle. Rows
// are reused through a free list; every reuse gets a fresh generation so a
// handle to a removed row never reaches its successor.
type SlotTable[T any] struct {
	blocks      [][slotBlockSize]T
	generations [][slotBlockSize]uint32
	freeSlots   []uint32
	nextIndex   uint32
	nextGen     uint32
	count       int
}

// NewSlotTable creates an empty table.
func NewSlotTable[T any]() *SlotTable[T] {
	return &SlotTable[T]{}
}

// Add stores item in a free row and returns its handle.
func (t *SlotTable[T]) Add(item T) (bridge.SlotHandle, error) {
	var index uint32
	if len(t.freeSlots) > 0 {
		index = t.freeSlots[len(t.freeSlots)-1]
		t.freeSlots = t.freeSlots[:len(t.freeSlots)-1]
	} else {
		if t.nextIndex == math.MaxUint32 {
			return 0, bridge.ErrTableFull
		}
		index = t.nextIndex
		t.nextIndex++
	}

	blockIdx := index / slotBlockSize
	slotIdx := index % slotBlockSize

	if int(blockIdx) >= len(t.blocks) {
		t.blocks = append(t.blocks, [slotBlockSize]T{})
		t.generations = append(t.generations, [slotBlockSize]uint32{})
	}

	gen := t.issueGeneration()
	t.blocks[blockIdx][slotIdx] = item
	t.generations[blockIdx][slotIdx] = gen
	t.count++

	return bridge.NewSlotHandle(index, gen), nil
}

// Update overwrites the row at h.
func (t *SlotTable[T]) Update(h bridge.SlotHandle, item T) error {
	if !t.Valid(h) {
		return fmt.Errorf("%w: %s", bridge.ErrInvalidHandle, h)
	}
	index := h.Index()
	t.blocks[index/slotBlockSize][index%slotBlockSize] = item
	return nil
}

// Get returns the row at h.
func (t *SlotTable[T]) Get(h bridge.SlotHandle) (T, bool) {
	var zero T
	if !t.Valid(h) {
		return zero, false
	}
	index := h.Index()
	return t.blocks[index/slotBlockSize][index%slotBlockSize], true
}

// Remove frees the row at h. The handle is invalid afterwards.
func (t *SlotTable[T]) Remove(h bridge.SlotHandle) error {
	if !t.Valid(h) {
		return fmt.Errorf("%w: %s", bridge.ErrInvalidHandle, h)
	}
	index := h.Index()
	blockIdx := index / slotBlockSize
	slotIdx := index % slotBlockSize

	var zero T
	t.blocks[blockIdx][slotIdx] = zero
	t.generations[blockIdx][slotIdx] = 0
	t.freeSlots = append(t.freeSlots, index)
	t.count--
	return nil
}

// Valid reports whether h refers to a live row of this table.
func (t *SlotTable[T]) Valid(h bridge.SlotHandle) bool {
	gen := h.Generation()
	if gen == 0 {
		return false
	}

	index := h.Index()
	if index >= t.nextIndex {
		return false
	}

	return t.generations[index/slotBlockSize][index%slotBlockSize] == gen
}

// Len returns the number of live rows.
func (t *SlotTable[T]) Len() int {
	return t.count
}

// Reset drops every row. Handles issued before the reset stay invalid even
// after their rows are reused, because generations keep counting up.
func (t *SlotTable[T]) Reset() {
	t.blocks = nil
	t.generations = nil
	t.freeSlots = nil
	t.nextIndex = 0
	t.count = 0
}

// All iterates live rows in index order.
func (t *SlotTable[T]) All() iter.Seq2[bridge.SlotHandle, T] {
	return func(yield func(bridge.SlotHandle, T) bool) {
		for i := uint32(0); i < t.nextIndex; i++ {
			blockIdx := i / slotBlockSize
			slotIdx := i % slotBlockSize

			gen := t.generations[blockIdx][slotIdx]
			if gen == 0 {
				continue
			}
			if !yield(bridge.NewSlotHandle(i, gen), t.blocks[blockIdx][slotIdx]) {
				return
			}
		}
	}
}

func (t *SlotTable[T]) issueGeneration() uint32 {
	t.nextGen++
	if t.nextGen == 0 {
		t.nextGen = 1
	}
	return t.nextGen
}
