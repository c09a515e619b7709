package remote

import (
	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/geom"
)

// EventType names what changed on the native side.
type EventType string

const (
	EventCamera     EventType = "camera"
	EventSlotAdd    EventType = "slot_add"
	EventSlotUpdate EventType = "slot_update"
	EventSlotRemove EventType = "slot_remove"
)

// Event is one mirrored native call. Seq increases by one per broadcast;
// events replayed to a new viewer carry the Seq of the last broadcast.
type Event struct {
	Type     EventType         `json:"type"`
	Seq      uint64            `json:"seq"`
	Handle   bridge.SlotHandle `json:"handle,omitempty"`
	Position geom.Vector3      `json:"position"`
}
