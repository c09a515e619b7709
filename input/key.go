// Package input defines the per-frame input snapshot behaviors read. The
// engine side owns a Tracker and produces one Snapshot per frame; behaviors
// only ever see the Snapshot.
package input

// Key is a logical key identifier, independent of any host's key codes.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyA
	KeyD
	KeyF
	KeyM
	KeyS
	KeyW
	KeyZero
	KeyOne
	KeyTwo
	KeyThree
	KeySpace
	KeyShift
	KeyLeftControl
	KeyRightControl
	KeyRightAlt
	KeyUpArrow
	KeyDownArrow
	KeyLeftArrow
	KeyRightArrow
	KeyEscape
	KeyTab

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:      "Unknown",
	KeyA:            "A",
	KeyD:            "D",
	KeyF:            "F",
	KeyM:            "M",
	KeyS:            "S",
	KeyW:            "W",
	KeyZero:         "0",
	KeyOne:          "1",
	KeyTwo:          "2",
	KeyThree:        "3",
	KeySpace:        "Space",
	KeyShift:        "Shift",
	KeyLeftControl:  "LeftControl",
	KeyRightControl: "RightControl",
	KeyRightAlt:     "RightAlt",
	KeyUpArrow:      "UpArrow",
	KeyDownArrow:    "DownArrow",
	KeyLeftArrow:    "LeftArrow",
	KeyRightArrow:   "RightArrow",
	KeyEscape:       "Escape",
	KeyTab:          "Tab",
}

func (k Key) String() string {
	if k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// Keys returns every defined key except KeyUnknown, in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyUnknown + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}
