package termhost

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/scriptbridge/input"
)

var runeKeys = map[rune]input.Key{
	'w': input.KeyW,
	'a': input.KeyA,
	's': input.KeyS,
	'd': input.KeyD,
	'f': input.KeyF,
	'm': input.KeyM,
	'0': input.KeyZero,
	'1': input.KeyOne,
	'2': input.KeyTwo,
	'3': input.KeyThree,
	' ': input.KeySpace,
}

var specialKeys = map[tcell.Key]input.Key{
	tcell.KeyUp:     input.KeyUpArrow,
	tcell.KeyDown:   input.KeyDownArrow,
	tcell.KeyLeft:   input.KeyLeftArrow,
	tcell.KeyRight:  input.KeyRightArrow,
	tcell.KeyEscape: input.KeyEscape,
	tcell.KeyTab:    input.KeyTab,
}

// translate maps one terminal key event onto logical keys. Terminals report
// modifiers only alongside another key, so Shift, Ctrl and Alt count as held
// while they accompany one; an upper-case letter implies Shift.
func translate(ev *tcell.EventKey) []input.Key {
	var keys []input.Key

	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			keys = append(keys, input.KeyShift)
			r += 'a' - 'A'
		}
		if k, ok := runeKeys[r]; ok {
			keys = append(keys, k)
		}
	case tcell.KeyCtrlSpace:
		keys = append(keys, input.KeyLeftControl)
	default:
		if k, ok := specialKeys[ev.Key()]; ok {
			keys = append(keys, k)
		}
	}

	mod := ev.Modifiers()
	if mod&tcell.ModShift != 0 {
		keys = append(keys, input.KeyShift)
	}
	if mod&tcell.ModCtrl != 0 {
		keys = append(keys, input.KeyLeftControl, input.KeyRightControl)
	}
	if mod&tcell.ModAlt != 0 {
		keys = append(keys, input.KeyRightAlt)
	}
	return keys
}

// heldKeys turns press events into held state. A key counts as held until
// hold has passed since its last event; terminal auto-repeat keeps it alive.
type heldKeys struct {
	hold time.Duration
	last map[input.Key]time.Time
	now  time.Time
}

func newHeldKeys(hold time.Duration) *heldKeys {
	return &heldKeys{
		hold: hold,
		last: make(map[input.Key]time.Time),
	}
}

func (h *heldKeys) press(k input.Key, at time.Time) {
	h.last[k] = at
}

// at fixes the time IsHeld compares against.
func (h *heldKeys) at(now time.Time) input.Source {
	h.now = now
	return h
}

func (h *heldKeys) IsHeld(k input.Key) bool {
	t, ok := h.last[k]
	if !ok {
		return false
	}
	if h.now.Sub(t) >= h.hold {
		delete(h.last, k)
		return false
	}
	return true
}

func (h *heldKeys) clear() {
	clear(h.last)
}
