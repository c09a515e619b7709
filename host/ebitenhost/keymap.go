package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/scriptbridge/input"
)

// keymap binds each logical key to the physical keys that hold it.
var keymap = map[input.Key][]ebiten.Key{
	input.KeyA:            {ebiten.KeyA},
	input.KeyD:            {ebiten.KeyD},
	input.KeyF:            {ebiten.KeyF},
	input.KeyM:            {ebiten.KeyM},
	input.KeyS:            {ebiten.KeyS},
	input.KeyW:            {ebiten.KeyW},
	input.KeyZero:         {ebiten.KeyDigit0, ebiten.KeyNumpad0},
	input.KeyOne:          {ebiten.KeyDigit1, ebiten.KeyNumpad1},
	input.KeyTwo:          {ebiten.KeyDigit2, ebiten.KeyNumpad2},
	input.KeyThree:        {ebiten.KeyDigit3, ebiten.KeyNumpad3},
	input.KeySpace:        {ebiten.KeySpace},
	input.KeyShift:        {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
	input.KeyLeftControl:  {ebiten.KeyControlLeft},
	input.KeyRightControl: {ebiten.KeyControlRight},
	input.KeyRightAlt:     {ebiten.KeyAltRight},
	input.KeyUpArrow:      {ebiten.KeyArrowUp},
	input.KeyDownArrow:    {ebiten.KeyArrowDown},
	input.KeyLeftArrow:    {ebiten.KeyArrowLeft},
	input.KeyRightArrow:   {ebiten.KeyArrowRight},
	input.KeyEscape:       {ebiten.KeyEscape},
	input.KeyTab:          {ebiten.KeyTab},
}

// keyboard reads held state from a pressed-key predicate.
type keyboard func(ebiten.Key) bool

func (kb keyboard) IsHeld(k input.Key) bool {
	for _, ek := range keymap[k] {
		if kb(ek) {
			return true
		}
	}
	return false
}
