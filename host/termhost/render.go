package termhost

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/scriptbridge/geom"
)

const (
	cubeGlyph   = '■'
	cameraGlyph = '@'
)

var (
	styleCube   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleCamera = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

// project maps a world position onto a cell. Terminal cells are about twice
// as tall as wide, so rows get half the scale.
func (h *Host) project(pos geom.Vector3, width, height int) (int, int) {
	scale := h.cfg.CellsPerUnit
	cx := float32(width) / 2
	cy := float32(height-1) / 2
	x := cx + pos.X()*scale
	y := cy - pos.Z()*scale/2
	return int(x + 0.5), int(y + 0.5)
}

func (h *Host) draw() {
	h.screen.Clear()
	width, height := h.screen.Size()
	if height < 2 {
		h.screen.Show()
		return
	}

	for _, pos := range h.session.Store.Positions() {
		x, y := h.project(pos, width, height)
		if x >= 0 && x < width && y >= 0 && y < height-1 {
			h.screen.SetContent(x, y, cubeGlyph, nil, styleCube)
		}
	}

	x, y := h.project(h.session.Store.Camera(), width, height)
	if x >= 0 && x < width && y >= 0 && y < height-1 {
		h.screen.SetContent(x, y, cameraGlyph, nil, styleCamera)
	}

	h.drawText(0, height-1, h.status(), styleStatus)
	h.screen.Show()
}

func (h *Host) status() string {
	return fmt.Sprintf(" camera %s | slots %d | %s | failures %d ",
		h.session.Store.Camera(),
		h.session.Store.PositionCount(),
		h.window.status(),
		h.failures)
}

func (h *Host) drawText(x, y int, text string, style tcell.Style) {
	width, _ := h.screen.Size()
	for _, r := range text {
		if x >= width {
			return
		}
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
