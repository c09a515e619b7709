package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/window"
)

// ebitenWindow drives the real window. Borderless maps onto ebiten's
// fullscreen, which is borderless on every desktop platform.
type ebitenWindow struct{}

var _ window.Backend = ebitenWindow{}

func (ebitenWindow) SetBorderless(on bool) {
	ebiten.SetFullscreen(on)
}

func (ebitenWindow) SetWindowSize(size geom.Extent2D) {
	ebiten.SetWindowSize(int(size.Width), int(size.Height))
}

func (ebitenWindow) Minimize() {
	ebiten.MinimizeWindow()
}

func (ebitenWindow) Focused() bool {
	return ebiten.IsFocused()
}
