package termhost

import (
	"fmt"

	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/window"
)

// terminalWindow is the window.Backend of a terminal: nothing can actually
// be resized or minimized, so requests are shown on the status line.
type terminalWindow struct {
	borderless bool
	size       geom.Extent2D
	minimized  int
	focused    bool
}

var _ window.Backend = (*terminalWindow)(nil)

func (w *terminalWindow) SetBorderless(on bool) {
	w.borderless = on
}

func (w *terminalWindow) SetWindowSize(size geom.Extent2D) {
	w.size = size
}

func (w *terminalWindow) Minimize() {
	w.minimized++
}

func (w *terminalWindow) Focused() bool {
	return w.focused
}

func (w *terminalWindow) status() string {
	mode := "windowed"
	if w.borderless {
		mode = "borderless"
	}
	s := fmt.Sprintf("%s %s", w.size, mode)
	if w.minimized > 0 {
		s += fmt.Sprintf(" (minimized x%d)", w.minimized)
	}
	return s
}
