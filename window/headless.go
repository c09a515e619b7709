package window

import "github.com/plus3/scriptbridge/geom"

// Headless is a Backend without a window. It records what was requested,
// for hosts that have no real window and for tests.
type Headless struct {
	Borderless bool
	Size       geom.Extent2D
	Minimized  int
	Focus      bool
	Calls      []string
}

func NewHeadless(size geom.Extent2D) *Headless {
	return &Headless{Size: size, Focus: true}
}

func (h *Headless) SetBorderless(on bool) {
	h.Borderless = on
	if on {
		h.Calls = append(h.Calls, "borderless")
	} else {
		h.Calls = append(h.Calls, "windowed")
	}
}

func (h *Headless) SetWindowSize(size geom.Extent2D) {
	h.Size = size
	h.Calls = append(h.Calls, "size "+size.String())
}

func (h *Headless) Minimize() {
	h.Minimized++
	h.Calls = append(h.Calls, "minimize")
}

func (h *Headless) Focused() bool {
	return h.Focus
}
