package behaviors

import (
	"fmt"

	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/input"
	"github.com/plus3/scriptbridge/window"
)

// Resolution presets bound to the number keys.
var (
	Resolution720p  = geom.Extent(1280, 720)
	Resolution900p  = geom.Extent(1600, 900)
	Resolution1080p = geom.Extent(1920, 1080)
)

// WindowController maps keys onto the window surface:
//
//	F       toggle borderless
//	M       toggle minimize on focus loss
//	1 2 3   720p, 900p, 1080p windowed
//	0       the windowed resolution at startup
//	Escape  quit
type WindowController struct {
	Window ecs.Singleton[window.Controller]

	original geom.Extent2D
}

func (w *WindowController) OnInit(frame *ecs.UpdateFrame) error {
	ctrl := w.Window.Get()
	if ctrl == nil {
		return fmt.Errorf("window controller: %w: window", ErrMissingResource)
	}
	w.original = ctrl.WindowedResolution()
	return nil
}

func (w *WindowController) Tick(frame *ecs.UpdateFrame) error {
	ctrl := w.Window.Get()
	in := frame.Input

	if in.GetKeyDown(input.KeyF) {
		ctrl.SetBorderless(!ctrl.Borderless())
	}
	if in.GetKeyDown(input.KeyM) {
		ctrl.SetMinimizeOnFocusLoss(!ctrl.MinimizeOnFocusLoss())
	}

	switch {
	case in.GetKeyDown(input.KeyOne):
		ctrl.SetWindowedResolution(Resolution720p)
	case in.GetKeyDown(input.KeyTwo):
		ctrl.SetWindowedResolution(Resolution900p)
	case in.GetKeyDown(input.KeyThree):
		ctrl.SetWindowedResolution(Resolution1080p)
	case in.GetKeyDown(input.KeyZero):
		ctrl.SetWindowedResolution(w.original)
	}

	if in.GetKeyDown(input.KeyEscape) {
		ctrl.Quit()
	}
	return nil
}

// OriginalResolution is the resolution captured at init.
func (w *WindowController) OriginalResolution() geom.Extent2D {
	return w.original
}
