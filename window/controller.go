// Package window is the window and application control surface behaviors
// see. The host owns the real window and implements Backend; behaviors get a
// Controller injected as a world singleton.
package window

import (
	"log/slog"

	"github.com/plus3/scriptbridge/geom"
)

// Backend is implemented by hosts.
type Backend interface {
	SetBorderless(on bool)
	SetWindowSize(size geom.Extent2D)
	Minimize()
	Focused() bool
}

// Controller holds the requested window state and pushes changes to its
// Backend. Setters are idempotent: a value equal to the current one never
// reaches the backend.
type Controller struct {
	backend Backend
	logger  *slog.Logger

	borderless          bool
	minimizeOnFocusLoss bool
	resolution          geom.Extent2D
	pendingResolution   bool
	wasFocused          bool
	quit                bool
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithInitialResolution records the size the host window was opened with.
// It does not touch the backend.
func WithInitialResolution(size geom.Extent2D) Option {
	return func(c *Controller) {
		c.resolution = size
	}
}

func NewController(backend Backend, opts ...Option) *Controller {
	c := &Controller{
		backend:    backend,
		logger:     slog.Default(),
		wasFocused: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Borderless() bool {
	return c.borderless
}

// SetBorderless switches between borderless fullscreen and windowed mode.
// Leaving borderless re-applies the windowed resolution if it changed while
// borderless.
func (c *Controller) SetBorderless(on bool) {
	if c.borderless == on {
		return
	}
	c.borderless = on
	c.backend.SetBorderless(on)
	c.logger.Debug("window borderless", "on", on)

	if !on && c.pendingResolution {
		c.pendingResolution = false
		c.backend.SetWindowSize(c.resolution)
	}
}

func (c *Controller) MinimizeOnFocusLoss() bool {
	return c.minimizeOnFocusLoss
}

// SetMinimizeOnFocusLoss controls whether a borderless window minimizes
// when it loses focus.
func (c *Controller) SetMinimizeOnFocusLoss(on bool) {
	c.minimizeOnFocusLoss = on
}

func (c *Controller) WindowedResolution() geom.Extent2D {
	return c.resolution
}

// SetWindowedResolution sets the size used in windowed mode. While
// borderless the size is only remembered.
func (c *Controller) SetWindowedResolution(size geom.Extent2D) {
	if size.IsZero() || size == c.resolution {
		return
	}
	c.resolution = size
	if c.borderless {
		c.pendingResolution = true
		return
	}
	c.backend.SetWindowSize(size)
	c.logger.Debug("window resolution", "size", size)
}

// Quit asks the host to shut down after the current frame.
func (c *Controller) Quit() {
	if c.quit {
		return
	}
	c.quit = true
	c.logger.Info("quit requested")
}

func (c *Controller) QuitRequested() bool {
	return c.quit
}

// Update is called by the host once per frame. It minimizes a borderless
// window on the frame it loses focus.
func (c *Controller) Update() {
	focused := c.backend.Focused()
	lost := c.wasFocused && !focused
	c.wasFocused = focused

	if lost && c.borderless && c.minimizeOnFocusLoss {
		c.backend.Minimize()
		c.logger.Debug("window minimized on focus loss")
	}
}
