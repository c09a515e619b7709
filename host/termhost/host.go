// Package termhost runs a session in a terminal. The scene is drawn top
// down: world X across, world Z up the screen.
package termhost

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/host"
)

type Config struct {
	TPS int
	// HoldWindow is how long a key stays held after its last event.
	HoldWindow time.Duration
	// CellsPerUnit scales world units to terminal columns.
	CellsPerUnit float32
	Sound        bool
}

func DefaultConfig() Config {
	return Config{
		TPS:          60,
		HoldWindow:   150 * time.Millisecond,
		CellsPerUnit: 4,
	}
}

// Host owns the screen and steps the session once per tick.
type Host struct {
	cfg     Config
	screen  tcell.Screen
	window  *terminalWindow
	keys    *heldKeys
	session *host.Session
	logger  *slog.Logger
	cue     *cue

	mouse     geom.Vector2
	lastMouse [2]int
	dragging  bool
	failures  int64
	lastStep  time.Time
}

// New initializes screen and builds a session that reports to it.
func New(screen tcell.Screen, cfg Config, sessionCfg host.Config) (*Host, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	w := &terminalWindow{size: sessionCfg.Resolution, focused: true}
	s, err := host.NewSession(sessionCfg, w)
	if err != nil {
		screen.Fini()
		return nil, err
	}

	h := &Host{
		cfg:     cfg,
		screen:  screen,
		window:  w,
		keys:    newHeldKeys(cfg.HoldWindow),
		session: s,
		logger:  s.Logger(),
	}

	if cfg.Sound {
		c, err := newCue()
		if err != nil {
			h.logger.Warn("sound disabled", "error", err)
		}
		h.cue = c
	}
	return h, nil
}

func (h *Host) Session() *host.Session {
	return h.session
}

// HandleEvent feeds one terminal event into the held-key and mouse state.
func (h *Host) HandleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		for _, k := range translate(ev) {
			h.keys.press(k, now)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		if ev.Buttons()&tcell.Button1 != 0 {
			if h.dragging {
				dx := float32(x - h.lastMouse[0])
				dy := float32(h.lastMouse[1] - y)
				h.mouse = h.mouse.Add(geom.Vec2(dx*4, dy*4))
			}
			h.dragging = true
		} else {
			h.dragging = false
		}
		h.lastMouse = [2]int{x, y}
	case *tcell.EventFocus:
		h.window.focused = ev.Focused
		if !ev.Focused {
			h.keys.clear()
			h.session.ReleaseInput()
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
}

// Step advances the session by dt and redraws. It returns false once the
// app asked to quit.
func (h *Host) Step(now time.Time, dt float64) bool {
	mouse := h.mouse
	h.mouse = geom.Vector2{}

	running := h.session.Step(dt, h.keys.at(now), mouse)

	if f := h.session.Failures(); f > h.failures {
		h.failures = f
		h.cue.failure()
	}

	h.draw()
	return running
}

// Run polls events and steps at the configured rate until the session quits
// or ctx is done. The screen is finalized on return.
func (h *Host) Run(ctx context.Context) error {
	defer h.screen.Fini()
	defer h.cue.close()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go h.screen.ChannelEvents(events, quit)

	tps := h.cfg.TPS
	if tps <= 0 {
		tps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	h.lastStep = time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			h.HandleEvent(ev, time.Now())
		case now := <-ticker.C:
			dt := now.Sub(h.lastStep).Seconds()
			h.lastStep = now
			if !h.Step(now, dt) {
				h.logger.Info("quit requested")
				return nil
			}
		}
	}
}
