package termhost

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/host"
)

func newTestHost(t *testing.T) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	h, err := New(screen, DefaultConfig(), host.DefaultConfig())
	require.NoError(t, err)
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return h, screen
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func statusLine(screen tcell.SimulationScreen) string {
	width, height := screen.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, height-1)
		b.WriteRune(r)
	}
	return b.String()
}

func TestHost(t *testing.T) {
	t0 := time.Unix(1000, 0)

	t.Run("held arrow moves the cube", func(t *testing.T) {
		h, _ := newTestHost(t)
		require.True(t, h.Step(t0, 0.1))

		h.HandleEvent(key(tcell.KeyUp, 0), t0)
		require.True(t, h.Step(t0.Add(10*time.Millisecond), 0.1))

		for _, pos := range h.Session().Store.Positions() {
			assert.InDelta(t, 0.05, pos.Z(), 1e-5)
		}

		// released once the hold window passes
		require.True(t, h.Step(t0.Add(time.Second), 0.1))
		for _, pos := range h.Session().Store.Positions() {
			assert.InDelta(t, 0.05, pos.Z(), 1e-5)
		}
	})

	t.Run("escape quits", func(t *testing.T) {
		h, _ := newTestHost(t)
		require.True(t, h.Step(t0, 0.1))

		h.HandleEvent(key(tcell.KeyEscape, 0), t0)
		assert.False(t, h.Step(t0, 0.1))
	})

	t.Run("draws cube camera and status", func(t *testing.T) {
		h, screen := newTestHost(t)
		require.True(t, h.Step(t0, 0.1))

		r, _, _, _ := screen.GetContent(40, 12)
		assert.Equal(t, cubeGlyph, r)

		r, _, _, _ = screen.GetContent(40, 18)
		assert.Equal(t, cameraGlyph, r)

		status := statusLine(screen)
		assert.Contains(t, status, "slots 1")
		assert.Contains(t, status, "1280x720 windowed")
	})

	t.Run("resolution and borderless keys reach the status line", func(t *testing.T) {
		h, screen := newTestHost(t)
		require.True(t, h.Step(t0, 0.1))

		h.HandleEvent(key(tcell.KeyRune, '3'), t0)
		require.True(t, h.Step(t0, 0.1))
		assert.Contains(t, statusLine(screen), "1920x1080 windowed")

		h.HandleEvent(key(tcell.KeyRune, 'f'), t0.Add(time.Second))
		require.True(t, h.Step(t0.Add(time.Second), 0.1))
		assert.Contains(t, statusLine(screen), "borderless")
	})

	t.Run("focus loss releases keys", func(t *testing.T) {
		h, _ := newTestHost(t)
		require.True(t, h.Step(t0, 0.1))

		h.HandleEvent(key(tcell.KeyUp, 0), t0)
		h.HandleEvent(tcell.NewEventFocus(false), t0)
		require.True(t, h.Step(t0, 0.1))

		assert.False(t, h.window.Focused())
		for _, pos := range h.Session().Store.Positions() {
			assert.Zero(t, pos.Z())
		}
	})

	t.Run("mouse drag turns the camera", func(t *testing.T) {
		h, _ := newTestHost(t)
		require.True(t, h.Step(t0, 0.1))

		h.HandleEvent(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone), t0)
		h.HandleEvent(tcell.NewEventMouse(15, 10, tcell.Button1, tcell.ModNone), t0)
		assert.Equal(t, geom.Vec2(20, 0), h.mouse)

		h.HandleEvent(tcell.NewEventMouse(15, 10, tcell.ButtonNone, tcell.ModNone), t0)
		assert.False(t, h.dragging)

		require.True(t, h.Step(t0, 0.1))
		assert.True(t, h.mouse.IsZero())
	})
}

func TestProject(t *testing.T) {
	h := &Host{cfg: DefaultConfig()}

	x, y := h.project(geom.Vec3(0, 0, 0), 80, 24)
	assert.Equal(t, 40, x)
	assert.Equal(t, 12, y)

	x, y = h.project(geom.Vec3(1, 5, 2), 80, 24)
	assert.Equal(t, 44, x)
	assert.Equal(t, 8, y)
}
