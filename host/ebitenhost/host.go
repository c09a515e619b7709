// Package ebitenhost runs a session in an ebiten window, optionally with the
// ImGui inspector drawn on top.
package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/host"
	"github.com/plus3/scriptbridge/inspector"
	inspectorebiten "github.com/plus3/scriptbridge/inspector/ebiten"
)

type Config struct {
	Title     string
	TPS       int
	Inspector bool
	// PixelsPerUnit scales world units on the top-down view.
	PixelsPerUnit float32
}

func DefaultConfig() Config {
	return Config{
		Title:         "scriptbox",
		TPS:           60,
		PixelsPerUnit: 80,
	}
}

var (
	backgroundColor = color.RGBA{24, 24, 32, 255}
	cubeColor       = color.RGBA{179, 229, 252, 255}
	cameraColor     = color.RGBA{255, 223, 186, 255}
)

// Host implements ebiten.Game.
type Host struct {
	cfg       Config
	session   *host.Session
	inspector *inspector.Inspector
	imgui     *inspectorebiten.ImguiBackend

	cursor     [2]int
	haveCursor bool
}

// New builds the session against the real window. It must be called before
// ebiten.RunGame.
func New(cfg Config, sessionCfg host.Config) (*Host, error) {
	size := sessionCfg.Resolution
	h := &Host{cfg: cfg}

	if cfg.Inspector {
		h.imgui = inspectorebiten.NewImguiBackend(cfg.Title, int(size.Width), int(size.Height))
	} else {
		ebiten.SetWindowSize(int(size.Width), int(size.Height))
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	s, err := host.NewSession(sessionCfg, ebitenWindow{})
	if err != nil {
		return nil, err
	}
	h.session = s

	if cfg.Inspector {
		h.inspector = inspector.New(s.World, s.Scheduler, s.Store)
	}
	return h, nil
}

func (h *Host) Session() *host.Session {
	return h.session
}

// mouseDelta is the cursor movement since the last frame while the right
// button is down, with y pointing up.
func (h *Host) mouseDelta() geom.Vector2 {
	x, y := ebiten.CursorPosition()
	defer func() {
		h.cursor = [2]int{x, y}
		h.haveCursor = true
	}()

	if !h.haveCursor || !ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		return geom.Vector2{}
	}
	return geom.Vec2(float32(x-h.cursor[0]), float32(h.cursor[1]-y))
}

func (h *Host) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if h.imgui != nil {
		h.imgui.BeginFrame()
		defer h.imgui.EndFrame()
	}

	var src keyboard = ebiten.IsKeyPressed
	mouse := h.mouseDelta()
	if h.inspector != nil {
		captured := h.inspector.InputState()
		if captured.WantCaptureKeyboard {
			src = func(ebiten.Key) bool { return false }
		}
		if captured.WantCaptureMouse {
			mouse = geom.Vector2{}
		}
	}

	running := h.session.Step(dt, src, mouse)

	if h.inspector != nil {
		h.inspector.Render(float32(dt))
	}

	if !running {
		return ebiten.Termination
	}
	return nil
}

func (h *Host) project(pos geom.Vector3, width, height int) (float32, float32) {
	scale := h.cfg.PixelsPerUnit
	return float32(width)/2 + pos.X()*scale, float32(height)/2 - pos.Z()*scale
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

	side := h.cfg.PixelsPerUnit / 4
	for _, pos := range h.session.Store.Positions() {
		x, y := h.project(pos, width, height)
		vector.DrawFilledRect(screen, x-side/2, y-side/2, side, side, cubeColor, false)
	}

	x, y := h.project(h.session.Store.Camera(), width, height)
	vector.DrawFilledCircle(screen, x, y, side/3, cameraColor, true)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("camera %s\nslots %d\nTPS %.0f",
		h.session.Store.Camera(), h.session.Store.PositionCount(), ebiten.ActualTPS()))

	if h.imgui != nil {
		h.imgui.Draw(screen)
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.imgui != nil {
		h.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until the app quits.
func Run(cfg Config, sessionCfg host.Config) error {
	h, err := New(cfg, sessionCfg)
	if err != nil {
		return err
	}
	return ebiten.RunGame(h)
}
