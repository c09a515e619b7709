// Package raylibhost runs a session in a raylib window with a 3D view from
// the pushed camera position.
package raylibhost

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/host"
	"github.com/plus3/scriptbridge/input"
	"github.com/plus3/scriptbridge/window"
)

type Config struct {
	Title string
	FPS   int32
}

func DefaultConfig() Config {
	return Config{Title: "scriptbox", FPS: 60}
}

var keymap = map[input.Key][]int32{
	input.KeyA:            {rl.KeyA},
	input.KeyD:            {rl.KeyD},
	input.KeyF:            {rl.KeyF},
	input.KeyM:            {rl.KeyM},
	input.KeyS:            {rl.KeyS},
	input.KeyW:            {rl.KeyW},
	input.KeyZero:         {rl.KeyZero, rl.KeyKp0},
	input.KeyOne:          {rl.KeyOne, rl.KeyKp1},
	input.KeyTwo:          {rl.KeyTwo, rl.KeyKp2},
	input.KeyThree:        {rl.KeyThree, rl.KeyKp3},
	input.KeySpace:        {rl.KeySpace},
	input.KeyShift:        {rl.KeyLeftShift, rl.KeyRightShift},
	input.KeyLeftControl:  {rl.KeyLeftControl},
	input.KeyRightControl: {rl.KeyRightControl},
	input.KeyRightAlt:     {rl.KeyRightAlt},
	input.KeyUpArrow:      {rl.KeyUp},
	input.KeyDownArrow:    {rl.KeyDown},
	input.KeyLeftArrow:    {rl.KeyLeft},
	input.KeyRightArrow:   {rl.KeyRight},
	input.KeyEscape:       {rl.KeyEscape},
	input.KeyTab:          {rl.KeyTab},
}

type keyboard func(int32) bool

func (kb keyboard) IsHeld(k input.Key) bool {
	for _, rk := range keymap[k] {
		if kb(rk) {
			return true
		}
	}
	return false
}

type raylibWindow struct{}

var _ window.Backend = raylibWindow{}

func (raylibWindow) SetBorderless(on bool) {
	if rl.IsWindowState(rl.FlagBorderlessWindowedMode) != on {
		rl.ToggleBorderlessWindowed()
	}
}

func (raylibWindow) SetWindowSize(size geom.Extent2D) {
	rl.SetWindowSize(int(size.Width), int(size.Height))
}

func (raylibWindow) Minimize() {
	rl.MinimizeWindow()
}

func (raylibWindow) Focused() bool {
	return rl.IsWindowFocused()
}

// toRaylib mirrors X: the world is left-handed, raylib is right-handed.
func toRaylib(v geom.Vector3) rl.Vector3 {
	return rl.NewVector3(-v.X(), v.Y(), v.Z())
}

func draw(s *host.Session) {
	eye := s.Store.Camera()
	camera := rl.Camera3D{
		Position:   toRaylib(eye),
		Target:     toRaylib(eye.Add(geom.Forward)),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	rl.BeginMode3D(camera)
	rl.DrawGrid(20, 1)
	for _, pos := range s.Store.Positions() {
		rl.DrawCube(toRaylib(pos), 1, 1, 1, rl.SkyBlue)
		rl.DrawCubeWires(toRaylib(pos), 1, 1, 1, rl.DarkBlue)
	}
	rl.EndMode3D()

	rl.DrawText(fmt.Sprintf("camera %s  slots %d", eye, s.Store.PositionCount()), 10, 10, 20, rl.DarkGray)
	rl.DrawFPS(10, 34)
	rl.EndDrawing()
}

// Run opens the window and steps the session once per frame until the app
// quits or the window is closed.
func Run(cfg Config, sessionCfg host.Config) error {
	size := sessionCfg.Resolution
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(size.Width), int32(size.Height), cfg.Title)
	rl.SetTargetFPS(cfg.FPS)
	// Escape belongs to the scene.
	rl.SetExitKey(rl.KeyNull)
	defer rl.CloseWindow()

	s, err := host.NewSession(sessionCfg, raylibWindow{})
	if err != nil {
		return err
	}

	lastTime := rl.GetTime()

	for !rl.WindowShouldClose() {
		currentTime := rl.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		var mouse geom.Vector2
		if rl.IsMouseButtonDown(rl.MouseButtonRight) {
			d := rl.GetMouseDelta()
			mouse = geom.Vec2(d.X, -d.Y)
		}

		if !s.Step(deltaTime, keyboard(rl.IsKeyDown), mouse) {
			return nil
		}
		draw(s)
	}
	return nil
}
