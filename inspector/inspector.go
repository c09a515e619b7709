// Package inspector provides Dear ImGui panels for looking into a running
// world: entities, their behaviors and transforms, scheduler timings and the
// native slot table. Hosts call Render between their ImGui BeginFrame and
// EndFrame.
package inspector

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scriptbridge/bridge/native"
	"github.com/plus3/scriptbridge/ecs"
)

// InputState tracks whether ImGui wants the mouse or keyboard this frame.
// Hosts stop feeding game input while it does.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Inspector bundles every panel.
type Inspector struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	store     *native.Store

	Browser   EntityBrowserPanel
	Behaviors BehaviorInspectorPanel
	Kinds     KindViewerPanel
	Slots     SlotViewerPanel
	Stats     PerformanceStatsPanel

	input InputState
}

// New creates an inspector. store may be nil when the host has no in-process
// native store.
func New(world *ecs.World, scheduler *ecs.Scheduler, store *native.Store) *Inspector {
	return &Inspector{
		world:     world,
		scheduler: scheduler,
		store:     store,
		Browser:   NewEntityBrowserPanel(100),
		Behaviors: NewBehaviorInspectorPanel(),
		Kinds:     NewKindViewerPanel(),
		Slots:     NewSlotViewerPanel(),
		Stats:     NewPerformanceStatsPanel(120),
	}
}

// Render draws every panel and refreshes the input capture state.
func (in *Inspector) Render(deltaTime float32) {
	io := imgui.CurrentIO()
	in.input.WantCaptureMouse = io.WantCaptureMouse()
	in.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	in.Browser.Render(in.world)
	in.Behaviors.Render(in.world, in.Browser.Selected())
	if kind := in.Kinds.Render(in.world); kind != "" {
		in.Browser.filterKind = kind
	}
	if in.store != nil {
		in.Slots.Render(in.store)
	}
	in.Stats.Render(in.world, in.scheduler, deltaTime)
}

// InputState returns the capture state from the last Render.
func (in *Inspector) InputState() InputState {
	return in.input
}
