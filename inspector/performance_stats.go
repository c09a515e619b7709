package inspector

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scriptbridge/ecs"
)

func NewPerformanceStatsPanel(historyFrames int) PerformanceStatsPanel {
	return PerformanceStatsPanel{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

func (ps *PerformanceStatsPanel) Render(world *ecs.World, scheduler *ecs.Scheduler, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.record(deltaTime)

	stats := world.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.EntityCount))
	imgui.Text(fmt.Sprintf("Behaviors: %d", stats.BehaviorCount))
	imgui.Text(fmt.Sprintf("Failed: %d", stats.StateCounts[ecs.BehaviorFailed]))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avgFrameTime := ps.average()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if scheduler != nil && imgui.TreeNodeStr("Behavior Timings") {
		schedStats := scheduler.GetStats()
		imgui.Text(fmt.Sprintf("Frames: %d, ticks: %d", schedStats.Frames, schedStats.TotalExecutions))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("BehaviorStatsTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Behavior")
			imgui.TableSetupColumn("Inits")
			imgui.TableSetupColumn("Ticks")
			imgui.TableSetupColumn("Failures")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, b := range schedStats.Behaviors {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(b.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", b.InitCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", b.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", b.FailureCount))
				imgui.TableNextColumn()
				imgui.Text(b.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(b.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (ps *PerformanceStatsPanel) record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

func (ps *PerformanceStatsPanel) average() float32 {
	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(ps.historyFrames)
}
