package ecs

import "github.com/plus3/scriptbridge/input"

// UpdateFrame is what every lifecycle call receives for one simulation step.
// TotalTime is the simulated seconds up to and including this step.
type UpdateFrame struct {
	Step      uint64
	DeltaTime float64
	TotalTime float64
	Input     *input.Snapshot
	Commands  *Commands
	World     *World
}

func newUpdateFrame(step uint64, dt, total float64, snapshot *input.Snapshot, world *World) *UpdateFrame {
	if snapshot == nil {
		snapshot = input.Empty
	}
	return &UpdateFrame{
		Step:      step,
		DeltaTime: dt,
		TotalTime: total,
		Input:     snapshot,
		Commands:  newCommands(),
		World:     world,
	}
}

// FrameTime is DeltaTime as float32, for vector math.
func (f *UpdateFrame) FrameTime() float32 {
	return float32(f.DeltaTime)
}
