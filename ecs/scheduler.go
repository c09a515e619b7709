package ecs

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/scriptbridge/input"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	Frames          int64
	TotalExecutions int64
	Behaviors       []BehaviorStats
}

// BehaviorStats provides execution statistics for one behavior variant,
// summed over every instance of it.
type BehaviorStats struct {
	Name           string
	InitCount      int64
	ExecutionCount int64
	FailureCount   int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type behaviorStatsInternal struct {
	name           string
	initCount      int64
	executionCount int64
	failureCount   int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// TickErrorPolicy decides what happens to a behavior whose Tick fails.
type TickErrorPolicy uint8

const (
	// DeactivateOnError marks the behavior failed; it is not ticked again.
	DeactivateOnError TickErrorPolicy = iota
	// SkipStepOnError logs the error and ticks the behavior again next step.
	SkipStepOnError
)

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithTickErrorPolicy sets the Tick failure policy. OnInit failures always
// deactivate.
func WithTickErrorPolicy(policy TickErrorPolicy) SchedulerOption {
	return func(s *Scheduler) {
		s.policy = policy
	}
}

// SnapshotSource hands the scheduler one input snapshot per frame.
type SnapshotSource interface {
	Snapshot() *input.Snapshot
}

// SnapshotFunc adapts a function to SnapshotSource.
type SnapshotFunc func() *input.Snapshot

func (f SnapshotFunc) Snapshot() *input.Snapshot { return f() }

// Scheduler drives the behavior lifecycle of a world: OnInit once, then Tick
// every step, for every live behavior in entity creation order and attachment
// order. A failing behavior is reported and skipped; the step goes on.
type Scheduler struct {
	world    *World
	policy   TickErrorPolicy
	stats    []*behaviorStatsInternal
	frames   int64
	entities []*Entity
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		world: world,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Once executes one simulation step with the given delta time and input.
func (s *Scheduler) Once(dt float64, snapshot *input.Snapshot) {
	w := s.world
	w.step++
	w.elapsed += dt
	w.stepping = true
	frame := newUpdateFrame(w.step, dt, w.elapsed, snapshot, w)

	s.entities = append(s.entities[:0], w.order...)
	for _, e := range s.entities {
		for i := 0; i < len(e.behaviors) && e.alive; i++ {
			s.stepBehavior(frame, e.behaviors[i])
		}
	}
	clear(s.entities)

	w.stepping = false
	s.frames++

	if err := frame.Commands.Flush(w); err != nil {
		w.logger.Error("deferred commands failed", "step", frame.Step, "error", err)
	}
}

func (s *Scheduler) stepBehavior(frame *UpdateFrame, slot *behaviorSlot) {
	switch slot.state {
	case BehaviorFailed, BehaviorDestroyed:
		return
	}
	if slot.bornStep == frame.Step {
		return
	}

	stats := s.statsFor(slot.kind)

	if slot.state == BehaviorCreated {
		// Initialized before OnInit runs, so a destroy from inside OnInit
		// still reaches OnDestroy.
		slot.state = BehaviorInitialized
		if slot.init != nil {
			stats.initCount++
			err := invoke(slot.init.OnInit, frame)
			if slot.state == BehaviorDestroyed {
				slot.err = err
				return
			}
			if err != nil {
				stats.failureCount++
				s.fail(slot, "OnInit", err)
				return
			}
		}
	}

	if slot.tick == nil {
		return
	}

	start := time.Now()
	err := invoke(slot.tick.Tick, frame)
	duration := time.Since(start)

	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration
	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}

	if slot.state == BehaviorDestroyed {
		return
	}
	if err == nil {
		if slot.state == BehaviorInitialized {
			slot.state = BehaviorTicking
		}
		return
	}

	stats.failureCount++
	if s.policy == SkipStepOnError {
		slot.err = err
		s.world.logger.Warn("behavior tick failed, skipping step",
			"behavior", slot.kind.name,
			"entity", slot.entity.id,
			"step", frame.Step,
			"error", err,
		)
		return
	}
	s.fail(slot, "Tick", err)
}

func (s *Scheduler) fail(slot *behaviorSlot, phase string, err error) {
	slot.err = err
	if slot.state != BehaviorDestroyed {
		slot.state = BehaviorFailed
	}
	s.world.logger.Error("behavior deactivated",
		"behavior", slot.kind.name,
		"entity", slot.entity.id,
		"phase", phase,
		"error", err,
	)
}

// invoke runs a lifecycle method, turning a panic into an error.
func invoke(fn func(*UpdateFrame) error, frame *UpdateFrame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(frame)
}

func (s *Scheduler) statsFor(kind *behaviorKind) *behaviorStatsInternal {
	for len(s.stats) <= kind.index {
		s.stats = append(s.stats, nil)
	}
	if s.stats[kind.index] == nil {
		s.stats[kind.index] = &behaviorStatsInternal{
			name:        kind.name,
			minDuration: time.Duration(1<<63 - 1),
		}
	}
	return s.stats[kind.index]
}

// Run executes steps at the given interval until the context is cancelled,
// pulling one snapshot from source per step.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, source SnapshotSource) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now

			var snapshot *input.Snapshot
			if source != nil {
				snapshot = source.Snapshot()
			}
			s.Once(dt, snapshot)
		}
	}
}

// GetStats returns statistics about behavior execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		Frames: s.frames,
	}

	var totalExecs int64
	for _, internal := range s.stats {
		if internal == nil {
			continue
		}

		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Behaviors = append(stats.Behaviors, BehaviorStats{
			Name:           internal.name,
			InitCount:      internal.initCount,
			ExecutionCount: internal.executionCount,
			FailureCount:   internal.failureCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		})
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
