package ecs_test

import (
	"errors"

	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
)

// Common test behavior types

type Counter struct {
	ecs.BaseBehavior
	Inits int
	Ticks int
}

func (c *Counter) OnInit(frame *ecs.UpdateFrame) error {
	c.Inits++
	return nil
}

func (c *Counter) Tick(frame *ecs.UpdateFrame) error {
	c.Ticks++
	return nil
}

// Recorder appends "<label>:<phase>" to a shared trace.
type Recorder struct {
	Label string
	Trace *[]string
}

func (r *Recorder) OnInit(frame *ecs.UpdateFrame) error {
	*r.Trace = append(*r.Trace, r.Label+":init")
	return nil
}

func (r *Recorder) Tick(frame *ecs.UpdateFrame) error {
	*r.Trace = append(*r.Trace, r.Label+":tick")
	return nil
}

var errBoom = errors.New("boom")

type FailingInit struct {
	Ticks int
}

func (f *FailingInit) OnInit(frame *ecs.UpdateFrame) error {
	return errBoom
}

func (f *FailingInit) Tick(frame *ecs.UpdateFrame) error {
	f.Ticks++
	return nil
}

type PanickingInit struct {
	Ticks int
}

func (p *PanickingInit) OnInit(frame *ecs.UpdateFrame) error {
	var m map[string]int
	m["nil map"] = 1
	return nil
}

func (p *PanickingInit) Tick(frame *ecs.UpdateFrame) error {
	p.Ticks++
	return nil
}

// FlakyTick fails on the tick numbered FailOn (1-based).
type FlakyTick struct {
	FailOn int
	Ticks  int
}

func (f *FlakyTick) Tick(frame *ecs.UpdateFrame) error {
	f.Ticks++
	if f.Ticks == f.FailOn {
		return errBoom
	}
	return nil
}

type TickOnly struct {
	Ticks int
}

func (t *TickOnly) Tick(frame *ecs.UpdateFrame) error {
	t.Ticks++
	return nil
}

type Inert struct{}

type Unregistered struct{}

type Releasing struct {
	ecs.BaseBehavior
	Released *int
}

func (r *Releasing) OnInit(frame *ecs.UpdateFrame) error { return nil }

func (r *Releasing) OnDestroy() {
	*r.Released++
}

type SelfDestruct struct {
	ecs.BaseBehavior
	Ticks int
}

func (s *SelfDestruct) Tick(frame *ecs.UpdateFrame) error {
	s.Ticks++
	frame.Commands.Destroy(s.EntityId())
	return nil
}

// Vanishing destroys its own entity immediately, from OnInit or from Tick.
type Vanishing struct {
	ecs.BaseBehavior
	InInit    bool
	TickErr   error
	Ticks     int
	Destroyed int
}

func (v *Vanishing) OnInit(frame *ecs.UpdateFrame) error {
	if v.InInit {
		v.Entity().Destroy()
	}
	return nil
}

func (v *Vanishing) Tick(frame *ecs.UpdateFrame) error {
	v.Ticks++
	v.Entity().Destroy()
	return v.TickErr
}

func (v *Vanishing) OnDestroy() {
	v.Destroyed++
}

type Walker struct {
	ecs.BaseBehavior
}

func (w *Walker) Tick(frame *ecs.UpdateFrame) error {
	w.Entity().Translate(geom.Forward.Mul(frame.FrameTime()), geom.Object)
	return nil
}

type Settings struct {
	Speed float32
}

type Configured struct {
	Settings ecs.Singleton[Settings]
	Seen     float32
}

func (c *Configured) Tick(frame *ecs.UpdateFrame) error {
	c.Seen = c.Settings.Get().Speed
	return nil
}

type Observer struct {
	Check func(frame *ecs.UpdateFrame)
}

func (o *Observer) Tick(frame *ecs.UpdateFrame) error {
	if o.Check != nil {
		o.Check(frame)
	}
	return nil
}

// Spawner attaches a Counter to its own entity on its first tick.
type Spawner struct {
	ecs.BaseBehavior
	Spawned *Counter
}

func (s *Spawner) Tick(frame *ecs.UpdateFrame) error {
	if s.Spawned != nil {
		return nil
	}
	counter, err := ecs.CreateBehavior[Counter](s.Entity())
	if err != nil {
		return err
	}
	s.Spawned = counter
	return nil
}

func newTestRegistry() *ecs.BehaviorRegistry {
	registry := ecs.NewBehaviorRegistry()
	ecs.RegisterBehavior[Counter](registry)
	ecs.RegisterBehavior[Recorder](registry)
	ecs.RegisterBehavior[FailingInit](registry)
	ecs.RegisterBehavior[PanickingInit](registry)
	ecs.RegisterBehavior[FlakyTick](registry)
	ecs.RegisterBehavior[TickOnly](registry)
	ecs.RegisterBehavior[Inert](registry)
	ecs.RegisterBehavior[Releasing](registry)
	ecs.RegisterBehavior[SelfDestruct](registry)
	ecs.RegisterBehavior[Vanishing](registry)
	ecs.RegisterBehavior[Walker](registry)
	ecs.RegisterBehavior[Observer](registry)
	ecs.RegisterBehavior[Spawner](registry)
	ecs.RegisterBehaviorNamed[Configured](registry, "configured")
	return registry
}
