// Package remote mirrors native-side pushes to websocket viewers so a scene
// can be watched from another process or machine.
package remote

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/geom"
)

const (
	defaultQueueSize    = 256
	defaultWriteTimeout = 5 * time.Second
)

// Mirror decorates a bridge.Native. Every successful call is forwarded to the
// wrapped implementation first and then broadcast as an Event.
//
// Native methods are called from the frame thread and never block on
// viewers: each viewer has a bounded queue and events that do not fit are
// dropped for that viewer.
type Mirror struct {
	next         bridge.Native
	logger       *slog.Logger
	queueSize    int
	writeTimeout time.Duration
	origins      []string

	mu      sync.Mutex
	viewers map[*viewer]struct{}
	seq     uint64
	camera  *geom.Vector3
	slots   map[bridge.SlotHandle]geom.Vector3
	closed  bool

	dropped atomic.Uint64
}

type viewer struct {
	events chan Event
}

var _ bridge.Native = (*Mirror)(nil)
var _ http.Handler = (*Mirror)(nil)

// Option configures a Mirror.
type Option func(*Mirror)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Mirror) {
		m.logger = logger
	}
}

// WithQueueSize sets how many events a viewer may lag behind before events
// are dropped for it.
func WithQueueSize(n int) Option {
	return func(m *Mirror) {
		if n > 0 {
			m.queueSize = n
		}
	}
}

// WithOriginPatterns sets the origins allowed to open a viewer connection.
func WithOriginPatterns(patterns ...string) Option {
	return func(m *Mirror) {
		m.origins = patterns
	}
}

// NewMirror wraps next.
func NewMirror(next bridge.Native, opts ...Option) *Mirror {
	m := &Mirror{
		next:         next,
		logger:       slog.Default(),
		queueSize:    defaultQueueSize,
		writeTimeout: defaultWriteTimeout,
		viewers:      make(map[*viewer]struct{}),
		slots:        make(map[bridge.SlotHandle]geom.Vector3),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Mirror) SetCameraPosition(pos geom.Vector3) error {
	if err := m.next.SetCameraPosition(pos); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.camera = &pos
	m.broadcastLocked(Event{Type: EventCamera, Position: pos})
	return nil
}

func (m *Mirror) AddPositionSlot(pos geom.Vector3) (bridge.SlotHandle, error) {
	h, err := m.next.AddPositionSlot(pos)
	if err != nil {
		return h, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[h] = pos
	m.broadcastLocked(Event{Type: EventSlotAdd, Handle: h, Position: pos})
	return h, nil
}

func (m *Mirror) UpdatePositionSlot(h bridge.SlotHandle, pos geom.Vector3) error {
	if err := m.next.UpdatePositionSlot(h, pos); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[h] = pos
	m.broadcastLocked(Event{Type: EventSlotUpdate, Handle: h, Position: pos})
	return nil
}

func (m *Mirror) RemovePositionSlot(h bridge.SlotHandle) error {
	if err := m.next.RemovePositionSlot(h); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, h)
	m.broadcastLocked(Event{Type: EventSlotRemove, Handle: h})
	return nil
}

// Subscribe registers a viewer. The returned channel first carries the
// current state (camera, then every live slot) and then live events. It is
// closed by cancel or by Close.
func (m *Mirror) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	backlog := len(m.slots)
	if m.camera != nil {
		backlog++
	}
	v := &viewer{events: make(chan Event, m.queueSize+backlog)}
	if m.closed {
		close(v.events)
		return v.events, func() {}
	}

	if m.camera != nil {
		v.events <- Event{Type: EventCamera, Seq: m.seq, Position: *m.camera}
	}
	for h, pos := range m.slots {
		v.events <- Event{Type: EventSlotAdd, Seq: m.seq, Handle: h, Position: pos}
	}
	m.viewers[v] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, ok := m.viewers[v]; ok {
				delete(m.viewers, v)
				close(v.events)
			}
		})
	}
	return v.events, cancel
}

func (m *Mirror) broadcastLocked(ev Event) {
	m.seq++
	ev.Seq = m.seq
	for v := range m.viewers {
		select {
		case v.events <- ev:
		default:
			m.dropped.Add(1)
		}
	}
}

// Viewers returns the number of connected viewers.
func (m *Mirror) Viewers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.viewers)
}

// Dropped counts events discarded because a viewer queue was full.
func (m *Mirror) Dropped() uint64 {
	return m.dropped.Load()
}

// Close disconnects every viewer. Calls to the Native methods keep being
// forwarded afterwards.
func (m *Mirror) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for v := range m.viewers {
		delete(m.viewers, v)
		close(v.events)
	}
}

// ServeHTTP upgrades the request to a websocket and streams events to it as
// JSON text messages until either side goes away.
func (m *Mirror) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: m.origins,
	})
	if err != nil {
		m.logger.Warn("viewer upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer c.CloseNow()

	events, cancel := m.Subscribe()
	defer cancel()

	m.logger.Info("viewer connected", "remote", r.RemoteAddr)
	defer m.logger.Info("viewer disconnected", "remote", r.RemoteAddr)

	// Viewers never send; CloseRead handles their close frames.
	ctx := c.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				c.Close(websocket.StatusGoingAway, "mirror closed")
				return
			}
			if err := m.write(ctx, c, ev); err != nil {
				m.logger.Debug("viewer write failed", "remote", r.RemoteAddr, "error", err)
				return
			}
		}
	}
}

func (m *Mirror) write(ctx context.Context, c *websocket.Conn, ev Event) error {
	ctx, cancel := context.WithTimeout(ctx, m.writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, c, ev)
}
