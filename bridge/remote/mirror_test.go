package remote_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/bridge/native"
	"github.com/plus3/scriptbridge/bridge/remote"
	"github.com/plus3/scriptbridge/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMirror(opts ...remote.Option) (*remote.Mirror, *native.Store) {
	store := native.NewStore()
	opts = append([]remote.Option{remote.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return remote.NewMirror(store, opts...), store
}

func next(t *testing.T, events <-chan remote.Event) remote.Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return remote.Event{}
	}
}

func TestMirror(t *testing.T) {
	t.Run("forwards and broadcasts", func(t *testing.T) {
		mirror, store := newMirror()
		events, cancel := mirror.Subscribe()
		defer cancel()

		require.NoError(t, mirror.SetCameraPosition(geom.Vec3(0, 0, -3)))
		h, err := mirror.AddPositionSlot(geom.Zero)
		require.NoError(t, err)
		require.NoError(t, mirror.UpdatePositionSlot(h, geom.Vec3(0, 0, 0.05)))
		require.NoError(t, mirror.RemovePositionSlot(h))

		assert.Equal(t, geom.Vec3(0, 0, -3), store.Camera())
		assert.Equal(t, 0, store.PositionCount())

		want := []remote.EventType{remote.EventCamera, remote.EventSlotAdd, remote.EventSlotUpdate, remote.EventSlotRemove}
		for i, typ := range want {
			ev := next(t, events)
			assert.Equal(t, typ, ev.Type)
			assert.Equal(t, uint64(i+1), ev.Seq)
		}
	})

	t.Run("failed calls are not broadcast", func(t *testing.T) {
		mirror, _ := newMirror()
		events, cancel := mirror.Subscribe()
		defer cancel()

		err := mirror.UpdatePositionSlot(bridge.NewSlotHandle(3, 9), geom.Up)
		assert.ErrorIs(t, err, bridge.ErrInvalidHandle)

		require.NoError(t, mirror.SetCameraPosition(geom.Up))
		assert.Equal(t, remote.EventCamera, next(t, events).Type)
	})

	t.Run("late viewer receives current state", func(t *testing.T) {
		mirror, _ := newMirror()
		require.NoError(t, mirror.SetCameraPosition(geom.Vec3(1, 2, 3)))
		h, err := mirror.AddPositionSlot(geom.Up)
		require.NoError(t, err)

		events, cancel := mirror.Subscribe()
		defer cancel()

		camera := next(t, events)
		assert.Equal(t, remote.EventCamera, camera.Type)
		assert.Equal(t, geom.Vec3(1, 2, 3), camera.Position)

		slot := next(t, events)
		assert.Equal(t, remote.EventSlotAdd, slot.Type)
		assert.Equal(t, h, slot.Handle)
	})

	t.Run("slow viewer drops instead of blocking", func(t *testing.T) {
		mirror, _ := newMirror(remote.WithQueueSize(2))
		_, cancel := mirror.Subscribe()
		defer cancel()

		done := make(chan struct{})
		go func() {
			for range 10 {
				mirror.SetCameraPosition(geom.Up)
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("native call blocked on a slow viewer")
		}
		assert.Equal(t, uint64(8), mirror.Dropped())
	})

	t.Run("cancel and close end subscriptions", func(t *testing.T) {
		mirror, _ := newMirror()
		events, cancel := mirror.Subscribe()
		assert.Equal(t, 1, mirror.Viewers())

		cancel()
		cancel()
		_, ok := <-events
		assert.False(t, ok)
		assert.Equal(t, 0, mirror.Viewers())

		other, _ := mirror.Subscribe()
		mirror.Close()
		_, ok = <-other
		assert.False(t, ok)

		require.NoError(t, mirror.SetCameraPosition(geom.Up), "calls are still forwarded after close")
	})
}

func TestMirrorWebsocket(t *testing.T) {
	mirror, _ := newMirror()
	server := httptest.NewServer(mirror)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	c, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer c.CloseNow()

	require.Eventually(t, func() bool { return mirror.Viewers() == 1 }, time.Second, 5*time.Millisecond)

	h, err := mirror.AddPositionSlot(geom.Vec3(0, 0, 0.05))
	require.NoError(t, err)

	var ev remote.Event
	require.NoError(t, wsjson.Read(ctx, c, &ev))
	assert.Equal(t, remote.EventSlotAdd, ev.Type)
	assert.Equal(t, h, ev.Handle)
	assert.Equal(t, geom.Vec3(0, 0, 0.05), ev.Position)

	c.Close(websocket.StatusNormalClosure, "")
	require.Eventually(t, func() bool { return mirror.Viewers() == 0 }, time.Second, 5*time.Millisecond)
}
