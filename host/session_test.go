package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/geom"
	"github.com/plus3/scriptbridge/input"
	"github.com/plus3/scriptbridge/window"
)

func held(keys ...input.Key) input.Source {
	return input.SourceFunc(func(k input.Key) bool {
		for _, h := range keys {
			if h == k {
				return true
			}
		}
		return false
	})
}

func TestSession(t *testing.T) {
	t.Run("default scene", func(t *testing.T) {
		s, err := NewSession(DefaultConfig(), window.NewHeadless(geom.Extent(1280, 720)))
		require.NoError(t, err)

		assert.Equal(t, 3, s.World.Len())
		assert.True(t, s.Step(0.1, nil, geom.Vector2{}))

		assert.Equal(t, 1, s.Store.PositionCount())
		assert.True(t, s.Store.Camera().ApproxEqual(geom.Vec3(0, 0, -3), 1e-5))
		assert.Zero(t, s.Failures())
	})

	t.Run("escape stops the session", func(t *testing.T) {
		s, err := NewSession(DefaultConfig(), window.NewHeadless(geom.Extent(1280, 720)))
		require.NoError(t, err)

		assert.True(t, s.Step(0.1, nil, geom.Vector2{}))
		assert.False(t, s.Step(0.1, held(input.KeyEscape), geom.Vector2{}))
	})

	t.Run("unknown behavior", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Behaviors = []string{"Cube", "Teapot"}

		_, err := NewSession(cfg, window.NewHeadless(geom.Extent(1280, 720)))
		assert.Error(t, err)
	})

	t.Run("wrap decorates the store", func(t *testing.T) {
		var wrapped bridge.Native
		cfg := DefaultConfig()
		cfg.Wrap = func(n bridge.Native) bridge.Native {
			wrapped = n
			return n
		}

		s, err := NewSession(cfg, window.NewHeadless(geom.Extent(1280, 720)))
		require.NoError(t, err)
		assert.Same(t, s.Store, wrapped)
	})

	t.Run("arrow keys move the cube", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Behaviors = []string{"Cube"}
		s, err := NewSession(cfg, window.NewHeadless(geom.Extent(1280, 720)))
		require.NoError(t, err)

		s.Step(0.1, nil, geom.Vector2{})
		s.Step(0.1, held(input.KeyUpArrow), geom.Vector2{})

		for _, pos := range s.Store.Positions() {
			assert.InDelta(t, 0.05, pos.Z(), 1e-5)
		}
	})
}
