package native_test

import (
	"testing"

	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/bridge/native"
	"github.com/plus3/scriptbridge/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("camera push is idempotent", func(t *testing.T) {
		store := native.NewStore()
		pos := geom.Vec3(0, 0, -3)

		require.NoError(t, store.SetCameraPosition(pos))
		require.NoError(t, store.SetCameraPosition(pos))

		assert.Equal(t, pos, store.Camera())
		assert.Equal(t, uint64(2), store.CameraPushes())
	})

	t.Run("position rows", func(t *testing.T) {
		store := native.NewStore()

		a, err := store.AddPositionSlot(geom.Vec3(1, 0, 0))
		require.NoError(t, err)
		b, err := store.AddPositionSlot(geom.Vec3(0, 1, 0))
		require.NoError(t, err)

		require.NoError(t, store.UpdatePositionSlot(a, geom.Vec3(0, 0, 0.05)))

		got, ok := store.Position(a)
		require.True(t, ok)
		assert.Equal(t, geom.Vec3(0, 0, 0.05), got)

		got, ok = store.Position(b)
		require.True(t, ok)
		assert.Equal(t, geom.Vec3(0, 1, 0), got)
		assert.Equal(t, 2, store.PositionCount())

		store.Reset()
		assert.Equal(t, 0, store.PositionCount())
		assert.ErrorIs(t, store.UpdatePositionSlot(b, geom.Zero), bridge.ErrInvalidHandle)
	})
}
