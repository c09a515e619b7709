package ecs_test

import (
	"slices"
	"testing"

	"github.com/plus3/scriptbridge/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorld(t *testing.T) {
	t.Run("entities get unique identity", func(t *testing.T) {
		world := newTestWorld()
		a := world.NewEntity("a")
		b := world.NewEntity("b")

		assert.NotEqual(t, a.Id(), b.Id())
		assert.NotEqual(t, a.Guid(), b.Guid())
		assert.Same(t, a, world.FindByGuid(a.Guid()))
		assert.Same(t, b, world.FindByName("b"))
		assert.Equal(t, 2, world.Len())
	})

	t.Run("entities iterate in creation order", func(t *testing.T) {
		world := newTestWorld()
		for _, name := range []string{"x", "y", "z"} {
			world.NewEntity(name)
		}
		world.Destroy(world.FindByName("y").Id())

		var names []string
		for e := range world.Entities() {
			names = append(names, e.Name())
		}
		assert.Equal(t, []string{"x", "z"}, names)
	})

	t.Run("unregistered behavior is rejected", func(t *testing.T) {
		world := newTestWorld()
		e := world.NewEntity("e")

		_, err := ecs.CreateBehavior[Unregistered](e)
		assert.ErrorIs(t, err, ecs.ErrUnregisteredBehavior)

		_, err = e.CreateBehaviorByName("Unregistered")
		assert.ErrorIs(t, err, ecs.ErrUnregisteredBehavior)
		assert.Empty(t, e.Behaviors())
	})

	t.Run("behavior by name", func(t *testing.T) {
		world := newTestWorld()
		e := world.NewEntity("e")

		instance, err := e.CreateBehaviorByName("Counter")
		require.NoError(t, err)
		assert.IsType(t, &Counter{}, instance)

		instance, err = e.CreateBehaviorByName("configured")
		require.NoError(t, err)
		assert.IsType(t, &Configured{}, instance)
	})

	t.Run("destroyed entity rejects behaviors", func(t *testing.T) {
		world := newTestWorld()
		e := world.NewEntity("e")
		e.Destroy()

		_, err := ecs.CreateBehavior[Counter](e)
		assert.ErrorIs(t, err, ecs.ErrEntityDestroyed)
	})

	t.Run("destroy hooks see the id", func(t *testing.T) {
		world := newTestWorld()
		var seen []ecs.EntityId
		world.OnDestroy(func(id ecs.EntityId) { seen = append(seen, id) })

		e := world.NewEntity("e")
		world.Destroy(e.Id())
		world.Destroy(e.Id())

		assert.Equal(t, []ecs.EntityId{e.Id()}, seen)
	})

	t.Run("destroying a parent destroys its children", func(t *testing.T) {
		world := newTestWorld()
		var seen []string
		world.OnDestroy(func(id ecs.EntityId) { seen = append(seen, world.Entity(id).Name()) })

		root := world.NewEntity("root")
		child := world.NewEntity("child")
		grandchild := world.NewEntity("grandchild")
		sibling := world.NewEntity("sibling")
		require.NoError(t, child.SetParent(root))
		require.NoError(t, grandchild.SetParent(child))
		require.NoError(t, sibling.SetParent(root))
		mustCreate[Counter](t, grandchild)
		ecs.NewScheduler(world).Once(1.0, nil)
		infos := grandchild.Behaviors()

		assert.True(t, root.Destroy())

		assert.Equal(t, []string{"grandchild", "child", "sibling", "root"}, seen)
		assert.Equal(t, ecs.BehaviorTicking, infos[0].State)
		assert.Equal(t, ecs.BehaviorDestroyed, grandchild.Behaviors()[0].State)
		assert.Equal(t, 0, world.Len())
		assert.False(t, grandchild.Alive())
	})

	t.Run("destroying a child detaches it", func(t *testing.T) {
		world := newTestWorld()
		root := world.NewEntity("root")
		a := world.NewEntity("a")
		b := world.NewEntity("b")
		require.NoError(t, a.SetParent(root))
		require.NoError(t, b.SetParent(root))

		a.Destroy()

		assert.True(t, root.Alive())
		assert.Equal(t, 1, root.ChildCount())
		assert.Same(t, b, root.Child(0))
	})

	t.Run("collect stats", func(t *testing.T) {
		world := newTestWorld()
		ecs.NewSingleton[Settings](world)
		scheduler := ecs.NewScheduler(world)

		e := world.NewEntity("e")
		mustCreate[Counter](t, e)
		mustCreate[FailingInit](t, e)
		mustCreate[Counter](t, world.NewEntity("f"))
		scheduler.Once(1.0, nil)

		stats := world.CollectStats()
		assert.Equal(t, 2, stats.EntityCount)
		assert.Equal(t, 3, stats.BehaviorCount)
		assert.Equal(t, 1, stats.SingletonCount)
		assert.Equal(t, 2, stats.BehaviorsByKind["Counter"])
		assert.Equal(t, 1, stats.StateCounts[ecs.BehaviorFailed])
		assert.True(t, slices.ContainsFunc(stats.SingletonTypes, func(s string) bool {
			return s == "ecs_test.Settings"
		}))
	})
}

func TestRegistry(t *testing.T) {
	registry := newTestRegistry()

	assert.True(t, registry.Has("Counter"))
	assert.True(t, registry.Has("configured"))
	assert.False(t, registry.Has("Configured"))
	assert.True(t, slices.IsSorted(registry.Names()))

	assert.Panics(t, func() { ecs.RegisterBehavior[Counter](registry) })
	assert.Panics(t, func() { ecs.RegisterBehavior[int](registry) })
}

func TestSingletonInjection(t *testing.T) {
	world := newTestWorld()
	ecs.NewSingleton(world, Settings{Speed: 4})
	scheduler := ecs.NewScheduler(world)

	e := world.NewEntity("e")
	configured := mustCreate[Configured](t, e)
	assert.True(t, configured.Settings.Exists())

	scheduler.Once(1.0, nil)
	assert.Equal(t, float32(4), configured.Seen)

	ecs.GetSingleton[Settings](world).Speed = 9
	scheduler.Once(1.0, nil)
	assert.Equal(t, float32(9), configured.Seen)
}
