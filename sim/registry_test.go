package sim_test

import (
	"testing"

	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(registry *sim.LayerRegistry, layer sim.LayerId) []string {
	var names []string
	for e := range registry.Entries(layer) {
		names = append(names, e.Name)
	}
	return names
}

func TestLayersPartitionCollisions(t *testing.T) {
	registry := sim.NewLayerRegistry()
	a := ball(registry, "a", vec.New(0, 0), 10, 1)
	b := ball(registry, "b", vec.New(5, 0), 10, 2)
	c := ball(registry, "c", vec.New(100, 0), 10, 2, 3)

	registry.Step()
	require.NoError(t, a.Update(0))
	assert.Equal(t, vec.New(0, 0), a.Position, "different layers never collide")

	c.Position = vec.New(5, 5)
	require.NoError(t, c.Update(0))
	assert.NotEqual(t, vec.New(5, 5), c.Position, "shared layer collides")
	assert.NotEqual(t, vec.New(5, 0), b.Position)

	assert.Equal(t, []sim.LayerId{1, 2, 3}, registry.Layers())
}

func TestDuplicateLayersCollapse(t *testing.T) {
	registry := sim.NewLayerRegistry()
	e := ball(registry, "e", vec.Zero(), 1, 4, 4, 4)

	assert.Equal(t, []sim.LayerId{4}, e.Collision().Layers())
	assert.Equal(t, 1, registry.Len(4))
}

func TestDefaultLayer(t *testing.T) {
	registry := sim.NewLayerRegistry()
	e := ball(registry, "e", vec.Zero(), 1)

	assert.Equal(t, []sim.LayerId{sim.DefaultLayer}, e.Collision().Layers())
	assert.Equal(t, 1, registry.Len(sim.DefaultLayer))
}

func TestRemovalSwapsLastEntry(t *testing.T) {
	registry := sim.NewLayerRegistry()
	a := ball(registry, "a", vec.New(0, 0), 1)
	b := ball(registry, "b", vec.New(10, 0), 1)
	c := ball(registry, "c", vec.New(20, 0), 1)
	require.Equal(t, []string{"a", "b", "c"}, entries(registry, sim.DefaultLayer))

	a.OnRemove()
	assert.Equal(t, []string{"c", "b"}, entries(registry, sim.DefaultLayer))

	c.OnRemove()
	assert.Equal(t, []string{"b"}, entries(registry, sim.DefaultLayer))

	b.OnRemove()
	assert.Zero(t, registry.Len(sim.DefaultLayer))
}

func TestReaddedModuleRegistersAgain(t *testing.T) {
	registry := sim.NewLayerRegistry()
	e := ball(registry, "e", vec.Zero(), 1, 7)
	collision := e.Collision()

	require.True(t, e.RemoveModule(collision))
	assert.Zero(t, registry.Len(7))

	require.NoError(t, e.AddModule(collision))
	assert.True(t, collision.Registered())
	assert.Equal(t, 1, registry.Len(7))
}

func TestPairNotifiedOncePerTick(t *testing.T) {
	registry := sim.NewLayerRegistry()
	sink := &recordingSink{}
	registry.SetSink(sink)

	a := sim.NewEntity("a", vec.New(0, 0))
	b := sim.NewEntity("b", vec.New(5, 0))
	counts := map[string]int{}
	for _, e := range []*sim.Entity{a, b} {
		name := e.Name
		require.NoError(t, e.AddModule(
			sim.NewCollisionModule(e, registry, sim.CollisionOptions{
				Shapes:      []sim.Shape{sim.NewRect(e, 10, 10)},
				Layers:      []sim.LayerId{1, 2},
				OnCollision: func(*sim.Entity) { counts[name]++ },
			}),
			sim.NewMovementModule(e, sim.MovementOptions{Static: true}),
		))
	}

	for tick := 1; tick <= 2; tick++ {
		registry.Step()
		require.NoError(t, a.Update(0))
		require.NoError(t, b.Update(0))
		assert.Equal(t, map[string]int{"a": tick, "b": tick}, counts)
	}

	require.Len(t, sink.events, 2)
	assert.Equal(t, uint64(1), sink.events[0].Tick)
	assert.Equal(t, uint64(2), sink.events[1].Tick)
	assert.Same(t, a, sink.events[0].Entity)
	assert.Same(t, b, sink.events[0].Other)
	assert.Equal(t, sim.LayerId(1), sink.events[0].Layer)
	assert.Equal(t, uint64(2), registry.Collisions())
}

func TestRemovalFromCallback(t *testing.T) {
	registry := sim.NewLayerRegistry()
	a := ball(registry, "a", vec.New(0, 0), 10)
	b := ball(registry, "b", vec.New(5, 0), 10)
	c := ball(registry, "c", vec.New(-5, 0), 10)

	a.Collision().OnCollision = func(other *sim.Entity) { a.OnRemove() }

	registry.Step()
	require.NoError(t, a.Update(0))
	assert.True(t, a.Removed())
	assert.Equal(t, []string{"c", "b"}, entries(registry, sim.DefaultLayer))

	require.NoError(t, b.Update(0))
	require.NoError(t, c.Update(0))
}

func TestRejectedModuleNeverRegisters(t *testing.T) {
	world := sim.NewWorld()
	registry := world.Registry()
	e := ball(registry, "e", vec.Zero(), 1)
	neighbour := ball(registry, "neighbour", vec.New(30, 0), 1)

	big := sim.NewCollisionModule(e, registry, sim.CollisionOptions{
		Shapes: []sim.Shape{sim.NewCircle(e, 50)},
	})
	assert.ErrorIs(t, e.AddModule(big), sim.ErrDuplicateModule)
	assert.False(t, big.Registered())
	assert.Equal(t, []string{"e", "neighbour"}, entries(registry, sim.DefaultLayer))

	require.NoError(t, world.Add(e))
	require.NoError(t, world.Add(neighbour))
	require.NoError(t, world.Once(1.0/60))
	assert.Equal(t, vec.New(30, 0), neighbour.Position, "rejected shapes do not collide")

	require.True(t, world.Remove(e))
	assert.Equal(t, []string{"neighbour"}, entries(registry, sim.DefaultLayer))
}

func TestFailedInitLeavesRegistryClean(t *testing.T) {
	registry := sim.NewLayerRegistry()
	e := sim.NewEntity("e", vec.Zero())

	collision := sim.NewCollisionModule(e, registry, sim.CollisionOptions{
		Shapes: []sim.Shape{sim.NewCircle(e, 1)},
		Layers: []sim.LayerId{3},
	})
	err := e.AddModule(collision, sim.NewFrictionModule(e, sim.FrictionOptions{}))
	assert.ErrorIs(t, err, sim.ErrFrictionMode)
	assert.False(t, collision.Registered())
	assert.Zero(t, registry.Len(3))

	require.NoError(t, e.AddModule(collision))
	assert.Equal(t, 1, registry.Len(3))
}
