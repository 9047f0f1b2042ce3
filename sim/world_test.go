package sim_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWorldAddAndRemove(t *testing.T) {
	world := sim.NewWorld()
	a := sim.NewEntity("a", vec.Zero())
	b := sim.NewEntity("b", vec.Zero())

	require.NoError(t, world.Add(a))
	require.NoError(t, world.Add(b))
	assert.Equal(t, sim.EntityId(1), a.Id)
	assert.Equal(t, sim.EntityId(2), b.Id)
	assert.Equal(t, 2, world.Len())
	assert.Same(t, world, a.World())

	found, ok := world.Entity(b.Id)
	assert.True(t, ok)
	assert.Same(t, b, found)

	assert.Error(t, world.Add(a), "adding twice fails")
	assert.Error(t, sim.NewWorld().Add(a), "entity belongs to one world")

	assert.True(t, world.Remove(a))
	assert.False(t, world.Remove(a))
	assert.True(t, a.Removed())
	_, ok = world.Entity(a.Id)
	assert.False(t, ok)

	var names []string
	for e := range world.Entities() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"b"}, names)

	assert.ErrorIs(t, world.Add(a), sim.ErrEntityRemoved)
}

func TestWorldAddFailsWithoutSideEffects(t *testing.T) {
	world := sim.NewWorld()
	e := sim.NewEntity("broken", vec.Zero())
	p := newProbe(e, "p", nil)
	require.NoError(t, e.AddModule(p))

	p.initErr = errors.New("not ready")
	assert.ErrorContains(t, world.Add(e), "not ready")
	assert.Zero(t, world.Len())
	assert.Zero(t, e.Id)
	assert.Nil(t, e.World())
	require.NoError(t, world.Once(1.0/60))
	assert.Empty(t, p.dts)

	p.initErr = nil
	require.NoError(t, world.Add(e))
	assert.Equal(t, sim.EntityId(1), e.Id)
	assert.Equal(t, 1, world.Len())
}

func TestWorldClampsDelta(t *testing.T) {
	world := sim.NewWorld(sim.WithMaxDelta(0.05))
	e := sim.NewEntity("e", vec.Zero())
	p := newProbe(e, "p", nil)
	require.NoError(t, e.AddModule(p))
	require.NoError(t, world.Add(e))

	require.NoError(t, world.Once(1))
	require.NoError(t, world.Once(-1))
	require.NoError(t, world.Once(0.01))

	assert.Equal(t, []float64{0.05, 0, 0.01}, p.dts)

	stats := world.Stats()
	assert.Equal(t, int64(3), stats.Ticks)
	assert.InDelta(t, 0.06, stats.SimulatedTime, 1e-12)
	assert.LessOrEqual(t, stats.MinDuration, stats.MaxDuration)
}

func TestWorldResolvesScenario(t *testing.T) {
	sink := &recordingSink{}
	world := sim.NewWorld(sim.WithEventSink(sink))
	a := ball(world.Registry(), "a", vec.New(0, 0), 10)
	b := ball(world.Registry(), "b", vec.New(15, 0), 10)
	require.NoError(t, world.Add(a))
	require.NoError(t, world.Add(b))

	require.NoError(t, world.Once(1.0/60))

	assert.Equal(t, vec.New(-2.5, 0), a.Position)
	assert.Equal(t, vec.New(17.5, 0), b.Position)
	require.Len(t, sink.events, 1)
	assert.Equal(t, vec.New(-5, 0), sink.events[0].Penetration)
	assert.Equal(t, uint64(1), world.Stats().Collisions)
}

func TestWorldRemovalDuringTick(t *testing.T) {
	world := sim.NewWorld()
	var log []string

	victim := sim.NewEntity("victim", vec.Zero())
	require.NoError(t, victim.AddModule(newProbe(victim, "victim", &log)))

	killer := sim.NewEntity("killer", vec.Zero())
	k := newProbe(killer, "killer", &log)
	k.onTick = func() { world.Remove(victim) }
	require.NoError(t, killer.AddModule(k))

	require.NoError(t, world.Add(killer))
	require.NoError(t, world.Add(victim))

	require.NoError(t, world.Once(0.01))
	assert.Equal(t, []string{"update killer"}, log)
	assert.Equal(t, 1, world.Len())
}

func TestWorldCommands(t *testing.T) {
	world := sim.NewWorld()
	var log []string

	spawned := sim.NewEntity("spawned", vec.Zero())
	require.NoError(t, spawned.AddModule(newProbe(spawned, "spawned", &log)))

	doomed := sim.NewEntity("doomed", vec.Zero())
	require.NoError(t, world.Add(doomed))

	host := sim.NewEntity("host", vec.Zero())
	p := newProbe(host, "host", &log)
	p.onTick = func() {
		if len(p.dts) > 1 {
			return
		}
		world.Commands().Spawn(spawned)
		world.Commands().Remove(doomed)
		world.Commands().Defer(func() { log = append(log, "deferred") })
	}
	require.NoError(t, host.AddModule(p))
	require.NoError(t, world.Add(host))

	require.NoError(t, world.Once(0.01))
	assert.Equal(t, []string{"update host", "deferred"}, log)
	assert.True(t, doomed.Removed())
	assert.Same(t, world, spawned.World())
	assert.Zero(t, world.Commands().Pending())

	log = nil
	require.NoError(t, world.Once(0.01))
	assert.Equal(t, []string{"update host", "update spawned"}, log)
}

func TestWorldOnceReturnsUpdateErrors(t *testing.T) {
	world := sim.NewWorld()
	e := sim.NewEntity("broken", vec.Zero())
	p := newProbe(e, "p", nil)
	p.fail = errors.New("boom")
	require.NoError(t, e.AddModule(p))
	require.NoError(t, world.Add(e))

	assert.ErrorIs(t, world.Once(0.01), p.fail)
	assert.ErrorIs(t, world.Run(context.Background(), time.Millisecond), p.fail)
}

func TestWorldRun(t *testing.T) {
	world := sim.NewWorld()
	e := sim.NewEntity("e", vec.Zero())
	p := newProbe(e, "p", nil)
	require.NoError(t, e.AddModule(p))
	require.NoError(t, world.Add(e))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, world.Run(ctx, 5*time.Millisecond))
	assert.NotEmpty(t, p.dts)
	assert.Equal(t, int64(len(p.dts)), world.Stats().Ticks)
}

func TestWorldLogsConfigurationWarnings(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	world := sim.NewWorld(sim.WithLogger(zap.New(core)))

	e := sim.NewEntity("clamped", vec.Zero())
	require.NoError(t, e.AddModule(sim.NewMovementModule(e, sim.MovementOptions{Clamp: sim.ClampAll(5)})))
	require.NoError(t, world.Add(e))

	ball(world.Registry(), "unlayered", vec.Zero(), 1)
	ball(world.Registry(), "unlayered too", vec.Zero(), 1)

	messages := make([]string, 0, logs.Len())
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{
		"edge clamp configured without a viewport, clamping disabled",
		"collision layers not set, using default layer",
	}, messages)
}

func TestCollectStats(t *testing.T) {
	world := sim.NewWorld()
	a := ball(world.Registry(), "a", vec.New(0, 0), 1, 1)
	require.NoError(t, a.AddModule(sim.NewMovementModule(a, sim.MovementOptions{})))
	b := ball(world.Registry(), "b", vec.New(50, 0), 1, 1, 2)
	require.NoError(t, world.Add(a))
	require.NoError(t, world.Add(b))

	snap := world.CollectStats()
	assert.Equal(t, 2, snap.Entities)
	assert.Equal(t, 3, snap.Modules)
	assert.Equal(t, map[sim.ModuleKind]int{sim.KindCollision: 2, sim.KindMovement: 1}, snap.ModulesByKind)
	assert.Equal(t, []sim.ModuleKind{sim.KindCollision, sim.KindMovement}, snap.Kinds())
	assert.Equal(t, []sim.LayerStats{{Layer: 1, Modules: 2}, {Layer: 2, Modules: 1}}, snap.Layers)
}
