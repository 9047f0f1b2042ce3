package sim_test

import (
	"testing"

	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGravityAddsVelocity(t *testing.T) {
	e, m := mover(t, vec.Zero(), sim.MovementOptions{})
	gravity := sim.NewScalarGravityModule(e, 100)
	require.NoError(t, e.AddModule(gravity))

	require.NoError(t, gravity.Update(0.1))
	assert.InDelta(t, 10.0, m.Velocity().Y, 1e-9)
	assert.Zero(t, m.Velocity().X)
}

func TestGravityIsIndependentOfModuleOrder(t *testing.T) {
	for _, gravityFirst := range []bool{true, false} {
		e := sim.NewEntity("falling", vec.Zero())
		m := sim.NewMovementModule(e, sim.MovementOptions{})
		gravity := sim.NewGravityModule(e, sim.GravityOptions{Gravity: vec.New(0, 100)})

		if gravityFirst {
			require.NoError(t, e.AddModule(gravity, m))
		} else {
			require.NoError(t, e.AddModule(m, gravity))
		}

		require.NoError(t, e.Update(0.1))
		assert.InDelta(t, 10.0, m.Velocity().Y, 1e-9, "gravity first: %v", gravityFirst)
	}
}

func TestGravityWithoutMovement(t *testing.T) {
	e := sim.NewEntity("floating", vec.Zero())
	require.NoError(t, e.AddModule(sim.NewScalarGravityModule(e, 9.8)))

	err := e.Update(0.1)
	assert.ErrorIs(t, err, sim.ErrMissingDependency)
	assert.Contains(t, err.Error(), "floating")
}

func TestFriction(t *testing.T) {
	tests := []struct {
		name        string
		mode        sim.FrictionMode
		coefficient float64
		expected    float64
	}{
		{name: "absolute", mode: sim.FrictionAbsolute, coefficient: 4, expected: 6},
		{name: "absolute floors at zero", mode: sim.FrictionAbsolute, coefficient: 20, expected: 0},
		{name: "percentage", mode: sim.FrictionPercentage, coefficient: 50, expected: 5},
		{name: "percentage floors at zero", mode: sim.FrictionPercentage, coefficient: 200, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, m := mover(t, vec.Zero(), sim.MovementOptions{Velocity: vec.New(10, 0)})
			friction := sim.NewFrictionModule(e, sim.FrictionOptions{Mode: tt.mode, Coefficient: tt.coefficient})
			require.NoError(t, e.AddModule(friction))

			require.NoError(t, friction.Update(1))
			assert.InDelta(t, tt.expected, m.Velocity().X, 1e-9)
			assert.Zero(t, m.Velocity().Y)
		})
	}
}

func TestFrictionRequiresMode(t *testing.T) {
	e, _ := mover(t, vec.Zero(), sim.MovementOptions{})
	err := e.AddModule(sim.NewFrictionModule(e, sim.FrictionOptions{Coefficient: 1}))
	assert.ErrorIs(t, err, sim.ErrFrictionMode)
}

func TestFrictionWithoutMovement(t *testing.T) {
	e := sim.NewEntity("sliding", vec.Zero())
	friction := sim.NewFrictionModule(e, sim.FrictionOptions{Mode: sim.FrictionAbsolute, Coefficient: 1})
	require.NoError(t, e.AddModule(friction))

	assert.ErrorIs(t, friction.Update(1), sim.ErrMissingDependency)
}

func TestParseFrictionMode(t *testing.T) {
	mode, err := sim.ParseFrictionMode("percentage")
	require.NoError(t, err)
	assert.Equal(t, sim.FrictionPercentage, mode)
	assert.Equal(t, "percentage", mode.String())

	_, err = sim.ParseFrictionMode("sticky")
	assert.ErrorIs(t, err, sim.ErrFrictionMode)
}
