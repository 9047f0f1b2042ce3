package sim_test

import (
	"testing"

	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleConstraintPullsShapeBack(t *testing.T) {
	boundary := sim.NewCircleConstraint(vec.Zero(), 100)
	// Distance 95 from the origin along (0.6, 0.8).
	circle := sim.NewCircle(sim.NewEntity("ball", vec.New(57, 76)), 10)

	corrected, err := boundary.ConstrainPosition(circle)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, corrected.Len(), 1e-9)
	assert.True(t, corrected.Normalize().ApproxEqual(vec.New(0.6, 0.8), 1e-9))
	assert.True(t, corrected.ApproxEqual(vec.New(54, 72), 1e-9), "got %v", corrected)
}

func TestCircleConstraintLeavesInsideShapesAlone(t *testing.T) {
	boundary := sim.NewCircleConstraint(vec.New(10, 10), 50)
	circle := sim.NewCircle(sim.NewEntity("ball", vec.New(20, 30)), 5)

	corrected, err := boundary.ConstrainPosition(circle)
	require.NoError(t, err)
	assert.Equal(t, circle.Position(), corrected)
}

func TestCircleConstraintBoundsRectangles(t *testing.T) {
	boundary := sim.NewCircleConstraint(vec.Zero(), 50)
	// 6x8 has a bounding radius of 5; its center sits at (0, 100).
	rect := sim.NewRect(sim.NewEntity("box", vec.New(-3, 96)), 6, 8)

	corrected, err := boundary.ConstrainPosition(rect)
	require.NoError(t, err)
	assert.True(t, corrected.ApproxEqual(vec.New(-3, 41), 1e-9), "got %v", corrected)
}

func TestRectConstraint(t *testing.T) {
	boundary := sim.NewRectConstraint(vec.Zero(), 100, 100)

	tests := []struct {
		name     string
		shape    func() sim.Shape
		expected vec.Vec2
	}{
		{
			name:     "circle past left",
			shape:    func() sim.Shape { return sim.NewCircle(sim.NewEntity("c", vec.New(5, 50)), 10) },
			expected: vec.New(10, 50),
		},
		{
			name:     "circle past bottom right",
			shape:    func() sim.Shape { return sim.NewCircle(sim.NewEntity("c", vec.New(95, 105)), 10) },
			expected: vec.New(90, 90),
		},
		{
			name:     "rect past right and top",
			shape:    func() sim.Shape { return sim.NewRect(sim.NewEntity("r", vec.New(90, -5)), 20, 20) },
			expected: vec.New(80, 0),
		},
		{
			name:     "rect wider than boundary keeps right side",
			shape:    func() sim.Shape { return sim.NewRect(sim.NewEntity("r", vec.New(0, 0)), 200, 10) },
			expected: vec.New(-100, 0),
		},
		{
			name:     "inside is unchanged",
			shape:    func() sim.Shape { return sim.NewCircle(sim.NewEntity("c", vec.New(50, 50)), 10) },
			expected: vec.New(50, 50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corrected, err := boundary.ConstrainPosition(tt.shape())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, corrected)
		})
	}
}

func TestConstraintIsIdempotent(t *testing.T) {
	constraints := []sim.Constraint{
		sim.NewRectConstraint(vec.Zero(), 100, 100),
		sim.NewCircleConstraint(vec.New(50, 50), 40),
	}

	for _, constraint := range constraints {
		owner := sim.NewEntity("ball", vec.New(130, -20))
		circle := sim.NewCircle(owner, 10)

		first, err := constraint.ConstrainPosition(circle)
		require.NoError(t, err)
		owner.Position = first

		second, err := constraint.ConstrainPosition(circle)
		require.NoError(t, err)
		assert.True(t, first.ApproxEqual(second, 1e-9), "%T: %v then %v", constraint, first, second)
	}
}

func TestConstraintRejectsUnknownShapes(t *testing.T) {
	_, err := sim.NewRectConstraint(vec.Zero(), 1, 1).ConstrainPosition(unknownShape{})
	assert.ErrorIs(t, err, sim.ErrUnsupportedShape)

	_, err = sim.NewCircleConstraint(vec.Zero(), 1).ConstrainPosition(unknownShape{})
	assert.ErrorIs(t, err, sim.ErrUnsupportedShape)
}

func TestConstraintDraw(t *testing.T) {
	canvas := &recordingCanvas{}
	sim.NewCircleConstraint(vec.New(1, 2), 3).Draw(canvas)
	sim.NewRectConstraint(vec.New(4, 5), 6, 7).Draw(canvas)

	require.Len(t, canvas.calls, 2)
	assert.Equal(t, drawCall{kind: "circle", position: vec.New(1, 2), size: vec.New(3, 3)}, canvas.calls[0])
	assert.Equal(t, drawCall{kind: "rect", position: vec.New(4, 5), size: vec.New(6, 7)}, canvas.calls[1])
}
