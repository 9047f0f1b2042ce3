package sim

import (
	"fmt"

	"github.com/plus3/kinetic/vec"
)

// GravityOptions configures a GravityModule.
type GravityOptions struct {
	// Gravity is the acceleration applied every tick, in units per second
	// squared. Screen coordinates grow downward.
	Gravity vec.Vec2
}

// GravityModule changes the velocity of the sibling MovementModule by
// Gravity·dt each tick.
type GravityModule struct {
	ModuleBase
	Gravity vec.Vec2
}

func NewGravityModule(parent *Entity, opts GravityOptions) *GravityModule {
	return &GravityModule{
		ModuleBase: NewModuleBase(parent),
		Gravity:    opts.Gravity,
	}
}

// NewScalarGravityModule pulls straight down with strength g.
func NewScalarGravityModule(parent *Entity, g float64) *GravityModule {
	return NewGravityModule(parent, GravityOptions{Gravity: vec.Down().Scale(g)})
}

func (m *GravityModule) Update(dt float64) error {
	mover := m.Parent().Movement()
	if mover == nil {
		return fmt.Errorf("gravity needs a movement module: %w", ErrMissingDependency)
	}
	mover.Impulse(m.Gravity.Scale(dt))
	return nil
}
