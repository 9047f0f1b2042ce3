package sim

import (
	"fmt"
	"math"
)

// FrictionMode selects how friction slows a body.
type FrictionMode uint8

const (
	frictionUnset FrictionMode = iota
	// FrictionAbsolute removes Coefficient units per second of speed.
	FrictionAbsolute
	// FrictionPercentage removes Coefficient percent of the velocity per second.
	FrictionPercentage
)

func (m FrictionMode) String() string {
	switch m {
	case FrictionAbsolute:
		return "absolute"
	case FrictionPercentage:
		return "percentage"
	default:
		return "unset"
	}
}

// ParseFrictionMode accepts the names returned by FrictionMode.String.
func ParseFrictionMode(s string) (FrictionMode, error) {
	switch s {
	case "absolute":
		return FrictionAbsolute, nil
	case "percentage":
		return FrictionPercentage, nil
	}
	return frictionUnset, fmt.Errorf("friction mode %q: %w", s, ErrFrictionMode)
}

type FrictionOptions struct {
	Mode        FrictionMode
	Coefficient float64
}

// FrictionModule slows the sibling MovementModule every tick.
type FrictionModule struct {
	ModuleBase
	Mode        FrictionMode
	Coefficient float64
}

func NewFrictionModule(parent *Entity, opts FrictionOptions) *FrictionModule {
	return &FrictionModule{
		ModuleBase:  NewModuleBase(parent),
		Mode:        opts.Mode,
		Coefficient: opts.Coefficient,
	}
}

func (m *FrictionModule) Init() error {
	if m.Mode != FrictionAbsolute && m.Mode != FrictionPercentage {
		return fmt.Errorf("friction on %q: %w", m.Parent().Name, ErrFrictionMode)
	}
	return nil
}

func (m *FrictionModule) Update(dt float64) error {
	mover := m.Parent().Movement()
	if mover == nil {
		return fmt.Errorf("friction needs a movement module: %w", ErrMissingDependency)
	}
	if mover.IsStatic() {
		return nil
	}

	velocity := mover.Velocity()
	switch m.Mode {
	case FrictionAbsolute:
		speed := math.Max(0, velocity.Len()-m.Coefficient*dt)
		mover.SetVelocity(velocity.WithLen(speed))
	case FrictionPercentage:
		factor := math.Max(0, 1-m.Coefficient/100*dt)
		mover.SetVelocity(velocity.Scale(factor))
	default:
		return fmt.Errorf("friction on %q: %w", m.Parent().Name, ErrFrictionMode)
	}
	return nil
}
