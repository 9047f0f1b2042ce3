package scenario

import (
	"fmt"

	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
)

// BuildOptions connects scenario entities to the host program. Every
// callback may be nil.
type BuildOptions struct {
	// Pointer is required when an entity is clickable.
	Pointer     sim.Pointer
	OnClick     func(entity *sim.Entity)
	OnCollision func(entity, other *sim.Entity)
	OnClamp     func(entity *sim.Entity, edge sim.Edge)
}

// Build creates the scenario entities and adds them to world, in file order.
// On error the entities added so far stay in the world.
func (s *Scenario) Build(world *sim.World, opts BuildOptions) ([]*sim.Entity, error) {
	var entities []*sim.Entity
	for _, cfg := range s.Entities {
		if cfg.Clickable && opts.Pointer == nil {
			return entities, fmt.Errorf("build %q: clickable entity without a pointer", cfg.Name)
		}
		for i := range cfg.Count {
			name := cfg.Name
			if cfg.Count > 1 {
				name = fmt.Sprintf("%s-%d", cfg.Name, i)
			}
			position := cfg.Position.Vec().Add(cfg.Spread.Vec().Scale(float64(i)))

			e, err := s.buildEntity(world, cfg, name, position, opts)
			if err != nil {
				return entities, fmt.Errorf("build %q: %w", name, err)
			}
			if err := world.Add(e); err != nil {
				return entities, err
			}
			entities = append(entities, e)
		}
	}
	return entities, nil
}

func (s *Scenario) buildEntity(world *sim.World, cfg EntityConfig, name string, position vec.Vec2, opts BuildOptions) (*sim.Entity, error) {
	e := sim.NewEntity(name, position)
	var modules []sim.Module

	if cfg.Gravity != nil {
		modules = append(modules, sim.NewGravityModule(e, sim.GravityOptions{Gravity: cfg.Gravity.Vec()}))
	}
	if cfg.Friction != nil {
		mode, err := sim.ParseFrictionMode(cfg.Friction.Mode)
		if err != nil {
			return nil, err
		}
		modules = append(modules, sim.NewFrictionModule(e, sim.FrictionOptions{
			Mode:        mode,
			Coefficient: cfg.Friction.Coefficient,
		}))
	}
	if cfg.Movement != nil {
		mover, err := s.movement(e, cfg.Movement, opts)
		if err != nil {
			return nil, err
		}
		modules = append(modules, mover)
	}
	if cfg.Collision != nil {
		modules = append(modules, collision(e, world.Registry(), cfg.Collision, opts))
	}
	if cfg.Clickable {
		modules = append(modules, sim.NewMouseModule(e, opts.Pointer, sim.MouseOptions{OnClick: opts.OnClick}))
	}
	if cfg.Tween != nil {
		modules = append(modules, sim.NewTweenModule(e, sim.TweenOptions{
			To:       cfg.Tween.To.Vec(),
			Duration: cfg.Tween.Duration,
			Ease:     easings[cfg.Tween.Ease],
		}))
	}

	if err := e.AddModule(modules...); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Scenario) movement(e *sim.Entity, cfg *MovementConfig, opts BuildOptions) (*sim.MovementModule, error) {
	integrator, err := parseIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	mo := sim.MovementOptions{
		Integrator:              integrator,
		Velocity:                cfg.Velocity.Vec(),
		Acceleration:            cfg.Acceleration.Vec(),
		KeepMomentumOnCollision: cfg.KeepMomentum,
		Static:                  cfg.Static,
	}
	if cfg.Clamp != nil {
		mo.Clamp = sim.ClampAll(*cfg.Clamp)
		mo.Viewport = s.Viewport()
	}
	if c := cfg.Constraint; c != nil {
		switch c.Kind {
		case "rect":
			mo.Constraint = sim.NewRectConstraint(c.Position.Vec(), c.Width, c.Height)
		case "circle":
			mo.Constraint = sim.NewCircleConstraint(c.Position.Vec(), c.Radius)
		}
	}
	if opts.OnClamp != nil {
		mo.OnClamp = func(edge sim.Edge) { opts.OnClamp(e, edge) }
	}
	return sim.NewMovementModule(e, mo), nil
}

func collision(e *sim.Entity, registry *sim.LayerRegistry, cfg *CollisionConfig, opts BuildOptions) *sim.CollisionModule {
	shapes := make([]sim.Shape, 0, len(cfg.Shapes))
	for _, sc := range cfg.Shapes {
		trigger := sc.Trigger == nil || *sc.Trigger
		switch sc.Kind {
		case "circle":
			c := sim.NewCircle(e, sc.Radius)
			c.Offset = sc.Offset.Vec()
			c.TriggerCollisionCallback = trigger
			shapes = append(shapes, c)
		case "rect":
			r := sim.NewRect(e, sc.Width, sc.Height)
			r.Offset = sc.Offset.Vec()
			r.TriggerCollisionCallback = trigger
			shapes = append(shapes, r)
		}
	}

	layers := make([]sim.LayerId, len(cfg.Layers))
	for i, l := range cfg.Layers {
		layers[i] = sim.LayerId(l)
	}

	co := sim.CollisionOptions{
		Shapes:     shapes,
		Layers:     layers,
		DrawShapes: cfg.Draw,
	}
	if opts.OnCollision != nil {
		co.OnCollision = func(other *sim.Entity) { opts.OnCollision(e, other) }
	}
	return sim.NewCollisionModule(e, registry, co)
}

// NewWorld creates a world using the scenario tick cap. opts are applied
// after it.
func (s *Scenario) NewWorld(opts ...sim.WorldOption) *sim.World {
	return sim.NewWorld(append([]sim.WorldOption{sim.WithMaxDelta(s.MaxDelta)}, opts...)...)
}
