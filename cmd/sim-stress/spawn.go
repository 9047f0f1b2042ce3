package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
)

// idlePointer never clicks, so clickable scenario entities stay inert.
type idlePointer struct{}

func (idlePointer) PointerPosition() vec.Vec2 { return vec.New(-1, -1) }
func (idlePointer) Clicked() bool             { return false }

// spawnBody creates a random euler body bouncing inside the viewport. Most
// bodies fall under gravity; some slide with friction instead.
func spawnBody(rng *rand.Rand, registry *sim.LayerRegistry, viewport sim.Viewport, i, layers int) *sim.Entity {
	width, height := viewport.ScreenWidth(), viewport.ScreenHeight()
	e := sim.NewEntity(fmt.Sprintf("body-%d", i), vec.New(rng.Float64()*width, rng.Float64()*height))

	var shape sim.Shape
	if rng.IntN(3) == 0 {
		size := 4 + rng.Float64()*8
		r := sim.NewRect(e, size, size)
		r.Offset = vec.New(-size/2, -size/2)
		shape = r
	} else {
		shape = sim.NewCircle(e, 2+rng.Float64()*6)
	}

	modules := []sim.Module{
		sim.NewMovementModule(e, sim.MovementOptions{
			Velocity: vec.New(rng.Float64()*400-200, rng.Float64()*400-200),
			Clamp:    sim.ClampAll(4),
			Viewport: viewport,
		}),
		sim.NewCollisionModule(e, registry, sim.CollisionOptions{
			Shapes: []sim.Shape{shape},
			Layers: []sim.LayerId{sim.LayerId(1 + rng.IntN(max(layers, 1)))},
		}),
	}
	if rng.IntN(4) == 0 {
		modules = append(modules, sim.NewFrictionModule(e, sim.FrictionOptions{
			Mode:        sim.FrictionPercentage,
			Coefficient: 10,
		}))
	} else {
		modules = append(modules, sim.NewScalarGravityModule(e, 250))
	}

	if err := e.AddModule(modules...); err != nil {
		// Each module kind is added once, so this is a programming error.
		panic(err)
	}
	return e
}
