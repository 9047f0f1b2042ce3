package sim

import (
	"fmt"
	"slices"

	"github.com/plus3/kinetic/vec"
	"go.uber.org/zap"
)

// CollisionOptions configures a CollisionModule.
type CollisionOptions struct {
	// Shapes make up the hit box. They must be owned by the module's parent.
	Shapes []Shape
	// Layers the module collides on. Empty means DefaultLayer.
	Layers []LayerId
	// OnCollision is called once per resolved pair per tick with the other
	// entity. Nil is a no-op.
	OnCollision func(other *Entity)
	// DrawShapes outlines the shapes in Draw.
	DrawShapes bool
}

// CollisionModule detects overlaps against every other module sharing one of
// its layers, pushes the entities apart and notifies interested parties.
type CollisionModule struct {
	ModuleBase

	Shapes      []Shape
	OnCollision func(other *Entity)
	DrawShapes  bool

	registry    *LayerRegistry
	layers      []LayerId
	memberships []membership
	serial      uint64
	registered  bool

	scratch []layerEntry
	visited map[*CollisionModule]struct{}
}

// NewCollisionModule creates the module for registry. It joins its layers when
// it is attached with Entity.AddModule, so a rejected module never collides.
func NewCollisionModule(parent *Entity, registry *LayerRegistry, opts CollisionOptions) *CollisionModule {
	if registry == nil {
		panic("collision module requires a layer registry")
	}

	layers := opts.Layers
	if len(layers) == 0 {
		if !registry.warnedDefaultLayer {
			registry.warnedDefaultLayer = true
			registry.logger.Warn("collision layers not set, using default layer",
				zap.String("entity", parent.Name),
				zap.Int("layer", int(DefaultLayer)))
		}
		layers = []LayerId{DefaultLayer}
	}
	layers = slices.Clone(layers)
	slices.Sort(layers)
	layers = slices.Compact(layers)

	m := &CollisionModule{
		ModuleBase:  NewModuleBase(parent),
		Shapes:      opts.Shapes,
		OnCollision: opts.OnCollision,
		DrawShapes:  opts.DrawShapes,
		registry:    registry,
		layers:      layers,
		serial:      registry.serial(),
		visited:     make(map[*CollisionModule]struct{}),
	}
	return m
}

// Layers returns the layers the module collides on.
func (m *CollisionModule) Layers() []LayerId {
	return slices.Clone(m.layers)
}

// Registered reports whether the module is currently present in the registry.
// Modules are registered from attachment until removal.
func (m *CollisionModule) Registered() bool {
	return m.registered
}

// Init validates shape ownership and registers the module on its layers if it
// is not registered yet.
func (m *CollisionModule) Init() error {
	for _, shape := range m.Shapes {
		if shape.Owner() != m.Parent() {
			return fmt.Errorf("%s shape not owned by %q: %w", shapeName(shape), m.Parent().Name, ErrForeignModule)
		}
	}
	if !m.registered && !m.Parent().Removed() {
		m.register()
	}
	return nil
}

// Update resolves every overlap between this module's shapes and the shapes of
// other modules on shared layers. Each other module is visited once per tick
// even if it shares several layers.
func (m *CollisionModule) Update(dt float64) error {
	if !m.registered {
		return nil
	}

	clear(m.visited)
	for _, layer := range m.layers {
		m.scratch = m.registry.snapshot(layer, m.scratch[:0])
		for _, entry := range m.scratch {
			other := entry.module
			if other == m || entry.entity == m.Parent() || !other.registered {
				continue
			}
			if _, seen := m.visited[other]; seen {
				continue
			}
			m.visited[other] = struct{}{}

			if err := m.collide(layer, other); err != nil {
				return err
			}
			if !m.registered {
				// Removed from a collision callback.
				return nil
			}
		}
	}
	clear(m.scratch)
	return nil
}

func (m *CollisionModule) collide(layer LayerId, other *CollisionModule) error {
	for _, a := range m.Shapes {
		for _, b := range other.Shapes {
			if !other.registered {
				return nil
			}
			penetration, hit, err := Penetration(a, b)
			if err != nil {
				return fmt.Errorf("collide %q with %q: %w", m.Parent().Name, other.Parent().Name, err)
			}
			if !hit {
				continue
			}
			m.resolve(layer, other, a, b, penetration)
		}
	}
	return nil
}

// resolve splits the correction evenly between both entities. Static bodies
// hand their share to the other side.
func (m *CollisionModule) resolve(layer LayerId, other *CollisionModule, a, b Shape, penetration vec.Vec2) {
	self, peer := m.Parent(), other.Parent()
	selfMover, peerMover := self.Movement(), peer.Movement()

	selfShare, peerShare := 0.5, 0.5
	switch {
	case selfMover.IsStatic() && peerMover.IsStatic():
		selfShare, peerShare = 0, 0
	case selfMover.IsStatic():
		selfShare, peerShare = 0, 1
	case peerMover.IsStatic():
		selfShare, peerShare = 1, 0
	}

	selfTarget := self.Position.Add(penetration.Scale(selfShare))
	peerTarget := peer.Position.Sub(penetration.Scale(peerShare))
	moveEntity(self, selfMover, selfTarget)
	moveEntity(peer, peerMover, peerTarget)

	if !m.registry.claimPair(m, other) {
		return
	}

	switch {
	case selfMover != nil:
		selfMover.CollideWith(peer, penetration)
	case peerMover != nil:
		peerMover.CollideWith(self, penetration.Neg())
	}

	if a.TriggersCallback() && b.TriggersCallback() {
		if m.OnCollision != nil {
			m.OnCollision(peer)
		}
		if other.OnCollision != nil {
			other.OnCollision(self)
		}
	}

	m.registry.emit(CollisionEvent{
		Layer:       layer,
		Entity:      self,
		Other:       peer,
		Penetration: penetration,
	})
}

func moveEntity(e *Entity, mover *MovementModule, target vec.Vec2) {
	if mover != nil {
		mover.SetPosition(target)
		return
	}
	e.Position = target
}

// Draw outlines the shapes when DrawShapes is set.
func (m *CollisionModule) Draw(canvas Canvas) {
	if !m.DrawShapes {
		return
	}
	for _, shape := range m.Shapes {
		shape.Draw(canvas)
	}
}

// OnRemove deregisters the module from every layer.
func (m *CollisionModule) OnRemove() {
	if !m.registered {
		return
	}
	for _, ms := range m.memberships {
		m.registry.unregister(ms)
	}
	m.memberships = m.memberships[:0]
	m.registered = false
}

func (m *CollisionModule) register() {
	for _, layer := range m.layers {
		m.memberships = append(m.memberships, m.registry.register(m, layer))
	}
	m.registered = true
}

func (m *CollisionModule) reindex(layer LayerId, index int) {
	for i := range m.memberships {
		if m.memberships[i].layer == layer {
			m.memberships[i].index = index
			return
		}
	}
}
