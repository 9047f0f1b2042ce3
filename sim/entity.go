package sim

import (
	"fmt"
	"iter"
	"slices"

	"github.com/plus3/kinetic/vec"
	"go.uber.org/zap"
)

// EntityId identifies an entity within a World. Zero means "not added".
type EntityId uint32

// moduleSlots gives typed access to the known module kinds. An entity holds at
// most one module of each kind.
type moduleSlots struct {
	collision *CollisionModule
	movement  *MovementModule
	gravity   *GravityModule
	friction  *FrictionModule
	mouse     *MouseModule
	tween     *TweenModule
}

// Entity owns an ordered set of modules and a position. The order in which
// modules were added is the order they are updated and drawn in.
type Entity struct {
	Id       EntityId
	Name     string
	Position vec.Vec2

	world   *World
	modules []Module
	slots   moduleSlots
	removed bool
}

// NewEntity creates a detached entity. Add it to a World to have it updated.
func NewEntity(name string, position vec.Vec2) *Entity {
	return &Entity{
		Name:     name,
		Position: position,
	}
}

// World returns the world the entity was added to, or nil.
func (e *Entity) World() *World {
	return e.world
}

// Removed reports whether OnRemove has been called.
func (e *Entity) Removed() bool {
	return e.removed
}

// AddModule appends modules in order and then calls Init on every module the
// entity owns, not only the new ones. Nothing is added if any module is
// rejected or fails to initialize; new modules that were already initialized
// get OnRemove before the error is returned.
func (e *Entity) AddModule(modules ...Module) error {
	pending := e.slots
	for i, m := range modules {
		if m.Parent() != e {
			return fmt.Errorf("add %T to %q: %w", m, e.Name, ErrForeignModule)
		}
		if slices.Contains(e.modules, m) || slices.Contains(modules[:i], m) {
			return fmt.Errorf("add %T to %q: already attached: %w", m, e.Name, ErrDuplicateModule)
		}
		if !pending.claim(m) {
			return fmt.Errorf("add %s module to %q: %w", KindOf(m), e.Name, ErrDuplicateModule)
		}
	}

	previous, attached := e.slots, len(e.modules)
	e.slots = pending
	e.modules = append(e.modules, modules...)

	if err := e.initModules(); err != nil {
		// Detach the new modules again and let them release what Init took.
		e.slots = previous
		e.modules = slices.Delete(e.modules, attached, len(e.modules))
		for _, m := range modules {
			if remover, ok := m.(Remover); ok {
				remover.OnRemove()
			}
		}
		return err
	}
	return nil
}

func (e *Entity) initModules() error {
	for _, m := range e.modules {
		if initializer, ok := m.(Initializer); ok {
			if err := initializer.Init(); err != nil {
				return fmt.Errorf("init %s module on %q: %w", KindOf(m), e.Name, err)
			}
		}
	}
	return nil
}

// RemoveModule detaches m and calls its OnRemove. It returns false if m is not
// owned by the entity.
func (e *Entity) RemoveModule(m Module) bool {
	idx := slices.Index(e.modules, m)
	if idx < 0 {
		return false
	}

	e.modules = slices.Delete(e.modules, idx, idx+1)
	e.slots.release(m)

	if remover, ok := m.(Remover); ok {
		remover.OnRemove()
	}
	return true
}

// Modules iterates the owned modules in attachment order.
func (e *Entity) Modules() iter.Seq[Module] {
	return func(yield func(Module) bool) {
		for _, m := range e.modules {
			if !yield(m) {
				return
			}
		}
	}
}

// ModuleCount returns the number of owned modules.
func (e *Entity) ModuleCount() int {
	return len(e.modules)
}

func (e *Entity) Collision() *CollisionModule { return e.slots.collision }
func (e *Entity) Movement() *MovementModule   { return e.slots.movement }
func (e *Entity) Gravity() *GravityModule     { return e.slots.gravity }
func (e *Entity) Friction() *FrictionModule   { return e.slots.friction }
func (e *Entity) Mouse() *MouseModule         { return e.slots.mouse }
func (e *Entity) Tween() *TweenModule         { return e.slots.tween }

// Update runs every updating module in attachment order. The first error stops
// the tick for this entity.
func (e *Entity) Update(dt float64) error {
	if e.removed {
		return fmt.Errorf("update %q: %w", e.Name, ErrEntityRemoved)
	}

	for _, m := range slices.Clone(e.modules) {
		updater, ok := m.(Updater)
		if !ok {
			continue
		}
		if err := updater.Update(dt); err != nil {
			return fmt.Errorf("update %s module on %q: %w", KindOf(m), e.Name, err)
		}
		if e.removed {
			// A module callback removed the entity mid-tick.
			return nil
		}
	}
	return nil
}

// Draw runs every drawing module in attachment order.
func (e *Entity) Draw(canvas Canvas) {
	if e.removed {
		return
	}
	for _, m := range e.modules {
		if drawer, ok := m.(Drawer); ok {
			drawer.Draw(canvas)
		}
	}
}

// OnRemove cascades removal to every module. The entity must not be updated or
// drawn afterwards.
func (e *Entity) OnRemove() {
	if e.removed {
		return
	}
	e.removed = true
	for _, m := range e.modules {
		if remover, ok := m.(Remover); ok {
			remover.OnRemove()
		}
	}
}

func (e *Entity) logger() *zap.Logger {
	if e.world == nil {
		return zap.NewNop()
	}
	return e.world.logger
}

func (s *moduleSlots) claim(m Module) bool {
	switch m := m.(type) {
	case *CollisionModule:
		return claimSlot(&s.collision, m)
	case *MovementModule:
		return claimSlot(&s.movement, m)
	case *GravityModule:
		return claimSlot(&s.gravity, m)
	case *FrictionModule:
		return claimSlot(&s.friction, m)
	case *MouseModule:
		return claimSlot(&s.mouse, m)
	case *TweenModule:
		return claimSlot(&s.tween, m)
	}
	return true
}

func (s *moduleSlots) release(m Module) {
	switch m := m.(type) {
	case *CollisionModule:
		releaseSlot(&s.collision, m)
	case *MovementModule:
		releaseSlot(&s.movement, m)
	case *GravityModule:
		releaseSlot(&s.gravity, m)
	case *FrictionModule:
		releaseSlot(&s.friction, m)
	case *MouseModule:
		releaseSlot(&s.mouse, m)
	case *TweenModule:
		releaseSlot(&s.tween, m)
	}
}

func claimSlot[T any](slot **T, m *T) bool {
	if *slot != nil {
		return false
	}
	*slot = m
	return true
}

func releaseSlot[T any](slot **T, m *T) {
	if *slot == m {
		*slot = nil
	}
}
