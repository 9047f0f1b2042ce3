// Package sim is a small real-time 2D simulation toolkit. Entities own an
// ordered list of modules that are updated once per tick; the collision and
// movement modules implement layer-partitioned collision detection, penetration
// resolution, motion integration and boundary constraints.
package sim

// Module is a behavior unit attached to exactly one Entity.
// Modules opt into lifecycle hooks by implementing the capability interfaces
// below; a module that implements none of them is inert.
type Module interface {
	Parent() *Entity
}

// Initializer is called for every owned module each time modules are added to
// the entity, so Init must tolerate repeated calls.
type Initializer interface {
	Init() error
}

// Updater is called once per tick in attachment order.
type Updater interface {
	Update(dt float64) error
}

// Drawer is called by Entity.Draw in attachment order.
type Drawer interface {
	Draw(canvas Canvas)
}

// Remover is called when the module, or its entity, is removed.
type Remover interface {
	OnRemove()
}

// ModuleBase holds the parent back-reference. Embed it in custom modules.
type ModuleBase struct {
	parent *Entity
}

// NewModuleBase binds a module to its parent entity. It panics on a nil parent.
func NewModuleBase(parent *Entity) ModuleBase {
	if parent == nil {
		panic("module parent must be an entity")
	}
	return ModuleBase{parent: parent}
}

// Parent returns the owning entity.
func (m ModuleBase) Parent() *Entity {
	return m.parent
}

// ModuleKind names the typed slot a module occupies on its entity.
type ModuleKind uint8

const (
	KindCustom ModuleKind = iota
	KindCollision
	KindMovement
	KindGravity
	KindFriction
	KindMouse
	KindTween
)

func (k ModuleKind) String() string {
	switch k {
	case KindCollision:
		return "collision"
	case KindMovement:
		return "movement"
	case KindGravity:
		return "gravity"
	case KindFriction:
		return "friction"
	case KindMouse:
		return "mouse"
	case KindTween:
		return "tween"
	default:
		return "custom"
	}
}

// KindOf reports the slot kind of a module.
func KindOf(m Module) ModuleKind {
	switch m.(type) {
	case *CollisionModule:
		return KindCollision
	case *MovementModule:
		return KindMovement
	case *GravityModule:
		return KindGravity
	case *FrictionModule:
		return KindFriction
	case *MouseModule:
		return KindMouse
	case *TweenModule:
		return KindTween
	default:
		return KindCustom
	}
}
