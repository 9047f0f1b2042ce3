package sim

// MouseOptions configures a MouseModule.
type MouseOptions struct {
	// Shapes are hit-tested against the pointer. Empty means the shapes of the
	// sibling CollisionModule.
	Shapes  []Shape
	OnClick func(entity *Entity)
}

// MouseModule calls OnClick when the pointer is clicked over the parent.
type MouseModule struct {
	ModuleBase
	Shapes  []Shape
	OnClick func(entity *Entity)

	pointer Pointer
}

func NewMouseModule(parent *Entity, pointer Pointer, opts MouseOptions) *MouseModule {
	if pointer == nil {
		panic("mouse module requires a pointer")
	}
	return &MouseModule{
		ModuleBase: NewModuleBase(parent),
		Shapes:     opts.Shapes,
		OnClick:    opts.OnClick,
		pointer:    pointer,
	}
}

func (m *MouseModule) Init() error {
	if len(m.Shapes) == 0 {
		if collision := m.Parent().Collision(); collision != nil {
			m.Shapes = collision.Shapes
		}
	}
	return nil
}

func (m *MouseModule) Update(dt float64) error {
	if m.OnClick == nil || !m.pointer.Clicked() {
		return nil
	}
	hit, err := m.Hovered()
	if err != nil {
		return err
	}
	if hit {
		m.OnClick(m.Parent())
	}
	return nil
}

// Hovered reports whether the pointer overlaps any of the module's shapes.
func (m *MouseModule) Hovered() (bool, error) {
	probe := NewCircle(nil, 1)
	probe.Offset = m.pointer.PointerPosition()
	probe.TriggerCollisionCallback = false

	for _, shape := range m.Shapes {
		hit, err := Colliding(shape, probe)
		if err != nil {
			return false, err
		}
		if hit {
			return true, nil
		}
	}
	return false, nil
}
