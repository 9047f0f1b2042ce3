package sim

import (
	"github.com/plus3/kinetic/vec"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenOptions configures a TweenModule.
type TweenOptions struct {
	To vec.Vec2
	// Duration in seconds.
	Duration float64
	// Ease defaults to ease.Linear.
	Ease       ease.TweenFunc
	OnComplete func(entity *Entity)
}

// TweenModule eases the parent from its position at the first update to To.
// It stops after reaching To; later updates are no-ops.
type TweenModule struct {
	ModuleBase
	To         vec.Vec2
	OnComplete func(entity *Entity)

	duration float32
	easeFn   ease.TweenFunc
	x, y     *gween.Tween
	done     bool
}

func NewTweenModule(parent *Entity, opts TweenOptions) *TweenModule {
	fn := opts.Ease
	if fn == nil {
		fn = ease.Linear
	}
	return &TweenModule{
		ModuleBase: NewModuleBase(parent),
		To:         opts.To,
		OnComplete: opts.OnComplete,
		duration:   float32(opts.Duration),
		easeFn:     fn,
	}
}

// Done reports whether the tween has reached its target.
func (m *TweenModule) Done() bool {
	return m.done
}

func (m *TweenModule) Update(dt float64) error {
	if m.done {
		return nil
	}
	parent := m.Parent()
	if m.x == nil {
		m.x = gween.New(float32(parent.Position.X), float32(m.To.X), m.duration, m.easeFn)
		m.y = gween.New(float32(parent.Position.Y), float32(m.To.Y), m.duration, m.easeFn)
	}

	x, doneX := m.x.Update(float32(dt))
	y, doneY := m.y.Update(float32(dt))
	next := vec.New(float64(x), float64(y))
	m.done = doneX && doneY
	if m.done {
		next = m.To
	}

	if mover := parent.Movement(); mover != nil {
		mover.Teleport(next)
	} else {
		parent.Position = next
	}

	if m.done && m.OnComplete != nil {
		m.OnComplete(parent)
	}
	return nil
}
