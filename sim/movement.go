package sim

import (
	"fmt"

	"github.com/plus3/kinetic/vec"
	"go.uber.org/zap"
)

// Integrator selects how a MovementModule advances position.
type Integrator uint8

const (
	// IntegratorEuler keeps an explicit velocity and bounces off clamped
	// screen edges.
	IntegratorEuler Integrator = iota
	// IntegratorVerlet derives velocity from the previous position and projects
	// collision shapes into the constraint after each step.
	IntegratorVerlet
)

func (i Integrator) String() string {
	switch i {
	case IntegratorEuler:
		return "euler"
	case IntegratorVerlet:
		return "verlet"
	default:
		return fmt.Sprintf("integrator(%d)", uint8(i))
	}
}

// Edge names a screen edge for clamping.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	return [...]string{"left", "right", "top", "bottom"}[e]
}

// clampDamping scales velocity and acceleration after an edge bounce.
const clampDamping = 0.9

// defaultStep seeds the Verlet velocity estimate before the first tick.
const defaultStep = 1.0 / 60

// Padding is an optional distance from a screen edge.
type Padding struct {
	Value   float64
	Enabled bool
}

// Pad enables clamping at v units from the edge.
func Pad(v float64) Padding {
	return Padding{Value: v, Enabled: true}
}

// EdgeClamp configures clamping per screen edge. Disabled edges are not
// clamped.
type EdgeClamp struct {
	Left, Right, Top, Bottom Padding
}

// ClampAll clamps all four edges with the same padding.
func ClampAll(padding float64) EdgeClamp {
	p := Pad(padding)
	return EdgeClamp{Left: p, Right: p, Top: p, Bottom: p}
}

func (c EdgeClamp) enabled() bool {
	return c.Left.Enabled || c.Right.Enabled || c.Top.Enabled || c.Bottom.Enabled
}

// MovementOptions configures a MovementModule.
type MovementOptions struct {
	Integrator Integrator
	Velocity   vec.Vec2
	// Acceleration is applied on every step, on top of whatever Accelerate
	// accumulated during the tick.
	Acceleration vec.Vec2
	// Constraint is projected after each Verlet step.
	Constraint Constraint
	// Clamp and Viewport configure Euler edge bouncing.
	Clamp    EdgeClamp
	Viewport Viewport
	// KeepMomentumOnCollision keeps the speed of the body after an
	// entity-entity collision instead of averaging both speeds.
	KeepMomentumOnCollision bool
	// Static bodies are never moved by integration or collision response.
	Static bool
	// OnClamp is called after an edge bounce. Nil is a no-op.
	OnClamp func(edge Edge)
}

// MovementModule integrates acceleration and velocity into the parent
// position using the integrator chosen at construction.
type MovementModule struct {
	ModuleBase

	OnClamp func(edge Edge)

	integrator   Integrator
	velocity     vec.Vec2
	acceleration vec.Vec2
	pending      vec.Vec2
	lastPosition vec.Vec2
	lastDt       float64

	constraint   Constraint
	clamp        EdgeClamp
	viewport     Viewport
	keepMomentum bool
	static       bool

	warned bool
}

func NewMovementModule(parent *Entity, opts MovementOptions) *MovementModule {
	m := &MovementModule{
		ModuleBase:   NewModuleBase(parent),
		OnClamp:      opts.OnClamp,
		integrator:   opts.Integrator,
		velocity:     opts.Velocity,
		acceleration: opts.Acceleration,
		lastDt:       defaultStep,
		constraint:   opts.Constraint,
		clamp:        opts.Clamp,
		viewport:     opts.Viewport,
		keepMomentum: opts.KeepMomentumOnCollision,
		static:       opts.Static,
	}
	m.lastPosition = parent.Position.Sub(opts.Velocity.Scale(defaultStep))
	return m
}

// Init logs configuration that has no effect for the chosen integrator once
// the parent has joined a world.
func (m *MovementModule) Init() error {
	if m.warned || m.Parent().World() == nil {
		return nil
	}
	logger := m.Parent().logger()
	if m.clamp.enabled() && m.viewport == nil {
		m.warned = true
		logger.Warn("edge clamp configured without a viewport, clamping disabled",
			zap.String("entity", m.Parent().Name))
	}
	if m.clamp.enabled() && m.integrator == IntegratorVerlet {
		m.warned = true
		logger.Warn("edge clamp is ignored by the verlet integrator",
			zap.String("entity", m.Parent().Name))
	}
	if m.constraint != nil && m.integrator == IntegratorEuler {
		m.warned = true
		logger.Warn("constraint is ignored by the euler integrator",
			zap.String("entity", m.Parent().Name))
	}
	return nil
}

// Update advances the parent by one step and resets accumulated acceleration.
func (m *MovementModule) Update(dt float64) error {
	defer func() { m.pending = vec.Zero() }()

	if m.static || dt <= 0 {
		return nil
	}

	switch m.integrator {
	case IntegratorVerlet:
		return m.stepVerlet(dt)
	default:
		m.stepEuler(dt)
		return nil
	}
}

func (m *MovementModule) stepEuler(dt float64) {
	parent := m.Parent()
	m.velocity = m.velocity.Add(m.Acceleration().Scale(dt))
	parent.Position = m.applyClamp(parent.Position.Add(m.velocity.Scale(dt)))
}

func (m *MovementModule) stepVerlet(dt float64) error {
	parent := m.Parent()
	current := parent.Position
	displacement := current.Sub(m.lastPosition)

	parent.Position = current.Add(displacement).Add(m.Acceleration().Scale(dt * dt))
	m.lastPosition = current
	m.lastDt = dt

	return m.applyConstraint()
}

// applyConstraint projects every sibling collision shape into the constraint,
// committing each correction to the parent before testing the next shape.
func (m *MovementModule) applyConstraint() error {
	parent := m.Parent()
	collision := parent.Collision()
	if m.constraint == nil || collision == nil {
		return nil
	}

	for _, shape := range collision.Shapes {
		corrected, err := m.constraint.ConstrainPosition(shape)
		if err != nil {
			return err
		}
		parent.Position = parent.Position.Add(corrected.Sub(shape.Position()))
	}
	return nil
}

func (m *MovementModule) applyClamp(p vec.Vec2) vec.Vec2 {
	if m.viewport == nil || !m.clamp.enabled() {
		return p
	}
	width, height := m.viewport.ScreenWidth(), m.viewport.ScreenHeight()

	if m.clamp.Left.Enabled && p.X < m.clamp.Left.Value {
		p.X = m.clamp.Left.Value
		m.bounce(EdgeLeft)
	}
	if m.clamp.Right.Enabled && p.X > width-m.clamp.Right.Value {
		p.X = width - m.clamp.Right.Value
		m.bounce(EdgeRight)
	}
	if m.clamp.Top.Enabled && p.Y < m.clamp.Top.Value {
		p.Y = m.clamp.Top.Value
		m.bounce(EdgeTop)
	}
	if m.clamp.Bottom.Enabled && p.Y > height-m.clamp.Bottom.Value {
		p.Y = height - m.clamp.Bottom.Value
		m.bounce(EdgeBottom)
	}
	return p
}

// bounce turns the velocity component for edge back inside the screen and
// damps velocity and acceleration. A component already pointing inside is
// left alone so a body flips once per crossing.
func (m *MovementModule) bounce(edge Edge) {
	switch edge {
	case EdgeLeft:
		if m.velocity.X < 0 {
			m.velocity.X = -m.velocity.X
		}
	case EdgeRight:
		if m.velocity.X > 0 {
			m.velocity.X = -m.velocity.X
		}
	case EdgeTop:
		if m.velocity.Y < 0 {
			m.velocity.Y = -m.velocity.Y
		}
	case EdgeBottom:
		if m.velocity.Y > 0 {
			m.velocity.Y = -m.velocity.Y
		}
	}
	m.velocity = m.velocity.Scale(clampDamping)
	m.acceleration = m.acceleration.Scale(clampDamping)

	if m.OnClamp != nil {
		m.OnClamp(edge)
	}
}

// Accelerate adds to the acceleration of the current tick. It is reset after
// the next Update.
func (m *MovementModule) Accelerate(a vec.Vec2) {
	m.pending = m.pending.Add(a)
}

// Acceleration returns the constant acceleration plus what was accumulated
// this tick.
func (m *MovementModule) Acceleration() vec.Vec2 {
	return m.acceleration.Add(m.pending)
}

// Impulse changes the velocity immediately by dv.
func (m *MovementModule) Impulse(dv vec.Vec2) {
	if m.static {
		return
	}
	m.SetVelocity(m.Velocity().Add(dv))
}

// Velocity returns the current velocity in units per second.
func (m *MovementModule) Velocity() vec.Vec2 {
	if m.integrator == IntegratorVerlet {
		return m.Parent().Position.Sub(m.lastPosition).Div(m.lastDt)
	}
	return m.velocity
}

// SetVelocity replaces the velocity. Verlet bodies rewrite their previous
// position so the next step moves by v.
func (m *MovementModule) SetVelocity(v vec.Vec2) {
	if m.integrator == IntegratorVerlet {
		m.lastPosition = m.Parent().Position.Sub(v.Scale(m.lastDt))
		return
	}
	m.velocity = v
}

// SetPosition moves the parent. Verlet bodies keep their previous position,
// so the move also changes their implied velocity.
func (m *MovementModule) SetPosition(p vec.Vec2) {
	m.Parent().Position = p
}

// Teleport moves the parent without changing its velocity.
func (m *MovementModule) Teleport(p vec.Vec2) {
	parent := m.Parent()
	if m.integrator == IntegratorVerlet {
		m.lastPosition = m.lastPosition.Add(p.Sub(parent.Position))
	}
	parent.Position = p
}

func (m *MovementModule) SetConstraint(c Constraint) {
	m.constraint = c
}

func (m *MovementModule) Constraint() Constraint {
	return m.constraint
}

func (m *MovementModule) Integrator() Integrator {
	return m.integrator
}

// IsStatic reports whether the body ignores integration and collision
// response. A nil module is not static.
func (m *MovementModule) IsStatic() bool {
	return m != nil && m.static
}

// KeepsMomentum reports whether collision response preserves speed.
func (m *MovementModule) KeepsMomentum() bool {
	return m.keepMomentum
}

// CollideWith points both bodies away from each other. Their new speed is the
// mean of both speeds, or their own speed when they keep momentum. normal is
// the separation direction, used when both positions coincide.
func (m *MovementModule) CollideWith(other *Entity, normal vec.Vec2) {
	self := m.Parent()
	otherMover := other.Movement()

	selfVelocity := m.Velocity()
	var otherVelocity vec.Vec2
	if otherMover != nil {
		otherVelocity = otherMover.Velocity()
	}
	selfSpeed, otherSpeed := selfVelocity.Len(), otherVelocity.Len()
	mean := (selfSpeed + otherSpeed) / 2

	dir := self.Position.Sub(other.Position).Normalize()
	if dir.IsZero() {
		dir = normal.Normalize()
	}
	if dir.IsZero() {
		dir = vec.New(1, 0)
	}

	if !m.static {
		speed := mean
		if m.keepMomentum {
			speed = selfSpeed
			if speed == 0 {
				speed = otherSpeed
			}
		}
		m.SetVelocity(dir.Scale(speed))
	}

	if otherMover != nil && !otherMover.static {
		speed := mean
		if otherMover.keepMomentum {
			speed = otherSpeed
			if speed == 0 {
				speed = selfSpeed
			}
		}
		otherMover.SetVelocity(dir.Neg().Scale(speed))
	}
}

// Draw outlines the constraint, if any.
func (m *MovementModule) Draw(canvas Canvas) {
	if m.constraint != nil {
		m.constraint.Draw(canvas)
	}
}
