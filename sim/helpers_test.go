package sim_test

import (
	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
)

type screen struct {
	width, height float64
}

func (s screen) ScreenWidth() float64  { return s.width }
func (s screen) ScreenHeight() float64 { return s.height }

type drawCall struct {
	kind     string
	position vec.Vec2
	size     vec.Vec2
}

type recordingCanvas struct {
	screen
	calls []drawCall
}

func (c *recordingCanvas) DrawCircle(pos vec.Vec2, radius float64, style sim.Style) {
	c.calls = append(c.calls, drawCall{kind: "circle", position: pos, size: vec.New(radius, radius)})
}

func (c *recordingCanvas) DrawRectangle(pos vec.Vec2, width, height float64, style sim.Style) {
	c.calls = append(c.calls, drawCall{kind: "rect", position: pos, size: vec.New(width, height)})
}

type fakePointer struct {
	position vec.Vec2
	clicked  bool
}

func (p *fakePointer) PointerPosition() vec.Vec2 { return p.position }
func (p *fakePointer) Clicked() bool             { return p.clicked }

type recordingSink struct {
	events []sim.CollisionEvent
}

func (s *recordingSink) EmitCollision(event sim.CollisionEvent) {
	s.events = append(s.events, event)
}

// probe is a custom module that records its lifecycle calls into a shared log.
type probe struct {
	sim.ModuleBase
	name    string
	log     *[]string
	inits   int
	removed int
	dts     []float64
	fail    error
	initErr error
	onTick  func()
}

func newProbe(parent *sim.Entity, name string, log *[]string) *probe {
	return &probe{ModuleBase: sim.NewModuleBase(parent), name: name, log: log}
}

func (p *probe) Init() error {
	p.inits++
	return p.initErr
}

func (p *probe) Update(dt float64) error {
	p.dts = append(p.dts, dt)
	if p.log != nil {
		*p.log = append(*p.log, "update "+p.name)
	}
	if p.onTick != nil {
		p.onTick()
	}
	return p.fail
}

func (p *probe) Draw(canvas sim.Canvas) {
	if p.log != nil {
		*p.log = append(*p.log, "draw "+p.name)
	}
}

func (p *probe) OnRemove() {
	p.removed++
}

// unknownShape has no narrow phase test.
type unknownShape struct {
	owner *sim.Entity
}

func (s unknownShape) Owner() *sim.Entity   { return s.owner }
func (unknownShape) Position() vec.Vec2     { return vec.Zero() }
func (unknownShape) TriggersCallback() bool { return true }
func (unknownShape) Draw(sim.Canvas)        {}

func ball(registry *sim.LayerRegistry, name string, pos vec.Vec2, radius float64, layers ...sim.LayerId) *sim.Entity {
	e := sim.NewEntity(name, pos)
	collision := sim.NewCollisionModule(e, registry, sim.CollisionOptions{
		Shapes: []sim.Shape{sim.NewCircle(e, radius)},
		Layers: layers,
	})
	if err := e.AddModule(collision); err != nil {
		panic(err)
	}
	return e
}
