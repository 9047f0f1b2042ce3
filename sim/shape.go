package sim

import (
	"math"

	"github.com/plus3/kinetic/vec"
)

// Shape is a collision primitive attached to an entity with an offset.
type Shape interface {
	// Owner returns the entity the shape follows, or nil for a free-standing
	// shape positioned by its offset alone.
	Owner() *Entity
	// Position returns the absolute position: owner position plus offset.
	Position() vec.Vec2
	// TriggersCallback reports whether overlaps with this shape notify
	// collision callbacks.
	TriggersCallback() bool
	Draw(canvas Canvas)
}

// Circle is a circular shape centered on its position.
type Circle struct {
	Offset                   vec.Vec2
	Radius                   float64
	TriggerCollisionCallback bool

	owner *Entity
}

// NewCircle creates a circle following owner. Owner may be nil.
func NewCircle(owner *Entity, radius float64) *Circle {
	return &Circle{
		Radius:                   radius,
		TriggerCollisionCallback: true,
		owner:                    owner,
	}
}

func (c *Circle) Owner() *Entity { return c.owner }

func (c *Circle) Position() vec.Vec2 {
	return ownerPosition(c.owner).Add(c.Offset)
}

func (c *Circle) TriggersCallback() bool { return c.TriggerCollisionCallback }

func (c *Circle) Draw(canvas Canvas) {
	canvas.DrawCircle(c.Position(), c.Radius, debugShapeStyle)
}

// Rect is an axis-aligned rectangle; its position is the top-left corner.
type Rect struct {
	Offset                   vec.Vec2
	Width, Height            float64
	TriggerCollisionCallback bool

	owner *Entity
}

// NewRect creates a rectangle following owner. Owner may be nil.
func NewRect(owner *Entity, width, height float64) *Rect {
	return &Rect{
		Width:                    width,
		Height:                   height,
		TriggerCollisionCallback: true,
		owner:                    owner,
	}
}

func (r *Rect) Owner() *Entity { return r.owner }

func (r *Rect) Position() vec.Vec2 {
	return ownerPosition(r.owner).Add(r.Offset)
}

func (r *Rect) TriggersCallback() bool { return r.TriggerCollisionCallback }

func (r *Rect) Draw(canvas Canvas) {
	canvas.DrawRectangle(r.Position(), r.Width, r.Height, debugShapeStyle)
}

// Center returns the middle of the rectangle.
func (r *Rect) Center() vec.Vec2 {
	return r.Position().Add(vec.New(r.Width/2, r.Height/2))
}

// Max returns the bottom-right corner.
func (r *Rect) Max() vec.Vec2 {
	return r.Position().Add(vec.New(r.Width, r.Height))
}

// boundingRadius is the radius of the smallest circle around the rectangle.
func (r *Rect) boundingRadius() float64 {
	return math.Hypot(r.Width, r.Height) / 2
}

func ownerPosition(e *Entity) vec.Vec2 {
	if e == nil {
		return vec.Zero()
	}
	return e.Position
}

func shapeName(s Shape) string {
	switch s.(type) {
	case *Circle:
		return "circle"
	case *Rect:
		return "rect"
	case nil:
		return "nil"
	default:
		return "unknown"
	}
}
