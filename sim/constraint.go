package sim

import (
	"fmt"

	"github.com/plus3/kinetic/vec"
)

// Constraint is a fixed boundary that projects a shape back inside itself.
// ConstrainPosition returns the corrected shape position; the shape itself is
// not modified.
type Constraint interface {
	ConstrainPosition(shape Shape) (vec.Vec2, error)
	Draw(canvas Canvas)
}

// RectConstraint keeps shapes inside an axis-aligned rectangle.
type RectConstraint struct {
	Position      vec.Vec2
	Width, Height float64
}

func NewRectConstraint(position vec.Vec2, width, height float64) *RectConstraint {
	return &RectConstraint{Position: position, Width: width, Height: height}
}

// ConstrainPosition clamps each side independently. When the shape is larger
// than the boundary the right and bottom sides win.
func (c *RectConstraint) ConstrainPosition(shape Shape) (vec.Vec2, error) {
	pos := shape.Position()
	next := pos
	right := c.Position.X + c.Width
	bottom := c.Position.Y + c.Height

	switch s := shape.(type) {
	case *Circle:
		r := s.Radius
		if pos.X-r < c.Position.X {
			next.X = c.Position.X + r
		}
		if pos.Y-r < c.Position.Y {
			next.Y = c.Position.Y + r
		}
		if pos.X+r > right {
			next.X = right - r
		}
		if pos.Y+r > bottom {
			next.Y = bottom - r
		}
	case *Rect:
		if pos.X < c.Position.X {
			next.X = c.Position.X
		}
		if pos.Y < c.Position.Y {
			next.Y = c.Position.Y
		}
		if pos.X+s.Width > right {
			next.X = right - s.Width
		}
		if pos.Y+s.Height > bottom {
			next.Y = bottom - s.Height
		}
	default:
		return pos, fmt.Errorf("rect constraint on %s: %w", shapeName(shape), ErrUnsupportedShape)
	}
	return next, nil
}

func (c *RectConstraint) Draw(canvas Canvas) {
	canvas.DrawRectangle(c.Position, c.Width, c.Height, debugConstraintStyle)
}

// CircleConstraint keeps shapes inside a circle.
type CircleConstraint struct {
	Position vec.Vec2
	Radius   float64
}

func NewCircleConstraint(position vec.Vec2, radius float64) *CircleConstraint {
	return &CircleConstraint{Position: position, Radius: radius}
}

// ConstrainPosition pulls a shape that pokes out of the boundary back along
// the line through the boundary center until it is tangent from the inside.
// Rectangles are treated as their bounding circle.
func (c *CircleConstraint) ConstrainPosition(shape Shape) (vec.Vec2, error) {
	switch s := shape.(type) {
	case *Circle:
		return c.project(s.Position(), s.Radius), nil
	case *Rect:
		half := vec.New(s.Width/2, s.Height/2)
		center := c.project(s.Center(), s.boundingRadius())
		return center.Sub(half), nil
	default:
		return shape.Position(), fmt.Errorf("circle constraint on %s: %w", shapeName(shape), ErrUnsupportedShape)
	}
}

func (c *CircleConstraint) project(center vec.Vec2, radius float64) vec.Vec2 {
	toShape := center.Sub(c.Position)
	distance := toShape.Len()
	if distance+radius <= c.Radius {
		return center
	}
	if distance == 0 {
		return c.Position
	}
	return c.Position.Add(toShape.Div(distance).Scale(c.Radius - radius))
}

func (c *CircleConstraint) Draw(canvas Canvas) {
	canvas.DrawCircle(c.Position, c.Radius, debugConstraintStyle)
}
