package sim

import (
	"fmt"
	"math"

	"github.com/plus3/kinetic/vec"
)

// rectSeparationMargin is added to rectangle separation so resolved pairs no
// longer satisfy the inclusive overlap test.
const rectSeparationMargin = 1.0

// Colliding reports whether two shapes overlap.
func Colliding(a, b Shape) (bool, error) {
	_, hit, err := Penetration(a, b)
	return hit, err
}

// Penetration returns the translation that moves a out of b, and whether the
// shapes overlap at all. Unsupported pairings return ErrUnsupportedShape.
func Penetration(a, b Shape) (vec.Vec2, bool, error) {
	switch a := a.(type) {
	case *Circle:
		switch b := b.(type) {
		case *Circle:
			v, hit := circleCircle(a, b)
			return v, hit, nil
		case *Rect:
			v, hit := circleRect(a, b)
			return v, hit, nil
		}
	case *Rect:
		switch b := b.(type) {
		case *Circle:
			v, hit := circleRect(b, a)
			return v.Neg(), hit, nil
		case *Rect:
			v, hit := rectRect(a, b)
			return v, hit, nil
		}
	}
	return vec.Zero(), false, fmt.Errorf("%s vs %s: %w", shapeName(a), shapeName(b), ErrUnsupportedShape)
}

func circleCircle(a, b *Circle) (vec.Vec2, bool) {
	ca, cb := a.Position(), b.Position()
	radiusSum := a.Radius + b.Radius
	distance := ca.Dist(cb)
	if distance >= radiusSum {
		return vec.Zero(), false
	}

	dir := ca.Sub(cb).Normalize()
	if dir.IsZero() {
		dir = vec.New(1, 0)
	}
	return dir.Scale(radiusSum - distance), true
}

// closestPointOnRect clamps p into the rectangle.
func closestPointOnRect(p vec.Vec2, r *Rect) vec.Vec2 {
	return p.Clamp(r.Position(), r.Max())
}

func circleRect(c *Circle, r *Rect) (vec.Vec2, bool) {
	center := c.Position()
	closest := closestPointOnRect(center, r)
	distance := center.Dist(closest)
	if distance >= c.Radius {
		return vec.Zero(), false
	}

	if distance > 0 {
		return center.Sub(closest).Normalize().Scale(c.Radius - distance), true
	}

	// Center is inside the rectangle: leave through the nearest edge.
	lo, hi := r.Position(), r.Max()
	edges := [4]struct {
		depth  float64
		normal vec.Vec2
	}{
		{center.X - lo.X, vec.New(-1, 0)},
		{hi.X - center.X, vec.New(1, 0)},
		{center.Y - lo.Y, vec.New(0, -1)},
		{hi.Y - center.Y, vec.New(0, 1)},
	}
	best := edges[0]
	for _, edge := range edges[1:] {
		if edge.depth < best.depth {
			best = edge
		}
	}
	return best.normal.Scale(best.depth + c.Radius), true
}

func rectRect(a, b *Rect) (vec.Vec2, bool) {
	pa, pb := a.Position(), b.Position()
	xOverlap := pa.X+a.Width >= pb.X && pb.X+b.Width >= pa.X
	yOverlap := pa.Y+a.Height >= pb.Y && pb.Y+b.Height >= pa.Y
	if !xOverlap || !yOverlap {
		return vec.Zero(), false
	}

	depthX := math.Min(pa.X+a.Width, pb.X+b.Width) - math.Max(pa.X, pb.X)
	depthY := math.Min(pa.Y+a.Height, pb.Y+b.Height) - math.Max(pa.Y, pb.Y)
	ca, cb := a.Center(), b.Center()

	if depthX <= depthY {
		return vec.New(awayFrom(ca.X, cb.X)*(depthX+rectSeparationMargin), 0), true
	}
	return vec.New(0, awayFrom(ca.Y, cb.Y)*(depthY+rectSeparationMargin)), true
}

// awayFrom returns the sign that moves coordinate a away from b.
func awayFrom(a, b float64) float64 {
	if a < b {
		return -1
	}
	return 1
}
