package sim

import (
	"image/color"

	"github.com/plus3/kinetic/vec"
)

// Style describes how a primitive is painted. A nil Fill or Stroke skips that part.
type Style struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
}

// Viewport exposes the size of the drawing area.
type Viewport interface {
	ScreenWidth() float64
	ScreenHeight() float64
}

// Canvas is the drawing surface entities and modules render onto.
type Canvas interface {
	Viewport
	DrawCircle(pos vec.Vec2, radius float64, style Style)
	DrawRectangle(pos vec.Vec2, width, height float64, style Style)
}

// Pointer reports the pointer position in world coordinates and whether a
// click happened since the last tick.
type Pointer interface {
	PointerPosition() vec.Vec2
	Clicked() bool
}

var (
	debugShapeStyle      = Style{Stroke: color.RGBA{R: 255, A: 255}, StrokeWidth: 1}
	debugConstraintStyle = Style{Stroke: color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 255}, StrokeWidth: 1}
)
