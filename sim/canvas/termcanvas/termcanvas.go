// Package termcanvas implements sim.Canvas and sim.Pointer on a tcell terminal
// screen. Each terminal cell covers CellWidth x CellHeight world units.
package termcanvas

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
)

// Screen is the part of tcell.Screen the canvas draws through.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

const (
	fillRune   = '█'
	strokeRune = '·'
	blankRune  = ' '
)

// Canvas rasterizes circles and rectangles into terminal cells.
type Canvas struct {
	screen     Screen
	CellWidth  float64
	CellHeight float64
}

// New creates a canvas. Terminal cells are roughly twice as tall as wide, so
// a cellHeight of twice cellWidth keeps circles round.
func New(screen Screen, cellWidth, cellHeight float64) *Canvas {
	return &Canvas{screen: screen, CellWidth: cellWidth, CellHeight: cellHeight}
}

func (c *Canvas) ScreenWidth() float64 {
	w, _ := c.screen.Size()
	return float64(w) * c.CellWidth
}

func (c *Canvas) ScreenHeight() float64 {
	_, h := c.screen.Size()
	return float64(h) * c.CellHeight
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	w, h := c.screen.Size()
	for y := range h {
		for x := range w {
			c.screen.SetContent(x, y, blankRune, nil, tcell.StyleDefault)
		}
	}
}

// ToCell converts a world position to the cell containing it.
func (c *Canvas) ToCell(p vec.Vec2) (int, int) {
	return int(math.Floor(p.X / c.CellWidth)), int(math.Floor(p.Y / c.CellHeight))
}

// ToWorld returns the world position of the center of a cell.
func (c *Canvas) ToWorld(x, y int) vec.Vec2 {
	return vec.New((float64(x)+0.5)*c.CellWidth, (float64(y)+0.5)*c.CellHeight)
}

func (c *Canvas) DrawCircle(pos vec.Vec2, radius float64, style sim.Style) {
	// A cell is on the outline when its center is within half a cell of it.
	band := math.Max(c.CellWidth, c.CellHeight) / 2
	c.raster(pos.Sub(vec.New(radius, radius)), pos.Add(vec.New(radius, radius)), style, func(p vec.Vec2) (inside, edge bool) {
		d := p.Dist(pos)
		return d <= radius, math.Abs(d-radius) <= band
	})
}

func (c *Canvas) DrawRectangle(pos vec.Vec2, width, height float64, style sim.Style) {
	lo, hi := pos, pos.Add(vec.New(width, height))
	halfW, halfH := c.CellWidth/2, c.CellHeight/2
	c.raster(lo, hi, style, func(p vec.Vec2) (inside, edge bool) {
		inside = p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
		nearX := math.Abs(p.X-lo.X) <= halfW || math.Abs(p.X-hi.X) <= halfW
		nearY := math.Abs(p.Y-lo.Y) <= halfH || math.Abs(p.Y-hi.Y) <= halfH
		withinX := p.X >= lo.X-halfW && p.X <= hi.X+halfW
		withinY := p.Y >= lo.Y-halfH && p.Y <= hi.Y+halfH
		return inside, (nearX && withinY) || (nearY && withinX)
	})
}

// raster visits every on-screen cell overlapping the box [lo, hi] and paints
// it according to the classification returned by test.
func (c *Canvas) raster(lo, hi vec.Vec2, style sim.Style, test func(p vec.Vec2) (inside, edge bool)) {
	if style.Fill == nil && style.Stroke == nil {
		return
	}
	w, h := c.screen.Size()
	x0, y0 := c.ToCell(lo)
	x1, y1 := c.ToCell(hi)
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w-1), min(y1, h-1)

	fill := tcell.StyleDefault.Foreground(toColor(style.Fill))
	stroke := tcell.StyleDefault.Foreground(toColor(style.Stroke))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			inside, edge := test(c.ToWorld(x, y))
			switch {
			case edge && style.Stroke != nil:
				c.screen.SetContent(x, y, strokeRune, nil, stroke)
			case inside && style.Fill != nil:
				c.screen.SetContent(x, y, fillRune, nil, fill)
			}
		}
	}
}

func toColor(c color.Color) tcell.Color {
	if c == nil {
		return tcell.ColorDefault
	}
	return tcell.FromImageColor(c)
}

// Pointer tracks mouse events from a tcell screen. Feed it every event with
// HandleEvent and call Reset after each world tick.
type Pointer struct {
	canvas   *Canvas
	position vec.Vec2
	pressed  bool
	clicked  bool
}

func NewPointer(canvas *Canvas) *Pointer {
	return &Pointer{canvas: canvas}
}

// HandleEvent records mouse movement and primary button presses. It reports
// whether the event was a mouse event.
func (p *Pointer) HandleEvent(ev tcell.Event) bool {
	mouse, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	x, y := mouse.Position()
	p.position = p.canvas.ToWorld(x, y)

	down := mouse.Buttons()&tcell.Button1 != 0
	if down && !p.pressed {
		p.clicked = true
	}
	p.pressed = down
	return true
}

// Reset forgets the click seen since the last tick.
func (p *Pointer) Reset() {
	p.clicked = false
}

func (p *Pointer) PointerPosition() vec.Vec2 { return p.position }
func (p *Pointer) Clicked() bool             { return p.clicked }
