// Package ebitencanvas implements sim.Canvas and sim.Pointer with Ebiten.
package ebitencanvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
)

// Canvas draws onto an ebiten.Image. Its size is the logical screen size
// reported by the game's Layout, so it is valid before the first Draw.
type Canvas struct {
	target        *ebiten.Image
	width, height int
	Antialias     bool
}

func New(width, height int) *Canvas {
	return &Canvas{width: width, height: height, Antialias: true}
}

// Resize records the logical screen size. Call it from Layout.
func (c *Canvas) Resize(width, height int) {
	c.width, c.height = width, height
}

// Target sets the image drawn on. Call it at the start of Draw.
func (c *Canvas) Target(screen *ebiten.Image) {
	c.target = screen
}

func (c *Canvas) ScreenWidth() float64  { return float64(c.width) }
func (c *Canvas) ScreenHeight() float64 { return float64(c.height) }

func (c *Canvas) DrawCircle(pos vec.Vec2, radius float64, style sim.Style) {
	if c.target == nil {
		return
	}
	x, y, r := float32(pos.X), float32(pos.Y), float32(radius)
	if style.Fill != nil {
		vector.DrawFilledCircle(c.target, x, y, r, style.Fill, c.Antialias)
	}
	if style.Stroke != nil {
		vector.StrokeCircle(c.target, x, y, r, strokeWidth(style), style.Stroke, c.Antialias)
	}
}

func (c *Canvas) DrawRectangle(pos vec.Vec2, width, height float64, style sim.Style) {
	if c.target == nil {
		return
	}
	x, y, w, h := float32(pos.X), float32(pos.Y), float32(width), float32(height)
	if style.Fill != nil {
		vector.DrawFilledRect(c.target, x, y, w, h, style.Fill, c.Antialias)
	}
	if style.Stroke != nil {
		vector.StrokeRect(c.target, x, y, w, h, strokeWidth(style), style.Stroke, c.Antialias)
	}
}

// Clear fills the target with bg.
func (c *Canvas) Clear(bg color.Color) {
	if c.target != nil {
		c.target.Fill(bg)
	}
}

func strokeWidth(style sim.Style) float32 {
	if style.StrokeWidth <= 0 {
		return 1
	}
	return float32(style.StrokeWidth)
}

// Pointer tracks the mouse cursor and left clicks. Update must be called once
// per game Update, before the world ticks.
type Pointer struct {
	position vec.Vec2
	clicked  bool
	// Blocked suppresses clicks, e.g. while an ImGui window has the mouse.
	Blocked func() bool
}

func NewPointer() *Pointer {
	return &Pointer{}
}

// Update samples the Ebiten input state.
func (p *Pointer) Update() {
	x, y := ebiten.CursorPosition()
	p.Observe(x, y, inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft))
}

// Observe records one input sample.
func (p *Pointer) Observe(x, y int, justPressed bool) {
	p.position = vec.New(float64(x), float64(y))
	p.clicked = justPressed && (p.Blocked == nil || !p.Blocked())
}

func (p *Pointer) PointerPosition() vec.Vec2 { return p.position }
func (p *Pointer) Clicked() bool             { return p.clicked }
