package termcanvas_test

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/sim/canvas/termcanvas"
	"github.com/plus3/kinetic/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ sim.Canvas  = (*termcanvas.Canvas)(nil)
	_ sim.Pointer = (*termcanvas.Pointer)(nil)
)

type cell struct{ x, y int }

// gridScreen records the last rune written to each cell.
type gridScreen struct {
	width, height int
	cells         map[cell]rune
}

func newGridScreen(width, height int) *gridScreen {
	return &gridScreen{width: width, height: height, cells: make(map[cell]rune)}
}

func (s *gridScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.cells[cell{x, y}] = primary
}

func (s *gridScreen) Size() (int, int) { return s.width, s.height }

func (s *gridScreen) count(r rune) int {
	n := 0
	for _, got := range s.cells {
		if got == r {
			n++
		}
	}
	return n
}

func TestCanvasSize(t *testing.T) {
	c := termcanvas.New(newGridScreen(80, 24), 2, 4)
	assert.Equal(t, 160.0, c.ScreenWidth())
	assert.Equal(t, 96.0, c.ScreenHeight())

	x, y := c.ToCell(vec.New(5, 9))
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)
	assert.Equal(t, vec.New(5, 10), c.ToWorld(2, 2))
}

func TestFilledRectangle(t *testing.T) {
	screen := newGridScreen(20, 20)
	c := termcanvas.New(screen, 1, 1)

	c.DrawRectangle(vec.New(2, 3), 4, 2, sim.Style{Fill: color.White})

	// Cell centers from (2.5, 3.5) to (5.5, 4.5) are inside.
	assert.Equal(t, 8, screen.count('█'))
	assert.Equal(t, '█', screen.cells[cell{2, 3}])
	assert.Equal(t, '█', screen.cells[cell{5, 4}])
	_, outside := screen.cells[cell{6, 4}]
	assert.False(t, outside)
}

func TestStrokedCircle(t *testing.T) {
	screen := newGridScreen(40, 40)
	c := termcanvas.New(screen, 1, 1)

	c.DrawCircle(vec.New(20, 20), 8, sim.Style{Stroke: color.White})

	assert.NotZero(t, screen.count('·'))
	assert.Zero(t, screen.count('█'))
	_, center := screen.cells[cell{19, 19}]
	assert.False(t, center, "outline leaves the middle empty")
	assert.Equal(t, '·', screen.cells[cell{27, 19}])
}

func TestDrawingIsClippedToScreen(t *testing.T) {
	screen := newGridScreen(5, 5)
	c := termcanvas.New(screen, 1, 1)

	c.DrawCircle(vec.New(0, 0), 20, sim.Style{Fill: color.White})

	assert.Equal(t, 25, len(screen.cells))
	for at := range screen.cells {
		assert.True(t, at.x >= 0 && at.x < 5 && at.y >= 0 && at.y < 5, "cell %v", at)
	}
}

func TestSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(20, 10)

	c := termcanvas.New(screen, 1, 1)
	c.Clear()
	c.DrawRectangle(vec.New(1, 1), 3, 3, sim.Style{Fill: color.White})

	primary, _, _, _ := screen.GetContent(2, 2)
	assert.Equal(t, '█', primary)
	primary, _, _, _ = screen.GetContent(10, 5)
	assert.Equal(t, ' ', primary)
}

func TestPointer(t *testing.T) {
	c := termcanvas.New(newGridScreen(80, 24), 2, 4)
	p := termcanvas.NewPointer(c)

	assert.False(t, p.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))

	require.True(t, p.HandleEvent(tcell.NewEventMouse(3, 1, tcell.ButtonNone, tcell.ModNone)))
	assert.Equal(t, vec.New(7, 6), p.PointerPosition())
	assert.False(t, p.Clicked())

	p.HandleEvent(tcell.NewEventMouse(3, 1, tcell.Button1, tcell.ModNone))
	assert.True(t, p.Clicked())

	p.Reset()
	p.HandleEvent(tcell.NewEventMouse(4, 1, tcell.Button1, tcell.ModNone))
	assert.False(t, p.Clicked(), "holding the button is not a new click")

	p.HandleEvent(tcell.NewEventMouse(4, 1, tcell.ButtonNone, tcell.ModNone))
	p.HandleEvent(tcell.NewEventMouse(4, 1, tcell.Button1, tcell.ModNone))
	assert.True(t, p.Clicked())
}
