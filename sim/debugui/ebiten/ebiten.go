// Package ebiten draws the debugui inspector on top of an Ebiten game using the
// cimgui-go Ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/sim/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay owns the ImGui backend and an inspector for one world. Call Update
// from the game's Update, Draw after drawing the world, and Layout from the
// game's Layout.
type Overlay struct {
	backend   ImguiBackend
	inspector *debugui.Inspector
	timer     *debugui.FrameTimer
	Visible   bool
}

// NewOverlay creates the backend window. It must be called before
// ebiten.RunGame.
func NewOverlay(world *sim.World, title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{
		backend:   ImguiBackend{EbitenBackend: backend},
		inspector: debugui.NewInspector(world),
		timer:     debugui.NewFrameTimer(),
		Visible:   true,
	}
}

// Inspector returns the inspector so callers can add Items.
func (o *Overlay) Inspector() *debugui.Inspector {
	return o.inspector
}

// Update builds the ImGui frame.
func (o *Overlay) Update() {
	dt := o.timer.DeltaTime()
	o.backend.BeginFrame()
	if o.Visible {
		o.inspector.Render(dt)
	}
	o.backend.EndFrame()
}

// WantsPointer reports whether the last frame's pointer input belongs to ImGui.
func (o *Overlay) WantsPointer() bool {
	return o.Visible && o.inspector.InputState().WantCaptureMouse
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}
