// Package debugui renders Dear ImGui inspector windows for a sim.World.
// Call Inspector.Render between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kinetic/sim"
)

// Item is an extra ImGui render function drawn after the built-in windows.
type Item struct {
	Render func()
}

// InputState tracks whether ImGui is consuming pointer or keyboard input, so
// the simulation can ignore clicks that land on a window.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Inspector groups the entity browser, the entity inspector, the layer viewer
// and the performance window for one world.
type Inspector struct {
	world *sim.World

	Browser     *EntityBrowser
	Entity      *EntityInspector
	Layers      *LayerViewer
	Performance *PerformanceStats
	Items       []Item

	input InputState
}

func NewInspector(world *sim.World) *Inspector {
	return &Inspector{
		world:       world,
		Browser:     NewEntityBrowser(100),
		Entity:      NewEntityInspector(),
		Layers:      NewLayerViewer(),
		Performance: NewPerformanceStats(120),
	}
}

// Render draws every window. dt is the frame time in seconds.
func (in *Inspector) Render(dt float32) {
	io := imgui.CurrentIO()
	in.input.WantCaptureMouse = io.WantCaptureMouse()
	in.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	in.Browser.Render(in.world)
	in.Entity.Render(in.world, in.Browser.Selected())
	in.Layers.Render(in.world)
	in.Performance.Render(in.world, dt)

	for _, item := range in.Items {
		item.Render()
	}
}

// InputState returns the capture state observed by the last Render.
func (in *Inspector) InputState() InputState {
	return in.input
}
