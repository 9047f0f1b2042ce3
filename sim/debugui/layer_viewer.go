package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kinetic/sim"
)

// LayerViewer lists collision layers and the entities registered on each.
type LayerViewer struct{}

func NewLayerViewer() *LayerViewer {
	return &LayerViewer{}
}

func (lv *LayerViewer) Render(world *sim.World) {
	if !imgui.BeginV("Collision Layers", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	registry := world.Registry()
	for _, layer := range registry.Layers() {
		if imgui.TreeNodeStr(fmt.Sprintf("Layer %d (%d modules)", layer, registry.Len(layer))) {
			for e, m := range registry.Entries(layer) {
				imgui.BulletText(fmt.Sprintf("%d %s, %d shapes", e.Id, e.Name, len(m.Shapes)))
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}
