package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
)

// EntityInspector shows the modules of the selected entity and lets the
// position, velocity and force parameters be edited live.
type EntityInspector struct{}

func NewEntityInspector() *EntityInspector {
	return &EntityInspector{}
}

func (ei *EntityInspector) Render(world *sim.World, id sim.EntityId) {
	if !imgui.BeginV("Entity Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if id == 0 {
		imgui.Text("No entity selected")
		return
	}
	e, ok := world.Entity(id)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d not found", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d: %s", e.Id, e.Name))
	if p, changed := inputVec("Position", e.Position); changed {
		if mover := e.Movement(); mover != nil {
			mover.Teleport(p)
		} else {
			e.Position = p
		}
	}
	imgui.Separator()

	for m := range e.Modules() {
		kind := sim.KindOf(m)
		label := kind.String()
		if kind == sim.KindCustom {
			label = fmt.Sprintf("%T", m)
		}
		if imgui.TreeNodeStr(label) {
			renderModule(m)
			imgui.TreePop()
		}
	}
}

func renderModule(m sim.Module) {
	switch m := m.(type) {
	case *sim.MovementModule:
		imgui.Text(fmt.Sprintf("Integrator: %s", m.Integrator()))
		imgui.Text(fmt.Sprintf("Static: %v", m.IsStatic()))
		if v, changed := inputVec("Velocity", m.Velocity()); changed {
			m.SetVelocity(v)
		}
		a := m.Acceleration()
		imgui.Text(fmt.Sprintf("Acceleration: %.2f, %.2f", a.X, a.Y))

	case *sim.CollisionModule:
		layers := make([]string, 0)
		for _, layer := range m.Layers() {
			layers = append(layers, fmt.Sprintf("%d", layer))
		}
		imgui.Text(fmt.Sprintf("Layers: %s", strings.Join(layers, ", ")))
		imgui.Text(fmt.Sprintf("Registered: %v", m.Registered()))
		imgui.Checkbox("Draw shapes", &m.DrawShapes)
		for _, shape := range m.Shapes {
			imgui.BulletText(describeShape(shape))
		}

	case *sim.GravityModule:
		if g, changed := inputVec("Gravity", m.Gravity); changed {
			m.Gravity = g
		}

	case *sim.FrictionModule:
		imgui.Text(fmt.Sprintf("Mode: %s", m.Mode))
		c := float32(m.Coefficient)
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("Coefficient", &c) {
			m.Coefficient = float64(c)
		}

	case *sim.MouseModule:
		imgui.Text(fmt.Sprintf("Shapes: %d", len(m.Shapes)))

	case *sim.TweenModule:
		imgui.Text(fmt.Sprintf("Target: %.1f, %.1f", m.To.X, m.To.Y))
		imgui.Text(fmt.Sprintf("Done: %v", m.Done()))

	default:
		imgui.Text("No inspector for custom modules")
	}
}

func describeShape(shape sim.Shape) string {
	p := shape.Position()
	switch s := shape.(type) {
	case *sim.Circle:
		return fmt.Sprintf("circle r=%.1f at %.1f, %.1f", s.Radius, p.X, p.Y)
	case *sim.Rect:
		return fmt.Sprintf("rect %.1fx%.1f at %.1f, %.1f", s.Width, s.Height, p.X, p.Y)
	default:
		return fmt.Sprintf("%T at %.1f, %.1f", shape, p.X, p.Y)
	}
}

func inputVec(label string, v vec.Vec2) (vec.Vec2, bool) {
	x, y := float32(v.X), float32(v.Y)
	imgui.Text(label + ":")
	imgui.SetNextItemWidth(100)
	changedX := imgui.InputFloat("##"+label+"X", &x)
	imgui.SameLine()
	imgui.SetNextItemWidth(100)
	changedY := imgui.InputFloat("##"+label+"Y", &y)
	return vec.New(float64(x), float64(y)), changedX || changedY
}
