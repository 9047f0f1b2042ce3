package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kinetic/sim"
)

// FrameHistory is a ring buffer of frame times in milliseconds.
type FrameHistory struct {
	frames []float32
	index  int
	filled int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{frames: make([]float32, size)}
}

// Push records a frame time given in seconds.
func (h *FrameHistory) Push(dt float32) {
	h.frames[h.index] = dt * 1000
	h.index = (h.index + 1) % len(h.frames)
	h.filled = min(h.filled+1, len(h.frames))
}

// Average returns the mean frame time in milliseconds over the recorded frames.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ft := range h.frames[:h.filled] {
		sum += ft
	}
	return sum / float32(h.filled)
}

// PerformanceStats shows frame times, tick timings and a world census.
type PerformanceStats struct {
	history *FrameHistory
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{history: NewFrameHistory(historyFrames)}
}

func (ps *PerformanceStats) Render(world *sim.World, dt float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.history.Push(dt)
	stats := world.Stats()
	snap := world.CollectStats()

	imgui.Text(fmt.Sprintf("Entities: %d", snap.Entities))
	imgui.Text(fmt.Sprintf("Modules: %d", snap.Modules))
	imgui.Text(fmt.Sprintf("Collisions: %d", stats.Collisions))

	avg := ps.history.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.Text(fmt.Sprintf("Tick: last %s, avg %s, max %s",
		stats.LastDuration.Round(time.Microsecond),
		stats.AvgDuration.Round(time.Microsecond),
		stats.MaxDuration.Round(time.Microsecond)))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.frames[0], int32(len(ps.history.frames)))

	if imgui.TreeNodeStr("Modules by kind") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ModuleKindTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Kind")
			imgui.TableSetupColumn("Count")
			imgui.TableHeadersRow()

			for _, kind := range snap.Kinds() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(kind.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", snap.ModulesByKind[kind]))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) DeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
