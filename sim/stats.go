package sim

import (
	"math"
	"slices"
	"time"
)

// WorldStats summarizes tick execution.
type WorldStats struct {
	Ticks         int64
	SimulatedTime float64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
	Collisions    uint64
}

type tickStats struct {
	ticks         int64
	simulated     float64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

func (s *tickStats) reset() {
	*s = tickStats{minDuration: time.Duration(math.MaxInt64)}
}

func (s *tickStats) record(d time.Duration, dt float64) {
	s.ticks++
	s.simulated += dt
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

// Stats returns tick timings since the world was created. MinDuration is zero
// before the first tick.
func (w *World) Stats() WorldStats {
	s := w.stats
	stats := WorldStats{
		Ticks:         s.ticks,
		SimulatedTime: s.simulated,
		MaxDuration:   s.maxDuration,
		LastDuration:  s.lastDuration,
		TotalDuration: s.totalDuration,
		Collisions:    w.registry.collisions,
	}
	if s.ticks > 0 {
		stats.MinDuration = s.minDuration
		stats.AvgDuration = s.totalDuration / time.Duration(s.ticks)
	}
	return stats
}

// LayerStats is the population of one collision layer.
type LayerStats struct {
	Layer   LayerId
	Modules int
}

// Snapshot is a point-in-time census of a world.
type Snapshot struct {
	Tick          uint64
	Entities      int
	Modules       int
	ModulesByKind map[ModuleKind]int
	Layers        []LayerStats
}

// Kinds returns the module kinds present in the snapshot in ascending order.
func (s Snapshot) Kinds() []ModuleKind {
	kinds := make([]ModuleKind, 0, len(s.ModulesByKind))
	for kind := range s.ModulesByKind {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// CollectStats counts entities, modules per kind and modules per layer.
func (w *World) CollectStats() Snapshot {
	snap := Snapshot{
		Tick:          w.registry.Tick(),
		Entities:      len(w.entities),
		ModulesByKind: make(map[ModuleKind]int),
	}
	for _, e := range w.entities {
		for m := range e.Modules() {
			snap.Modules++
			snap.ModulesByKind[KindOf(m)]++
		}
	}
	for _, layer := range w.registry.Layers() {
		snap.Layers = append(snap.Layers, LayerStats{
			Layer:   layer,
			Modules: w.registry.Len(layer),
		})
	}
	return snap
}
