package sim

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// DefaultMaxDelta caps the delta time of a single tick, in seconds.
const DefaultMaxDelta = 1.0 / 30

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the logger used by the world and its modules.
func WithLogger(logger *zap.Logger) WorldOption {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithMaxDelta caps the delta time passed to Once. Non-positive values keep
// the default.
func WithMaxDelta(seconds float64) WorldOption {
	return func(w *World) {
		if seconds > 0 {
			w.maxDelta = seconds
		}
	}
}

// WithEventSink receives every resolved collision.
func WithEventSink(sink EventSink) WorldOption {
	return func(w *World) {
		w.registry.SetSink(sink)
	}
}

// World owns a set of entities and the layer registry their collision modules
// share, and updates them in insertion order.
type World struct {
	registry *LayerRegistry
	logger   *zap.Logger
	maxDelta float64

	entities []*Entity
	index    *intmap.Map[EntityId, *Entity]
	nextId   EntityId

	commands *Commands
	stats    tickStats
	scratch  []*Entity
}

func NewWorld(opts ...WorldOption) *World {
	w := &World{
		registry: NewLayerRegistry(),
		logger:   zap.NewNop(),
		maxDelta: DefaultMaxDelta,
		index:    intmap.New[EntityId, *Entity](256),
		commands: &Commands{},
	}
	w.stats.reset()
	for _, opt := range opts {
		opt(w)
	}
	w.registry.logger = w.logger
	return w
}

// Registry returns the layer registry collision modules of this world must be
// created with.
func (w *World) Registry() *LayerRegistry {
	return w.registry
}

func (w *World) Logger() *zap.Logger {
	return w.logger
}

// Commands returns the buffer flushed at the end of every Once.
func (w *World) Commands() *Commands {
	return w.commands
}

// Add assigns an id to e and appends it to the update order. Modules are
// initialized again so configuration warnings reach the world logger; if one
// fails, the world is left unchanged.
func (w *World) Add(e *Entity) error {
	switch {
	case e.removed:
		return fmt.Errorf("add %q: %w", e.Name, ErrEntityRemoved)
	case e.world == w:
		return fmt.Errorf("add %q: already in world", e.Name)
	case e.world != nil:
		return fmt.Errorf("add %q: owned by another world", e.Name)
	}

	e.world = w
	if err := e.initModules(); err != nil {
		e.world = nil
		return err
	}

	w.nextId++
	e.Id = w.nextId
	w.entities = append(w.entities, e)
	w.index.Put(e.Id, e)

	w.logger.Debug("entity added",
		zap.Uint32("id", uint32(e.Id)),
		zap.String("name", e.Name),
		zap.Int("modules", e.ModuleCount()))
	return nil
}

// Remove calls OnRemove on e and drops it from the world. Its collision
// modules leave the registry before Remove returns. It reports false if e is
// not in this world.
func (w *World) Remove(e *Entity) bool {
	if e.world != w {
		return false
	}
	idx := slices.Index(w.entities, e)
	if idx < 0 {
		return false
	}

	e.OnRemove()
	w.entities = slices.Delete(w.entities, idx, idx+1)
	w.index.Del(e.Id)
	e.world = nil

	w.logger.Debug("entity removed",
		zap.Uint32("id", uint32(e.Id)),
		zap.String("name", e.Name))
	return true
}

// Entity looks up an entity by id.
func (w *World) Entity(id EntityId) (*Entity, bool) {
	return w.index.Get(id)
}

// Entities iterates the live entities in update order.
func (w *World) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range w.entities {
			if !yield(e) {
				return
			}
		}
	}
}

func (w *World) Len() int {
	return len(w.entities)
}

// Once advances the world by dt seconds, clamped to [0, max delta]. Entities
// removed during the tick are skipped. The first update error stops the tick,
// but queued commands are still flushed.
func (w *World) Once(dt float64) error {
	dt = min(max(dt, 0), w.maxDelta)
	start := time.Now()

	w.registry.Step()
	w.scratch = append(w.scratch[:0], w.entities...)

	var err error
	for _, e := range w.scratch {
		if e.removed || e.world != w {
			continue
		}
		if err = e.Update(dt); err != nil {
			break
		}
	}
	clear(w.scratch)

	err = errors.Join(err, w.commands.flush(w))
	w.stats.record(time.Since(start), dt)
	return err
}

// Run calls Once at the given interval until ctx is done or an update fails.
// The delta time is the wall time since the previous tick.
func (w *World) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := w.Once(dt); err != nil {
				w.logger.Error("tick failed", zap.Error(err))
				return err
			}
		}
	}
}

// Draw draws every live entity in update order.
func (w *World) Draw(canvas Canvas) {
	for _, e := range w.entities {
		e.Draw(canvas)
	}
}
