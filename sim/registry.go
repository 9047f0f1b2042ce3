package sim

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/kinetic/vec"
	"go.uber.org/zap"
)

// LayerId tags a collision group. Two collision modules only test against each
// other when they share a layer.
type LayerId int

// DefaultLayer is used when a collision module lists no layers.
const DefaultLayer LayerId = 0

// CollisionEvent describes one resolved overlap between two entities.
type CollisionEvent struct {
	Tick        uint64
	Layer       LayerId
	Entity      *Entity
	Other       *Entity
	Penetration vec.Vec2
}

// EventSink receives resolved collisions, once per pair per tick.
type EventSink interface {
	EmitCollision(event CollisionEvent)
}

type layerEntry struct {
	entity *Entity
	module *CollisionModule
}

type layerBucket struct {
	entries []layerEntry
}

// membership records where a module sits inside one layer bucket.
type membership struct {
	layer LayerId
	index int
}

type pairKey struct {
	lo, hi uint64
}

// LayerRegistry maps layer ids to the collision modules registered on them.
// It is owned by a World (or the caller) and handed to each CollisionModule at
// construction. Modules remember their index in every bucket so removal is a
// swap with the last entry instead of a scan.
type LayerRegistry struct {
	layers *intmap.Map[LayerId, *layerBucket]
	ids    []LayerId

	nextSerial uint64
	tick       uint64
	collisions uint64
	resolved   map[pairKey]struct{}
	sink       EventSink
	logger     *zap.Logger

	warnedDefaultLayer bool
}

// NewLayerRegistry creates an empty registry.
func NewLayerRegistry() *LayerRegistry {
	return &LayerRegistry{
		layers:   intmap.New[LayerId, *layerBucket](8),
		resolved: make(map[pairKey]struct{}),
		logger:   zap.NewNop(),
	}
}

// SetSink routes collision events to sink. A nil sink disables events.
func (r *LayerRegistry) SetSink(sink EventSink) {
	r.sink = sink
}

// Step starts a new tick. Pair notifications are deduplicated per tick, so the
// owner of the registry must call Step once before updating entities; World
// does this in Once.
func (r *LayerRegistry) Step() {
	r.tick++
	clear(r.resolved)
}

// Collisions returns the number of pairs resolved since the registry was
// created, counted once per pair per tick.
func (r *LayerRegistry) Collisions() uint64 {
	return r.collisions
}

// Tick returns the number of Step calls so far.
func (r *LayerRegistry) Tick() uint64 {
	return r.tick
}

// Layers returns the ids of all layers that have ever held a module, in
// ascending order.
func (r *LayerRegistry) Layers() []LayerId {
	return slices.Clone(r.ids)
}

// Len returns the number of modules registered on layer.
func (r *LayerRegistry) Len(layer LayerId) int {
	bucket, ok := r.layers.Get(layer)
	if !ok {
		return 0
	}
	return len(bucket.entries)
}

// Entries iterates the modules on layer in bucket order.
func (r *LayerRegistry) Entries(layer LayerId) iter.Seq2[*Entity, *CollisionModule] {
	return func(yield func(*Entity, *CollisionModule) bool) {
		bucket, ok := r.layers.Get(layer)
		if !ok {
			return
		}
		for _, entry := range bucket.entries {
			if !yield(entry.entity, entry.module) {
				return
			}
		}
	}
}

func (r *LayerRegistry) serial() uint64 {
	r.nextSerial++
	return r.nextSerial
}

func (r *LayerRegistry) register(m *CollisionModule, layer LayerId) membership {
	bucket, ok := r.layers.Get(layer)
	if !ok {
		bucket = &layerBucket{}
		r.layers.Put(layer, bucket)
		idx, _ := slices.BinarySearch(r.ids, layer)
		r.ids = slices.Insert(r.ids, idx, layer)
	}

	bucket.entries = append(bucket.entries, layerEntry{entity: m.Parent(), module: m})
	return membership{layer: layer, index: len(bucket.entries) - 1}
}

func (r *LayerRegistry) unregister(ms membership) {
	bucket, ok := r.layers.Get(ms.layer)
	if !ok || ms.index >= len(bucket.entries) {
		return
	}

	last := len(bucket.entries) - 1
	if ms.index != last {
		moved := bucket.entries[last]
		bucket.entries[ms.index] = moved
		moved.module.reindex(ms.layer, ms.index)
	}
	bucket.entries[last] = layerEntry{}
	bucket.entries = bucket.entries[:last]
}

// snapshot appends the entries of layer to buf so callers can iterate while
// modules are being removed.
func (r *LayerRegistry) snapshot(layer LayerId, buf []layerEntry) []layerEntry {
	bucket, ok := r.layers.Get(layer)
	if !ok {
		return buf
	}
	return append(buf, bucket.entries...)
}

// claimPair reports whether the pair has not been notified yet this tick, and
// marks it as notified.
func (r *LayerRegistry) claimPair(a, b *CollisionModule) bool {
	key := pairKey{lo: a.serial, hi: b.serial}
	if key.lo > key.hi {
		key.lo, key.hi = key.hi, key.lo
	}
	if _, ok := r.resolved[key]; ok {
		return false
	}
	r.resolved[key] = struct{}{}
	r.collisions++
	return true
}

func (r *LayerRegistry) emit(event CollisionEvent) {
	if r.sink == nil {
		return
	}
	event.Tick = r.tick
	r.sink.EmitCollision(event)
}
