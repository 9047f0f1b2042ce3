package sim

import "errors"

// Commands buffers structural changes requested while the world is updating.
// They are applied at the end of World.Once, after every entity has been
// updated.
type Commands struct {
	spawns  []*Entity
	removes []*Entity
	defers  []func()
}

// Spawn queues an entity to be added to the world.
func (c *Commands) Spawn(e *Entity) {
	c.spawns = append(c.spawns, e)
}

// Remove queues an entity for removal.
func (c *Commands) Remove(e *Entity) {
	c.removes = append(c.removes, e)
}

// Defer queues a function to run after spawns and removals.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued commands.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.removes) + len(c.defers)
}

// flush applies removals, then spawns, then deferred functions, and resets
// the buffer. An entity removed and spawned in the same frame stays removed.
func (c *Commands) flush(w *World) error {
	removed := make(map[*Entity]bool, len(c.removes))
	for _, e := range c.removes {
		w.Remove(e)
		removed[e] = true
	}

	var errs []error
	for _, e := range c.spawns {
		if removed[e] {
			continue
		}
		if err := w.Add(e); err != nil {
			errs = append(errs, err)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	clear(c.removes)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}
