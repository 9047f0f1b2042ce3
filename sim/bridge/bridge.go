// Package bridge publishes resolved collisions into a Donburi world as typed
// events, so Donburi systems can react to the simulation.
//
// Usage:
//
//	ecsWorld := donburi.NewWorld()
//	world := sim.NewWorld(sim.WithEventSink(bridge.NewSink(ecsWorld)))
//	bridge.CollisionEventType.Subscribe(ecsWorld, onCollision)
//	...
//	world.Once(dt)
//	bridge.CollisionEventType.ProcessEvents(ecsWorld)
package bridge

import (
	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Collision is the Donburi payload for one resolved pair. Entities are
// referenced by id so events stay valid after the entities are removed.
type Collision struct {
	Tick        uint64
	Layer       sim.LayerId
	Entity      sim.EntityId
	Other       sim.EntityId
	EntityName  string
	OtherName   string
	Penetration vec.Vec2
}

// CollisionEventType is the Donburi event type collisions are published to.
var CollisionEventType = events.NewEventType[Collision]()

// Sink implements sim.EventSink on top of a Donburi world.
type Sink struct {
	world donburi.World
}

func NewSink(world donburi.World) *Sink {
	return &Sink{world: world}
}

// EmitCollision queues the event. It is delivered by ProcessEvents.
func (s *Sink) EmitCollision(event sim.CollisionEvent) {
	CollisionEventType.Publish(s.world, Collision{
		Tick:        event.Tick,
		Layer:       event.Layer,
		Entity:      event.Entity.Id,
		Other:       event.Other.Id,
		EntityName:  event.Entity.Name,
		OtherName:   event.Other.Name,
		Penetration: event.Penetration,
	})
}
