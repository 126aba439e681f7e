package ecs

import (
	"github.com/milk9111/firstperson/ecs/component"
)

// System updates a world once per frame.
type System interface {
	Update(w *World, dt float64)
}

// World owns entities, component storage, and system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*sparseSet
	scheduler *Scheduler
	events    EventQueue
	frame     uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*sparseSet),
		scheduler: NewScheduler(),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update runs all systems once with the frame delta in seconds. Events raised
// during the previous update are dropped first, so they stay readable between
// updates.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.events.flush()
	w.frame++
	w.scheduler.Update(w, dt)
}

// Frame returns the number of completed or running updates.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *sparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*sparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}

// Query returns entities that have every listed component kind.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	// iterate the smallest set
	var smallest *sparseSet
	for _, id := range ids {
		s := w.store(id, false)
		if s.len() == 0 {
			return nil
		}
		if smallest == nil || s.len() < smallest.len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.len())
	for _, e := range smallest.denseEntities {
		match := true
		for _, id := range ids {
			if !w.store(id, false).has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity that has every listed component kind.
func (w *World) First(ids ...component.ComponentID) (Entity, bool) {
	ents := w.Query(ids...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
