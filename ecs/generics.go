package ecs

import (
	"fmt"

	"github.com/milk9111/firstperson/ecs/component"
)

// Add attaches or replaces the component of kind h on e.
func Add[T any](w *World, e Entity, h component.ComponentHandle[T], value *T) error {
	if w == nil || !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !h.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("add %s: %w", h, component.ErrNilComponent)
	}
	w.store(h.ID(), true).set(e, value)
	return nil
}

// Remove detaches the component of kind h from e.
func Remove[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	s := w.store(h.ID(), false)
	return s != nil && s.remove(e)
}

// Has reports whether e carries a component of kind h.
func Has[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	return w.store(h.ID(), false).has(e)
}

// Get returns the stored component pointer; mutations are visible to every
// later reader without writing back.
func Get[T any](w *World, e Entity, h component.ComponentHandle[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	v := w.store(h.ID(), false).get(e)
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

// ForEach calls fn for every entity carrying kind h.
func ForEach[T any](w *World, h component.ComponentHandle[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(h.ID(), false)
	if s == nil {
		return
	}
	// copy so fn may add or remove components
	ents := append([]Entity(nil), s.denseEntities...)
	for _, e := range ents {
		if v, ok := s.get(e).(*T); ok {
			fn(e, v)
		}
	}
}

// ForEach2 calls fn for every entity carrying both kinds.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ha.ID(), hb.ID()) {
		a, okA := Get(w, e, ha)
		b, okB := Get(w, e, hb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}
