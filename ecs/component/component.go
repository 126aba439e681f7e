package component

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID indexes a world's component stores. Zero is never issued.
type ComponentID uint32

// ComponentHandle is the typed key for one component kind. The zero handle
// is invalid.
type ComponentHandle[T any] struct {
	id ComponentID
}

var registry struct {
	mu    sync.Mutex
	names []string
}

// NewComponent registers a new kind for T. Registering the same T twice
// yields two distinct kinds.
func NewComponent[T any]() ComponentHandle[T] {
	name := reflect.TypeOf((*T)(nil)).Elem().String()

	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.names = append(registry.names, name)
	return ComponentHandle[T]{id: ComponentID(len(registry.names))}
}

func (h ComponentHandle[T]) ID() ComponentID { return h.id }

func (h ComponentHandle[T]) Valid() bool { return h.id != 0 }

func (h ComponentHandle[T]) String() string { return h.id.String() }

// String names the Go type the kind was registered for.
func (id ComponentID) String() string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if id == 0 || int(id) > len(registry.names) {
		return fmt.Sprintf("component(%d)", uint32(id))
	}
	return registry.names[id-1]
}
