package physics

import (
	"fmt"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Kind tags an entity so collision rules and sprites can be looked up.
// Each game declares its own kinds starting at 1.
type Kind uint8

// KindNone is the zero kind; it never collides.
const KindNone Kind = 0

// Entity is a game object owned by exactly one game instance.
type Entity struct {
	ID    int // Creation order within the world
	Kind  Kind
	Alive bool
	HP    int // Hits left, for kinds that take damage
	Flags int // Game-specific status bits
	Mark  int // Game-specific scratch value (e.g. tick of last response)
	core.Body
}

// Validate returns an error if the entity holds non-finite numbers.
func (e *Entity) Validate() error {
	if !e.Valid() {
		return fmt.Errorf("physics: entity %d (kind %d) has non-finite state %+v", e.ID, e.Kind, e.Body)
	}
	return nil
}

// World owns a game's entities in creation order.
type World struct {
	entities []*Entity
	nextID   int
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{entities: make([]*Entity, 0, 64)}
}

// Spawn adds a live entity and assigns the next creation-order ID.
func (w *World) Spawn(kind Kind, body core.Body) *Entity {
	e := &Entity{
		ID:    w.nextID,
		Kind:  kind,
		Alive: true,
		HP:    1,
		Body:  body,
	}
	w.nextID++
	w.entities = append(w.entities, e)
	return e
}

// All returns every entity, alive or not, in creation order.
func (w *World) All() []*Entity {
	return w.entities
}

// Each calls fn for every live entity of the given kind in creation order.
func (w *World) Each(kind Kind, fn func(*Entity)) {
	for _, e := range w.entities {
		if e.Alive && e.Kind == kind {
			fn(e)
		}
	}
}

// Count returns the number of live entities of the given kind.
func (w *World) Count(kind Kind) int {
	n := 0
	w.Each(kind, func(*Entity) { n++ })
	return n
}

// First returns the first live entity of the given kind, or nil.
func (w *World) First(kind Kind) *Entity {
	for _, e := range w.entities {
		if e.Alive && e.Kind == kind {
			return e
		}
	}
	return nil
}

// Sweep drops dead entities. Creation order of the survivors is kept.
func (w *World) Sweep() {
	live := w.entities[:0]
	for _, e := range w.entities {
		if e.Alive {
			live = append(live, e)
		}
	}
	clear(w.entities[len(live):])
	w.entities = live
}

// Validate checks every live entity for non-finite state.
func (w *World) Validate() error {
	for _, e := range w.entities {
		if !e.Alive {
			continue
		}
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes every entity and restarts ID assignment.
func (w *World) Clear() {
	clear(w.entities)
	w.entities = w.entities[:0]
	w.nextID = 0
}
