package usecase

import (
	"sync"
)

// Registry owns the live rooms, keyed by order ID. Rooms are created
// lazily on the first join and evicted once the last participant
// leaves; updates without a room publish through the cache alone.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// Get returns the live room for an order, if any.
func (reg *Registry) Get(orderID string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[orderID]
	return room, ok
}

// GetOrCreate returns the room for an order, invoking create under the
// registry lock when no room exists yet. Concurrent callers for the
// same order therefore observe a single room instance.
func (reg *Registry) GetOrCreate(orderID string, create func() (*Room, error)) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if room, ok := reg.rooms[orderID]; ok {
		return room, nil
	}

	room, err := create()
	if err != nil {
		return nil, err
	}
	reg.rooms[orderID] = room
	return room, nil
}

// RemoveIfEmpty evicts the room when it has no participants left. The
// emptiness check takes the room mutex, so an update being serialized at
// eviction time completes before the room is dropped.
func (reg *Registry) RemoveIfEmpty(orderID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[orderID]
	if !ok {
		return
	}
	if room.Empty() {
		delete(reg.rooms, orderID)
	}
}

// Len reports the number of live rooms.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}
