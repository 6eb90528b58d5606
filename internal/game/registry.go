package game

import (
	"context"
	"log"
	"sync"

	"github.com/nivrem/killer-roulette-backend/internal"
)

// =============================================================================
// ROOM REGISTRY
// =============================================================================

// Registry is the process-wide room-name -> room store. It starts empty and
// is handed to the Hub rather than living as package state.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*internal.Room),
	}
}

// GetOrCreate retrieves an existing room or creates a new empty one.
func (reg *Registry) GetOrCreate(roomName string) *internal.Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if room, exists := reg.rooms[roomName]; exists {
		return room
	}

	ctx, cancel := context.WithCancel(context.Background())
	newRoom := &internal.Room{
		Name:              roomName,
		Players:           make(map[string]*internal.Player),
		JoinOrder:         make([]string, 0),
		EliminatedPlayers: make(map[string]struct{}),

		Killer:           "",
		CurrentSelection: "",
		RouletteRunning:  false,

		Context: ctx,
		Cancel:  cancel,

		Mu: sync.RWMutex{},
	}
	reg.rooms[roomName] = newRoom

	log.Printf("[GetOrCreate] Room %s created", roomName)
	return newRoom
}

// Lookup returns the room or nil if absent.
func (reg *Registry) Lookup(roomName string) *internal.Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[roomName]
}

// Remove deletes the room; no-op on an absent name.
func (reg *Registry) Remove(roomName string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.rooms[roomName]; exists {
		delete(reg.rooms, roomName)
		log.Printf("[Remove] Room %s removed from registry", roomName)
	}
}

// All snapshots the current rooms. Disconnect handling walks this to find
// every room holding a given connection.
func (reg *Registry) All() []*internal.Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rooms := make([]*internal.Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}
