package game

import (
	"log"
	"slices"
	"time"

	"github.com/nivrem/killer-roulette-backend/internal"
)

// =============================================================================
// LOBBY - JOIN, NAMING, GAME START
// =============================================================================

// HandleJoinRoom resolves (or creates) the room and acknowledges the joiner.
// The player only enters the roster once it sets a name.
func (h *Hub) HandleJoinRoom(player *internal.Player, roomName string) {
	if roomName == "" {
		return
	}

	h.registry.GetOrCreate(roomName)

	h.sender.ToPlayer(player, internal.Message[any]{
		Type: "roomJoined",
		Data: roomName,
	})
}

// HandleSetName inserts (or renames) the player in the room roster. The first
// named player is offered the start control.
func (h *Hub) HandleSetName(player *internal.Player, roomName, name string) {
	room := h.registry.Lookup(roomName)
	if room == nil {
		return
	}

	// --- Critical section ---
	room.Mu.Lock()

	if _, exists := room.Players[player.Id]; !exists {
		room.JoinOrder = append(room.JoinOrder, player.Id)
	}
	// Insert/overwrite semantics: a renamed player comes back fresh.
	player.Name = name
	player.Eliminated = false
	player.IsReady = true
	if player.JoinedAt.IsZero() {
		player.JoinedAt = time.Now()
	}
	room.Players[player.Id] = player
	delete(room.EliminatedPlayers, player.Id)

	firstPlayer := len(room.Players) == 1

	log.Printf("[HandleSetName] Room %s: Player %s is now %q (roster=%d)",
		room.Name, player.Id, name, len(room.Players))

	room.Mu.Unlock()
	// --- End critical section ---

	if firstPlayer {
		h.sender.ToPlayer(player, internal.Message[any]{Type: "showStartButton"})
	}

	h.broadcastRoster(room)
}

// HandleStartGame assigns the initial killer and kicks off the first roulette
// run after the start delay. Silent no-op below the player minimum.
func (h *Hub) HandleStartGame(player *internal.Player, roomName string) {
	room := h.registry.Lookup(roomName)
	if room == nil {
		return
	}

	// --- Critical section ---
	room.Mu.Lock()

	if !room.CanStartGame() {
		log.Printf("[HandleStartGame] Room %s: Not enough players (%d/%d)",
			room.Name, len(room.Players), internal.MinPlayersToStart)
		room.Mu.Unlock()
		return
	}

	killerID := h.assignInitialKiller(room)
	killer := room.Players[killerID]

	log.Printf("[HandleStartGame] Room %s: Initial killer assigned: %s (%s)",
		room.Name, killerID, killer.Name)

	room.Mu.Unlock()
	// --- End critical section ---

	h.sender.ToPlayer(killer, internal.Message[any]{Type: "youAreKiller"})
	h.sender.ToRoom(room, internal.Message[any]{Type: "gameStarted"})

	h.scheduleRoulette(room.Name, h.startDelay)
}

// assignInitialKiller picks a killer uniformly over the roster. Caller holds
// the room lock and has checked the roster is non-empty.
func (h *Hub) assignInitialKiller(room *internal.Room) string {
	idx := h.roller.Roll(len(room.JoinOrder)) - 1
	room.Killer = room.JoinOrder[idx]
	return room.Killer
}

// HandleDisconnect removes the connection from every room holding it,
// repairing the killer role and tearing down rooms that empty out.
func (h *Hub) HandleDisconnect(player *internal.Player) {
	for _, room := range h.registry.All() {
		// --- Critical section ---
		room.Mu.Lock()

		if _, exists := room.Players[player.Id]; !exists {
			room.Mu.Unlock()
			continue
		}

		delete(room.Players, player.Id)
		delete(room.EliminatedPlayers, player.Id)
		room.JoinOrder = slices.DeleteFunc(room.JoinOrder, func(id string) bool {
			return id == player.Id
		})
		if room.CurrentSelection == player.Id {
			room.CurrentSelection = ""
		}

		var newKiller *internal.Player
		if room.Killer == player.Id && len(room.Players) > 0 {
			newKillerID := h.reassignKiller(room)
			newKiller = room.Players[newKillerID]
			log.Printf("[HandleDisconnect] Room %s: Killer left, role moved to %s (%s)",
				room.Name, newKillerID, newKiller.Name)
		}

		empty := len(room.Players) == 0

		log.Printf("[HandleDisconnect] Room %s: Player %s (%s) removed (roster=%d)",
			room.Name, player.Id, player.Name, len(room.Players))

		room.Mu.Unlock()
		// --- End critical section ---

		if newKiller != nil {
			h.sender.ToPlayer(newKiller, internal.Message[any]{Type: "youAreKiller"})
		}

		if empty {
			h.destroyRoom(room)
			continue
		}

		h.broadcastRoster(room)
	}
}

// reassignKiller hands the role to the first non-eliminated roster member in
// join order, falling back to the first member when no one is left alive.
// Caller holds the room lock and has checked the roster is non-empty.
func (h *Hub) reassignKiller(room *internal.Room) string {
	for _, id := range room.JoinOrder {
		if player := room.Players[id]; player != nil && !player.Eliminated {
			room.Killer = id
			return id
		}
	}
	room.Killer = room.JoinOrder[0]
	return room.Killer
}

// broadcastRoster sends the updatePlayers snapshot to the room.
func (h *Hub) broadcastRoster(room *internal.Room) {
	room.Mu.RLock()
	snapshots := room.RosterSnapshots()
	room.Mu.RUnlock()

	h.sender.ToRoom(room, internal.Message[any]{
		Type: "updatePlayers",
		Data: internal.UpdatePlayersData{Players: snapshots},
	})
}

// destroyRoom cancels any live roulette timer and drops the room from the
// registry. Dangling timer callbacks must never touch a deleted room.
func (h *Hub) destroyRoom(room *internal.Room) {
	room.Mu.Lock()
	if room.Roulette != nil && room.Roulette.Cancel != nil {
		room.Roulette.Cancel()
		room.Roulette.IsActive = false
	}
	room.RouletteRunning = false
	if room.Cancel != nil {
		room.Cancel()
	}
	room.Mu.Unlock()

	h.registry.Remove(room.Name)
	log.Printf("[destroyRoom] Room %s destroyed", room.Name)
}

// scheduleRoulette starts a roulette run after the pacing delay. The room is
// re-resolved by name when the timer fires, so a destroyed room is a no-op.
func (h *Hub) scheduleRoulette(roomName string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		h.StartRoulette(roomName)
	})
}
