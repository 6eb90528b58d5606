package game

import (
	"fmt"
	"log"

	"github.com/nivrem/killer-roulette-backend/internal"
)

// =============================================================================
// ROUND RESOLUTION - ACCUSATION, ELIMINATION, SKIP
// =============================================================================

// HandleAccusation resolves a claim that the accused player is the killer.
// Valid only while a roulette selection is pending; a correct accusation
// transfers the killer role to the accuser.
func (h *Hub) HandleAccusation(player *internal.Player, roomName, target string) {
	room := h.registry.Lookup(roomName)
	if room == nil {
		return
	}

	// --- Critical section ---
	room.Mu.Lock()

	if room.CurrentSelection == "" {
		room.Mu.Unlock()
		return
	}
	accuser := room.Players[player.Id]
	if accuser == nil {
		room.Mu.Unlock()
		return
	}

	accusedID := room.FindPlayerIDByName(target)

	var text string
	correct := accusedID != "" && accusedID == room.Killer
	if correct {
		oldKillerName := room.Players[room.Killer].Name
		room.Killer = player.Id

		log.Printf("[HandleAccusation] Room %s: Correct accusation, killer role moved from %s to %s",
			room.Name, oldKillerName, accuser.Name)
		text = fmt.Sprintf("%s correctly identified %s as the killer and is now the new killer!",
			accuser.Name, oldKillerName)
	} else {
		log.Printf("[HandleAccusation] Room %s: %s wrongly accused %s",
			room.Name, accuser.Name, target)
		text = fmt.Sprintf("%s wrongly accused %s. The game continues...", accuser.Name, target)
	}

	room.Mu.Unlock()
	// --- End critical section ---

	h.sender.ToRoom(room, internal.Message[any]{Type: "systemMessage", Data: text})
	if correct {
		h.sender.ToPlayer(accuser, internal.Message[any]{Type: "youAreKiller"})
	}

	h.scheduleRoulette(room.Name, h.resolveDelay)
}

// HandleElimination lets the killer remove a named player from play. The
// target is resolved among alive players only, so a dead name is a no-op.
// When one player remains the game ends and the room is destroyed.
func (h *Hub) HandleElimination(player *internal.Player, roomName, target string) {
	room := h.registry.Lookup(roomName)
	if room == nil {
		return
	}

	// --- Critical section ---
	room.Mu.Lock()

	if room.Killer != player.Id {
		room.Mu.Unlock()
		return
	}

	targetID := room.FindAliveIDByName(target)
	if targetID == "" {
		room.Mu.Unlock()
		return
	}

	room.Players[targetID].Eliminated = true
	room.EliminatedPlayers[targetID] = struct{}{}

	remaining := room.AliveCount()
	gameOver := room.IsGameOver()
	winnerName := ""
	if gameOver {
		winnerName = room.Players[room.Killer].Name
	}

	log.Printf("[HandleElimination] Room %s: %s eliminated (remaining=%d, gameOver=%t)",
		room.Name, target, remaining, gameOver)

	room.Mu.Unlock()
	// --- End critical section ---

	h.sender.ToRoom(room, internal.Message[any]{
		Type: "playerEliminated",
		Data: internal.PlayerEliminatedData{Name: target, Remaining: remaining},
	})

	if gameOver {
		h.sender.ToRoom(room, internal.Message[any]{Type: "gameOver", Data: winnerName})
		h.destroyRoom(room)
		return
	}

	h.scheduleRoulette(room.Name, h.resolveDelay)
}

// HandleSkipTurn lets the killer pass without eliminating anyone.
func (h *Hub) HandleSkipTurn(player *internal.Player, roomName string) {
	room := h.registry.Lookup(roomName)
	if room == nil {
		return
	}

	room.Mu.RLock()
	isKiller := room.Killer == player.Id
	room.Mu.RUnlock()

	if !isKiller {
		return
	}

	log.Printf("[HandleSkipTurn] Room %s: Killer passed their turn", room.Name)

	h.sender.ToRoom(room, internal.Message[any]{
		Type: "systemMessage",
		Data: "Killer passed their turn",
	})

	h.scheduleRoulette(room.Name, h.startDelay)
}
