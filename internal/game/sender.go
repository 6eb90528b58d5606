package game

import (
	"log"

	"github.com/nivrem/killer-roulette-backend/internal"
)

// =============================================================================
// BROADCASTING & MESSAGING
// =============================================================================

// Sender is the outbound half of the session gateway: deliver an event to one
// connection, or fan it out to every connection in a room. The production
// implementation writes JSON frames over each player's websocket.
type Sender interface {
	ToPlayer(player *internal.Player, msg internal.Message[any])
	ToRoom(room *internal.Room, msg internal.Message[any])
}

type wsSender struct{}

func NewWSSender() Sender {
	return wsSender{}
}

func (wsSender) ToPlayer(player *internal.Player, msg internal.Message[any]) {
	if player == nil || player.Conn == nil {
		return
	}
	if err := player.SafeWriteJSON(msg); err != nil {
		log.Printf("[ToPlayer] Failed for player %s (%s): %v", player.Id, player.Name, err)
	}
}

func (wsSender) ToRoom(room *internal.Room, msg internal.Message[any]) {
	// 1. Snapshot players under lock
	room.Mu.RLock()
	players := make([]*internal.Player, 0, len(room.Players))
	for _, player := range room.Players {
		players = append(players, player)
	}
	room.Mu.RUnlock()

	// 2. Iterate over snapshot and send
	successCount := 0
	for _, player := range players {
		if player.Conn == nil {
			continue
		}
		if err := player.SafeWriteJSON(msg); err != nil {
			log.Printf("[Broadcast][Room:%s] Failed for player %s (%s): %v",
				room.Name, player.Id, player.Name, err)
			continue
		}
		successCount++
	}
	log.Printf("[Broadcast][Room:%s] Sent %s to %d/%d players",
		room.Name, msg.Type, successCount, len(players))
}
