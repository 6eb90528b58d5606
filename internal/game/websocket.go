package game

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nivrem/killer-roulette-backend/internal"
)

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the HTTP connection and starts the per-connection
// read loop. The connection only becomes a roster member through joinRoom and
// setName events.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade failed: ", err)
		return
	}

	player := &internal.Player{
		Id:       uuid.NewString(),
		Conn:     conn,
		IsReady:  true,
		JoinedAt: time.Now(),
	}

	log.Printf("[HandleWebSocket] Connection %s established", player.Id)

	go h.handleMessages(player)
}

// handleMessages routes incoming events for one connection. Events from a
// single connection are processed in arrival order; malformed payloads are
// dropped silently.
func (h *Hub) handleMessages(player *internal.Player) {
	defer func() {
		player.Conn.Close()
		h.HandleDisconnect(player)
	}()

	for {
		_, rawMessage, err := player.Conn.ReadMessage()
		if err != nil {
			log.Printf("[handleMessages] Read error for connection %s: %v", player.Id, err)
			break
		}

		var baseMsg internal.Message[json.RawMessage]
		if err := json.Unmarshal(rawMessage, &baseMsg); err != nil {
			log.Printf("[handleMessages] Failed to parse base message: %v", err)
			continue
		}

		switch baseMsg.Type {
		case "joinRoom":
			var data internal.JoinRoomData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				continue
			}
			h.HandleJoinRoom(player, data.Room)

		case "setName":
			var data internal.SetNameData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				continue
			}
			h.HandleSetName(player, data.Room, data.Name)

		case "startGame":
			var data internal.JoinRoomData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				continue
			}
			h.HandleStartGame(player, data.Room)

		case "accusation":
			var data internal.TargetData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				continue
			}
			h.HandleAccusation(player, data.Room, data.Target)

		case "elimination":
			var data internal.TargetData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				continue
			}
			h.HandleElimination(player, data.Room, data.Target)

		case "skipTurn":
			var data internal.JoinRoomData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				continue
			}
			h.HandleSkipTurn(player, data.Room)
		}
	}
}
