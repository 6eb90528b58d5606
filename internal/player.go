package internal

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Player struct {
	Id   string          `json:"id"`
	Conn *websocket.Conn `json:"-"`
	Name string          `json:"name"`

	// Game state
	Eliminated bool      `json:"eliminated"`
	IsReady    bool      `json:"is_ready"`
	JoinedAt   time.Time `json:"joined_at"`

	Mu sync.RWMutex `json:"-"`
}

// PlayerSnapshot is the roster entry broadcast in updatePlayers. Selected
// marks the current roulette outcome, if any.
type PlayerSnapshot struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Eliminated bool   `json:"eliminated"`
	Selected   bool   `json:"selected"`
}

func CreatePlayerSnapshot(p *Player, selected bool) PlayerSnapshot {
	return PlayerSnapshot{
		ID:         p.Id,
		Name:       p.Name,
		Eliminated: p.Eliminated,
		Selected:   selected,
	}
}

func (p *Player) SafeWriteJSON(v any) error {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	return p.Conn.WriteJSON(v)
}
