package internal

// Methods (Room Struct)
//
// These helpers do not lock; the caller holds room.Mu.

func (r *Room) AliveCount() int {
	count := 0
	for _, player := range r.Players {
		if !player.Eliminated {
			count++
		}
	}
	return count
}

// AlivePlayers returns the non-eliminated roster in join order. The roulette
// snapshots this at run start; later eliminations do not alter an in-flight
// run.
func (r *Room) AlivePlayers() []*Player {
	alive := make([]*Player, 0, len(r.Players))
	for _, playerID := range r.JoinOrder {
		if player := r.Players[playerID]; player != nil && !player.Eliminated {
			alive = append(alive, player)
		}
	}
	return alive
}

// FindPlayerIDByName returns the first roster member with the given display
// name, in join order. Names are not unique, first match wins.
func (r *Room) FindPlayerIDByName(name string) string {
	for _, playerID := range r.JoinOrder {
		if player := r.Players[playerID]; player != nil && player.Name == name {
			return playerID
		}
	}
	return ""
}

// FindAliveIDByName is FindPlayerIDByName restricted to non-eliminated
// players. Elimination targets resolve through this, so re-eliminating an
// already-dead name finds nothing.
func (r *Room) FindAliveIDByName(name string) string {
	for _, playerID := range r.JoinOrder {
		if player := r.Players[playerID]; player != nil && !player.Eliminated && player.Name == name {
			return playerID
		}
	}
	return ""
}

func (r *Room) IsGameOver() bool {
	return len(r.Players) > 0 && r.AliveCount() <= 1
}

func (r *Room) CanStartGame() bool {
	return len(r.Players) >= MinPlayersToStart
}

// RosterSnapshots builds the updatePlayers payload entries in join order.
func (r *Room) RosterSnapshots() []PlayerSnapshot {
	snapshots := make([]PlayerSnapshot, 0, len(r.Players))
	for _, playerID := range r.JoinOrder {
		if player := r.Players[playerID]; player != nil {
			snapshots = append(snapshots, CreatePlayerSnapshot(player, playerID == r.CurrentSelection))
		}
	}
	return snapshots
}
