package game

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/nivrem/killer-roulette-backend/internal"
)

// =============================================================================
// ROULETTE ENGINE
// =============================================================================

// StartRoulette begins an accelerating selection run over the room's alive
// players. Starting a run cancels any live prior timer for the room, so at
// most one run is ever ticking. With fewer than two alive players the engine
// stays idle.
func (h *Hub) StartRoulette(roomName string) {
	room := h.registry.Lookup(roomName)
	if room == nil {
		return
	}

	// --- Critical section ---
	room.Mu.Lock()

	// Cancel any existing timer before arming a new one
	if room.Roulette != nil && room.Roulette.Cancel != nil {
		room.Roulette.Cancel()
		room.Roulette.IsActive = false
	}

	room.CurrentSelection = ""

	// Fixed-order snapshot; eliminations during the run do not alter it.
	alive := room.AlivePlayers()
	if len(alive) < internal.MinPlayersToStart {
		log.Printf("[StartRoulette] Room %s: Not enough players for roulette (%d)",
			room.Name, len(alive))
		room.RouletteRunning = false
		room.Mu.Unlock()
		return
	}

	ids := make([]string, len(alive))
	names := make([]string, len(alive))
	for i, player := range alive {
		ids[i] = player.Id
		names[i] = player.Name
	}

	targetRotations := internal.RouletteMinRotations - 1 + h.roller.Roll(internal.RouletteRotationRange)

	ctx, cancel := context.WithCancel(room.Context)
	room.Roulette = &internal.RouletteTimer{
		TargetRotations: targetRotations,
		IsActive:        true,
		Context:         ctx,
		Cancel:          cancel,
	}
	room.RouletteRunning = true

	log.Printf("[StartRoulette] Room %s: Starting roulette (players=%d, targetRotations=%d)",
		room.Name, len(ids), targetRotations)

	room.Mu.Unlock()
	// --- End critical section ---

	h.sender.ToRoom(room, internal.Message[any]{
		Type: "rouletteStarting",
		Data: internal.RouletteStartingData{TotalRotations: targetRotations},
	})

	go h.runRoulette(room, ctx, ids, names, targetRotations)
}

// runRoulette drives the tick loop for one run. Speed only changes on
// rotation boundaries; the timer is re-armed at the current speed each tick.
func (h *Hub) runRoulette(room *internal.Room, ctx context.Context, ids, names []string, targetRotations int) {
	speed := float64(internal.RouletteStartSpeed)
	rotations := 0
	currentIndex := 0

	timer := time.NewTimer(h.tickDuration(speed))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[runRoulette] Room %s: Run cancelled before completion", room.Name)
			return
		case <-timer.C:
		}
		if ctx.Err() != nil {
			return
		}

		h.sender.ToRoom(room, internal.Message[any]{
			Type: "rouletteUpdate",
			Data: internal.RouletteUpdateData{
				SelectedName:    names[currentIndex],
				CurrentRotation: rotations,
				TotalRotations:  targetRotations,
				Speed:           int(speed),
			},
		})

		currentIndex = (currentIndex + 1) % len(ids)

		if currentIndex == 0 {
			rotations++
			log.Printf("[runRoulette] Room %s: Rotation %d/%d, Speed: %dms",
				room.Name, rotations, targetRotations, int(speed))

			if rotations >= targetRotations {
				h.finishRoulette(room, ctx, ids, names)
				return
			}

			speed = math.Min(internal.RouletteSpeedCap, speed*internal.RouletteSpeedFactor)
		}

		timer.Reset(h.tickDuration(speed))
	}
}

// finishRoulette records the selection and emits the stop event. The final
// pick is the last player of the start-time snapshot; the randomized rotation
// count never changes it. That matches the legacy stopping rule verbatim.
func (h *Hub) finishRoulette(room *internal.Room, ctx context.Context, ids, names []string) {
	selectedID := ids[len(ids)-1]
	selectedName := names[len(names)-1]

	// --- Critical section ---
	room.Mu.Lock()

	// A newer run owns the room now, this one is stale
	if room.Roulette == nil || room.Roulette.Context != ctx {
		room.Mu.Unlock()
		return
	}

	room.Roulette.IsActive = false
	room.RouletteRunning = false
	room.CurrentSelection = selectedID
	isKiller := selectedID == room.Killer

	log.Printf("[finishRoulette] Room %s: Final selection: %s (Killer: %t)",
		room.Name, selectedName, isKiller)

	room.Mu.Unlock()
	// --- End critical section ---

	h.sender.ToRoom(room, internal.Message[any]{
		Type: "rouletteStop",
		Data: internal.RouletteStopData{
			SelectedId:   selectedID,
			SelectedName: selectedName,
			IsKiller:     isKiller,
		},
	})
}

func (h *Hub) tickDuration(speed float64) time.Duration {
	return time.Duration(speed) * h.tickUnit
}
