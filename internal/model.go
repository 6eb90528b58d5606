package internal

import (
	"context"
	"sync"
	"time"
)

const (
	MinPlayersToStart = 2

	// Pacing between game phases. Any delay >= 0 keeps the game correct,
	// these match the reference client's animations.
	RouletteStartDelay   = 1 * time.Second
	RouletteResolveDelay = 3 * time.Second

	// Roulette tick pacing, expressed in speed units (milliseconds on the
	// wire). Speed grows by RouletteSpeedFactor after every completed
	// rotation until RouletteSpeedCap.
	RouletteStartSpeed  = 100
	RouletteSpeedCap    = 1000
	RouletteSpeedFactor = 1.2

	// Target rotations are drawn uniformly from
	// [RouletteMinRotations, RouletteMinRotations+RouletteRotationRange-1].
	RouletteMinRotations  = 8
	RouletteRotationRange = 5
)

// RouletteTimer is the handle for one in-flight roulette run. At most one
// may be live per room; starting a new run cancels the previous context.
type RouletteTimer struct {
	TargetRotations int
	IsActive        bool
	Context         context.Context
	Cancel          context.CancelFunc
}

type Room struct {
	Name    string
	Players map[string]*Player

	// JoinOrder mirrors Players in insertion order so killer reassignment
	// and roulette snapshots iterate deterministically.
	JoinOrder []string

	// Game State
	Killer            string // conn id, empty before the game starts
	EliminatedPlayers map[string]struct{}
	CurrentSelection  string // outcome of the last completed roulette run
	RouletteRunning   bool

	// Timer
	Roulette *RouletteTimer

	// Concurrency control
	Mu sync.RWMutex

	// Context for cleanup
	Context context.Context
	Cancel  context.CancelFunc
}
