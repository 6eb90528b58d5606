package game

import (
	"time"

	"github.com/nivrem/killer-roulette-backend/internal"
	"github.com/nivrem/killer-roulette-backend/internal/dice"
)

// Hub owns the room registry and runs every game-state mutation. All roster,
// killer and roulette changes go through its handlers, serialized per room by
// the room mutex.
type Hub struct {
	registry *Registry
	roller   *dice.Roller
	sender   Sender

	startDelay   time.Duration
	resolveDelay time.Duration

	// tickUnit is the real duration of one roulette speed unit. Production
	// keeps the wire value (milliseconds); tests shrink it.
	tickUnit time.Duration
}

// Config for the hub; zero-value fields get defaults
type Config struct {
	Registry     *Registry
	Roller       *dice.Roller
	Sender       Sender
	StartDelay   time.Duration
	ResolveDelay time.Duration
	TickUnit     time.Duration
}

// New creates a hub wired to the given collaborators
func New(cfg *Config) *Hub {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry()
	}
	if cfg.Roller == nil {
		cfg.Roller = dice.New(nil)
	}
	if cfg.Sender == nil {
		cfg.Sender = NewWSSender()
	}
	if cfg.StartDelay == 0 {
		cfg.StartDelay = internal.RouletteStartDelay
	}
	if cfg.ResolveDelay == 0 {
		cfg.ResolveDelay = internal.RouletteResolveDelay
	}
	if cfg.TickUnit == 0 {
		cfg.TickUnit = time.Millisecond
	}

	return &Hub{
		registry:     cfg.Registry,
		roller:       cfg.Roller,
		sender:       cfg.Sender,
		startDelay:   cfg.StartDelay,
		resolveDelay: cfg.ResolveDelay,
		tickUnit:     cfg.TickUnit,
	}
}

// Registry exposes the room store for the HTTP layer and tests.
func (h *Hub) Registry() *Registry {
	return h.registry
}
