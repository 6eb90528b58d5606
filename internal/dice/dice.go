package dice

import (
	"math/rand"
	"sync"
	"time"
)

// Roller provides the randomness for killer assignment and rotation draws
type Roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new roller
func New(cfg *Config) *Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &Roller{
		random: random,
	}
}

// Roll generates a uniform draw in [1, sides]
func (r *Roller) Roll(sides int) int {
	if sides < 1 {
		sides = 6 // Default to 6-sided die
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}
