package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Sides of the standard die used by the game.
const Sides = 6

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go example.com/dice-duel/internal/dice Roller

// Roller draws a single die value in [1, sides].
type Roller interface {
	Roll(sides int) int
}

// Config for the random roller.
type Config struct {
	// Seed makes rolls reproducible; 0 means seed from crypto/rand.
	Seed int64
}

// RandomRoller is a Roller backed by math/rand. Safe for concurrent use.
type RandomRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

func New(cfg *Config) (*RandomRoller, error) {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		s, err := newSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}

	return &RandomRoller{
		random: rand.New(rand.NewSource(seed)),
	}, nil
}

// Roll returns a uniform value in [1, sides]. Non-positive sides fall back to a d6.
func (r *RandomRoller) Roll(sides int) int {
	if sides < 1 {
		sides = Sides
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}

func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
