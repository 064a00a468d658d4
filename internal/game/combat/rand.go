package combat

import "math/rand/v2"

// Rand is the random source of one battle. Float64 returns a value in [0, 1).
type Rand interface {
	Float64() float64
}

// NewRand returns a deterministic source for seed.
// Two sources built from the same seed yield the same sequence.
func NewRand(seed int64) Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// rollChance reports success for a percent chance.
func rollChance(rng Rand, percent float64) bool {
	return rng.Float64()*100.0 < percent
}
