package game

import "math/rand/v2"

// Random is the only randomness the simulation sees. *rand.Rand satisfies it.
type Random interface {
	IntN(n int) int
}

func NewRandom(seed uint64) Random {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Within returns a uniform integer in [lo, hi).
func Within(rng Random, lo, hi int) int {
	return lo + rng.IntN(hi-lo)
}

func Pick[T any](rng Random, items []T) T {
	return items[rng.IntN(len(items))]
}
