// Package randutil centralises how the simulator derives seedable random
// sources so every run is reproducible from a single int64 seed.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// WorkerSeed derives the seed for an independent worker. Worker 0 keeps the
// base seed so a single-worker run matches New(seed) exactly.
func WorkerSeed(seed int64, worker int) int64 {
	if worker == 0 {
		return seed
	}
	return int64(mix(uint64(seed) + uint64(worker)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
