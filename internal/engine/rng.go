package engine

import "math/rand"

// xoshiro128 implements xoshiro128** as a rand.Source64. It is the sole
// randomness source of a match: every probabilistic decision in the engine
// draws from one shared stream in a fixed order, so a seed fully determines
// a match.
type xoshiro128 struct {
	s [4]uint32
}

func rotl32(x uint32, k uint) uint32 {
	return (x << k) | (x >> (32 - k))
}

func newXoshiro128(seed int64) *xoshiro128 {
	// Expand the 64-bit seed into four non-zero 32-bit words via splitmix64.
	x := &xoshiro128{}
	sm := uint64(seed)
	for i := 0; i < 4; i++ {
		sm += 0x9e3779b97f4a7c15
		z := sm
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z ^= z >> 31
		x.s[i] = uint32(z)
	}
	if x.s[0]|x.s[1]|x.s[2]|x.s[3] == 0 {
		x.s[0] = 1
	}
	return x
}

func (x *xoshiro128) next() uint32 {
	result := rotl32(x.s[1]*5, 7) * 9
	t := x.s[1] << 9
	x.s[2] ^= x.s[0]
	x.s[3] ^= x.s[1]
	x.s[1] ^= x.s[2]
	x.s[0] ^= x.s[3]
	x.s[2] ^= t
	x.s[3] = rotl32(x.s[3], 11)
	return result
}

func (x *xoshiro128) Uint64() uint64 {
	hi := uint64(x.next())
	lo := uint64(x.next())
	return hi<<32 | lo
}

func (x *xoshiro128) Int63() int64 {
	return int64(x.Uint64() >> 1)
}

// Seed satisfies rand.Source. Reseeding mid-match would break replays, so it
// reinitializes the full state from the given value.
func (x *xoshiro128) Seed(seed int64) {
	*x = *newXoshiro128(seed)
}

// Rand wraps *rand.Rand over the xoshiro source with the draw helpers the
// engine uses.
type Rand struct {
	*rand.Rand
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed int64) *Rand {
	return &Rand{Rand: rand.New(newXoshiro128(seed))}
}

// Chance returns true with probability p. Out-of-range p clamps to [0,1].
func (r *Rand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// Between returns a uniform value in [lo, hi).
func (r *Rand) Between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// WeightedIndex draws one index from the weight slice proportionally to its
// weight. Non-positive weights never win. Returns -1 when all weights are
// non-positive.
func (r *Rand) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	roll := r.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return i
		}
	}
	// Float accumulation can leave roll at ~0 after the loop; fall back to
	// the last positive weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}

// Noise returns a uniform value in [-amp, +amp], used for score tie-breaking.
func (r *Rand) Noise(amp float64) float64 {
	return r.Between(-amp, amp)
}
