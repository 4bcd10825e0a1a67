package tetris

import "math/rand/v2"

// Randomizer produces the spawn order as a FIFO queue of catalog indices,
// topped up with a fresh permutation of all indices whenever fewer than one
// full set remains.
type Randomizer struct {
	size  int
	rng   *rand.Rand
	queue []int
}

// NewRandomizer creates a randomizer over size shapes drawing from src.
// The queue starts with one batch.
func NewRandomizer(size int, src rand.Source) *Randomizer {
	r := &Randomizer{
		size: size,
		rng:  rand.New(src),
	}
	r.queue = r.NextBatch()
	return r
}

// NewSeededRandomizer creates a randomizer with a PCG source seeded from seed.
func NewSeededRandomizer(size int, seed uint64) *Randomizer {
	return NewRandomizer(size, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NextBatch returns a uniformly random permutation of all shape indices.
func (r *Randomizer) NextBatch() []int {
	return r.rng.Perm(r.size)
}

// Next removes and returns the index at the front of the queue.
func (r *Randomizer) Next() int {
	next := r.queue[0]
	r.queue = r.queue[1:]
	if len(r.queue) < r.size {
		r.queue = append(r.queue, r.NextBatch()...)
	}
	return next
}

// Peek returns up to n upcoming indices without consuming them.
func (r *Randomizer) Peek(n int) []int {
	if n > len(r.queue) {
		n = len(r.queue)
	}
	out := make([]int, n)
	copy(out, r.queue)
	return out
}

// Len returns the number of queued indices.
func (r *Randomizer) Len() int {
	return len(r.queue)
}
