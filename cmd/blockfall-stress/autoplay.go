package main

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// AutoplaySystem presses a random control on a fraction of frames.
type AutoplaySystem struct {
	rng  *rand.Rand
	rate float64
}

func NewAutoplaySystem(seed uint64, rate float64) *AutoplaySystem {
	return &AutoplaySystem{
		rng:  rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d)),
		rate: rate,
	}
}

func (s *AutoplaySystem) Execute(frame *loop.Frame) {
	if s.rng.Float64() >= s.rate {
		return
	}
	frame.Push(tetris.Inputs[s.rng.IntN(len(tetris.Inputs))])
}
