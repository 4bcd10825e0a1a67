package tetris_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapeCount = 7

func allIndices() []int {
	out := make([]int, shapeCount)
	for i := range out {
		out[i] = i
	}
	return out
}

func draw(r *tetris.Randomizer, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = r.Next()
	}
	return out
}

func TestRandomizerNextBatchIsPermutation(t *testing.T) {
	r := tetris.NewSeededRandomizer(shapeCount, 1)
	for i := 0; i < 100; i++ {
		assert.ElementsMatch(t, allIndices(), r.NextBatch())
	}
}

func TestRandomizerQueueKeepsOneFullSet(t *testing.T) {
	r := tetris.NewSeededRandomizer(shapeCount, 2)
	assert.Equal(t, shapeCount, r.Len())

	for i := 0; i < 100; i++ {
		r.Next()
		assert.GreaterOrEqual(t, r.Len(), shapeCount)
		assert.Less(t, r.Len(), 2*shapeCount)
	}
}

func TestRandomizerPeek(t *testing.T) {
	r := tetris.NewSeededRandomizer(shapeCount, 3)

	upcoming := r.Peek(3)
	require.Len(t, upcoming, 3)
	assert.Equal(t, upcoming, r.Peek(3))
	assert.Equal(t, upcoming, draw(r, 3))

	assert.Len(t, r.Peek(1000), r.Len())
}

func TestRandomizerBatchesInOrder(t *testing.T) {
	r := tetris.NewSeededRandomizer(shapeCount, 4)
	for batch := 0; batch < 50; batch++ {
		assert.ElementsMatch(t, allIndices(), draw(r, shapeCount), "batch %d", batch)
	}
}

func TestRandomizerWindows(t *testing.T) {
	r := tetris.NewSeededRandomizer(shapeCount, 5)
	seq := draw(r, 70*shapeCount)

	counts := func(window []int) map[int]int {
		c := make(map[int]int)
		for _, v := range window {
			c[v]++
		}
		return c
	}

	t.Run("every window of 2n-1 spawns contains every shape", func(t *testing.T) {
		for start := 0; start+2*shapeCount-1 <= len(seq); start++ {
			c := counts(seq[start : start+2*shapeCount-1])
			for shape := 0; shape < shapeCount; shape++ {
				assert.GreaterOrEqual(t, c[shape], 1, "window at %d, shape %d", start, shape)
			}
		}
	})

	t.Run("batch aligned windows of 2n spawns contain every shape twice", func(t *testing.T) {
		for start := 0; start+2*shapeCount <= len(seq); start += shapeCount {
			c := counts(seq[start : start+2*shapeCount])
			for shape := 0; shape < shapeCount; shape++ {
				assert.Equal(t, 2, c[shape], "window at %d, shape %d", start, shape)
			}
		}
	})
}

func TestRandomizerDeterministic(t *testing.T) {
	a := tetris.NewSeededRandomizer(shapeCount, 99)
	b := tetris.NewSeededRandomizer(shapeCount, 99)
	assert.Equal(t, draw(a, 200), draw(b, 200))

	c := tetris.NewRandomizer(shapeCount, rand.NewPCG(7, 7))
	d := tetris.NewRandomizer(shapeCount, rand.NewPCG(7, 7))
	assert.Equal(t, draw(c, 200), draw(d, 200))
}

func TestRandomizerFirstOfBatchRoughlyUniform(t *testing.T) {
	r := tetris.NewSeededRandomizer(shapeCount, 6)
	const batches = 7000

	first := make(map[int]int)
	for i := 0; i < batches; i++ {
		first[r.NextBatch()[0]]++
	}
	for shape := 0; shape < shapeCount; shape++ {
		assert.InDelta(t, batches/shapeCount, first[shape], 200, "shape %d", shape)
	}
}
