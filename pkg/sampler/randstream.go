package sampler

import "math/rand"

// randomStream holds pre-drawn batches of per-trajectory randomness, indexed
// by iteration modulo the stream size. Batch-drawing amortizes the cost of
// randomness generation across the vectorized iteration; the stream is a
// performance optimization only and is wholly regenerated on its refresh
// boundary, never partially mutated.
type randomStream struct {
	size int

	// One row per trajectory, size draws per row.
	mutationSymbols   [][]int     // replacement symbol in [1, alphabetSize]
	mutationPositions [][]int     // position to mutate in [0, chainLength)
	acceptanceDraws   [][]float64 // Metropolis threshold in [0, 1)
	lengthDirections  [][]int     // length change in {-1, 0, 1}
	extensionSymbols  [][]int     // symbol written when extending, in [1, alphabetSize]
}

func newRandomStream(rng *rand.Rand, trajectories, size, alphabetSize, chainLength int) *randomStream {
	s := &randomStream{
		size:              size,
		mutationSymbols:   make([][]int, trajectories),
		mutationPositions: make([][]int, trajectories),
		acceptanceDraws:   make([][]float64, trajectories),
		lengthDirections:  make([][]int, trajectories),
		extensionSymbols:  make([][]int, trajectories),
	}
	for i := 0; i < trajectories; i++ {
		s.mutationSymbols[i] = make([]int, size)
		s.mutationPositions[i] = make([]int, size)
		s.acceptanceDraws[i] = make([]float64, size)
		s.lengthDirections[i] = make([]int, size)
		s.extensionSymbols[i] = make([]int, size)
		for j := 0; j < size; j++ {
			s.mutationSymbols[i][j] = 1 + rng.Intn(alphabetSize)
			s.mutationPositions[i][j] = rng.Intn(chainLength)
			s.acceptanceDraws[i][j] = rng.Float64()
			s.lengthDirections[i][j] = rng.Intn(3) - 1
			s.extensionSymbols[i][j] = 1 + rng.Intn(alphabetSize)
		}
	}
	return s
}
