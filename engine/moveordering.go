package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// shuffler permutes n elements through swap. *rand.Rand satisfies it.
type shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// fixedOrder keeps the generator's move order. Used to compare the pruned
// search against a plain minimax.
type fixedOrder struct{}

func (fixedOrder) Shuffle(int, func(i, j int)) {}

// shuffleMoves permutes moves in place. The order carries no ordering
// heuristic; two runs with different seeds prune different lines.
func shuffleMoves(order shuffler, moves []dragontoothmg.Move) {
	order.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// taskSeed derives an independent stream for one root move of one round.
func taskSeed(base uint64, round, index int) uint64 {
	z := base + uint64(round)*0x9E3779B97F4A7C15 + uint64(index+1)*0xBF58476D1CE4E5B9
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func randomSeed() uint64 {
	return frand.Uint64n(^uint64(0)) + 1
}
