package engine

import (
	"math"

	"github.com/dylhunn/dragontoothmg"

	"chessbot/position"
)

var (
	negInf = float32(math.Inf(-1))
	posInf = float32(math.Inf(1))
)

// searcher holds the state of one root-move task: its memo, its move order
// source and a node counter. Nothing in it is shared between goroutines.
type searcher struct {
	memo  *Memo
	order shuffler
	nodes uint64
}

func newSearcher(order shuffler) *searcher {
	return &searcher{memo: NewMemo(), order: order}
}

// minimax is alpha-beta over White-positive scores. maximizing is true when
// White is to move at b. ply counts from the root and is at least 1.
func (s *searcher) minimax(b *dragontoothmg.Board, fifty uint8, depth, maxDepth int, alpha, beta float32, maximizing bool, ply int) float32 {
	s.nodes++
	if fifty >= FiftyMoveLimit {
		return 0
	}

	moves := b.GenerateLegalMoves()
	switch position.StatusOf(b, moves) {
	case position.Stalemate:
		return 0
	case position.Checkmate:
		bonus := MateBonus / float32(ply)
		if maximizing {
			bonus = -bonus
		}
		return scoreStatus(b, position.Checkmate) + bonus
	}

	hash := b.Hash()
	if score, ok := s.memo.Lookup(hash); ok {
		return score
	}
	if depth <= 0 || ply >= maxDepth {
		return Material(b)
	}

	shuffleMoves(s.order, moves)

	best := posInf
	if maximizing {
		best = negInf
	}
	for _, m := range moves {
		childFifty := position.NextFifty(b, m, fifty)
		capture := position.IsCapture(b, m)
		child := position.Apply(b, m)

		// Captures and checks on the last ply are searched one ply further;
		// the ply ceiling still applies.
		childDepth := depth - 1
		if depth == 1 {
			if capture {
				childDepth = 1
			} else if position.InCheck(&child) {
				childDepth = 2
			}
		}

		score := s.minimax(&child, childFifty, childDepth, maxDepth, alpha, beta, !maximizing, ply+1)

		// The child's score goes under this node's hash, not the child's,
		// so a revisit of this node returns the last cached child score.
		// TODO: key by the child's hash once the effect on playing strength
		// has been measured with cmd/selfplay.
		s.memo.Store(hash, score)

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}
	return best
}
