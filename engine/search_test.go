package engine

import (
	"math"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"chessbot/position"
)

// exhaustive is minimax without pruning or memo, with the same terminal and
// extension rules as the search core.
func exhaustive(b *dragontoothmg.Board, fifty uint8, depth, maxDepth int, maximizing bool, ply int) float32 {
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
	if depth <= 0 || ply >= maxDepth {
		return Material(b)
	}
	best := float32(math.Inf(1))
	if maximizing {
		best = float32(math.Inf(-1))
	}
	for _, m := range moves {
		child := position.Apply(b, m)
		childDepth := depth - 1
		if depth == 1 {
			if position.IsCapture(b, m) {
				childDepth = 1
			} else if child.OurKingInCheck() {
				childDepth = 2
			}
		}
		score := exhaustive(&child, position.NextFifty(b, m, fifty), childDepth, maxDepth, !maximizing, ply+1)
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

func TestAlphaBetaMatchesExhaustiveMinimax(t *testing.T) {
	fens := []string{
		"r1bqkbnr/pppp1ppp/2n5/4p3/3P4/5N2/PPP1PPPP/RNBQKB1R w KQkq - 0 3",
		"rnbqkb1r/ppp2ppp/4pn2/3p4/2PP4/2N5/PP2PPPP/R1BQKBNR b KQkq - 0 4",
		"6k1/5ppp/8/3q4/8/2N5/5PPP/3R2K1 w - - 0 1",
		"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
	}
	for _, fen := range fens {
		b := position.MustParseFEN(fen)
		want := exhaustive(&b, 0, 2, 3, b.Wtomove, 1)
		s := newSearcher(fixedOrder{})
		got := s.minimax(&b, 0, 2, 3, negInf, posInf, b.Wtomove, 1)
		if got != want {
			t.Fatalf("%s: alpha-beta %v, minimax %v", fen, got, want)
		}
		if s.nodes == 0 {
			t.Fatalf("%s: no nodes counted", fen)
		}
	}
}

func TestShuffledOrderKeepsScore(t *testing.T) {
	b := position.MustParseFEN("6k1/5ppp/8/3q4/8/2N5/5PPP/3R2K1 w - - 0 1")
	want := exhaustive(&b, 0, 2, 3, true, 1)
	for seed := uint64(1); seed <= 5; seed++ {
		s := newSearcher(newRand(seed))
		if got := s.minimax(&b, 0, 2, 3, negInf, posInf, true, 1); got != want {
			t.Fatalf("seed %d: expected %v, got %v", seed, want, got)
		}
	}
}

func TestMateDistanceBonus(t *testing.T) {
	whiteMated := position.MustParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	blackMated := position.MustParseFEN("R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")

	s := newSearcher(fixedOrder{})
	near := s.minimax(&blackMated, 0, 3, 10, negInf, posInf, false, 2)
	far := s.minimax(&blackMated, 0, 3, 10, negInf, posInf, false, 4)
	if near != MateScore+MateBonus/2 || far != MateScore+MateBonus/4 {
		t.Fatalf("unexpected mate scores %v and %v", near, far)
	}
	if near <= far {
		t.Fatalf("a nearer mate must score higher: %v <= %v", near, far)
	}
	if got := s.minimax(&whiteMated, 0, 3, 10, negInf, posInf, true, 2); got != -MateScore-MateBonus/2 {
		t.Fatalf("expected %v, got %v", -MateScore-MateBonus/2, got)
	}
}

func TestSearchPrefersShorterMate(t *testing.T) {
	// Ra8 mates at once; other rook moves only threaten it.
	b := position.MustParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	mate := position.MustParseFEN("R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	s := newSearcher(fixedOrder{})
	got := s.minimax(&b, 0, 3, 6, negInf, posInf, true, 1)
	want := s.minimax(&mate, 0, 2, 6, negInf, posInf, false, 2)
	if got != want {
		t.Fatalf("expected the mate in one score %v, got %v", want, got)
	}
}

func TestSearchFiftyMoveDraw(t *testing.T) {
	b := position.MustParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	s := newSearcher(fixedOrder{})
	if got := s.minimax(&b, FiftyMoveLimit, 2, 4, negInf, posInf, true, 2); got != 0 {
		t.Fatalf("expected a draw, got %v", got)
	}
	if s.nodes != 1 {
		t.Fatalf("expected a single node, got %d", s.nodes)
	}
}

func TestMemoKeepsLastChildScoreUnderNodeHash(t *testing.T) {
	// exd5 wins a pawn, every other move keeps material level.
	b := position.MustParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	s := newSearcher(fixedOrder{})
	// At ply 1 with a ceiling of 2 every child is a material leaf and the
	// root window never closes, so all moves are searched in generator order.
	if got := s.minimax(&b, 0, 1, 2, negInf, posInf, true, 1); got != 1 {
		t.Fatalf("expected the pawn win, got %v", got)
	}

	moves := b.GenerateLegalMoves()
	last := position.Apply(&b, moves[len(moves)-1])
	want := Material(&last)
	if got, ok := s.memo.Lookup(b.Hash()); !ok || got != want {
		t.Fatalf("expected %v under the node hash, got %v (found %v)", want, got, ok)
	}
	for _, m := range moves {
		child := position.Apply(&b, m)
		if _, ok := s.memo.Lookup(child.Hash()); ok {
			t.Fatalf("%s: child hash must not be cached", position.UCI(m))
		}
	}
	if s.memo.Len() != 1 {
		t.Fatalf("expected a single memo entry, got %d", s.memo.Len())
	}
	// A revisit answers from the memo.
	if got := s.minimax(&b, 0, 1, 2, negInf, posInf, true, 1); got != want {
		t.Fatalf("revisit: expected %v, got %v", want, got)
	}
}

func TestCaptureExtensionSeesRecapture(t *testing.T) {
	// Rxd5 takes a pawn but exd5 wins the rook back.
	b := position.MustParseFEN("7k/8/4p3/3p4/8/8/8/3R3K w - - 0 1")
	rxd5 := position.Apply(&b, mustFind(t, &b, "d1d5"))

	// A ceiling of 2 stops the extension at the capture.
	s := newSearcher(fixedOrder{})
	if got, want := s.minimax(&b, 0, 1, 2, negInf, posInf, true, 1), Material(&rxd5); got != want {
		t.Fatalf("without extension: expected %v, got %v", want, got)
	}

	// With room to extend the recapture is seen and a quiet move is best.
	s = newSearcher(fixedOrder{})
	if got, want := s.minimax(&b, 0, 1, 8, negInf, posInf, true, 1), Material(&b); got != want {
		t.Fatalf("with extension: expected %v, got %v", want, got)
	}
}

func mustFind(t *testing.T, b *dragontoothmg.Board, uci string) dragontoothmg.Move {
	t.Helper()
	m, err := position.FindMove(b, uci)
	if err != nil {
		t.Fatalf("FindMove: %v", err)
	}
	return m
}
