package tablebase

import (
	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// DefaultMateDepth is mate in two.
const DefaultMateDepth = 3

// Solver is an in-memory oracle for small endgames. Bare-king and lone-minor
// endings are dead draws; short forced mates, for either side, are found by
// exhaustive search. Everything else is ErrNotFound.
type Solver struct {
	// MateDepth bounds the mate search in plies of the winning side's line.
	MateDepth int
}

func NewSolver(mateDepth int) *Solver {
	if mateDepth < 1 {
		mateDepth = DefaultMateDepth
	}
	return &Solver{MateDepth: mateDepth}
}

func (s *Solver) ProbeWDL(b *gm.Board) (WDL, error) {
	if !b.HasLegalMoves() {
		if b.InCheckmate() {
			return Loss, nil
		}
		return Draw, nil
	}
	if insufficientMaterial(b) {
		return Draw, nil
	}
	if _, ok := s.shortestMate(b); ok {
		return Win, nil
	}
	if s.lost(b) {
		return Loss, nil
	}
	return Draw, ErrNotFound
}

func (s *Solver) BestMove(b *gm.Board) (gm.Move, bool, error) {
	moves := b.GenerateMoves()
	if len(moves) == 0 {
		return 0, false, nil
	}
	if insufficientMaterial(b) {
		return moves[0], true, nil
	}
	if m, ok := s.shortestMate(b); ok {
		return m, true, nil
	}
	if s.lost(b) {
		if m, ok := s.longestDefence(b); ok {
			return m, true, nil
		}
	}
	return 0, false, ErrNotFound
}

// lost reports whether the side to move is mated within MateDepth plies of
// the opponent's line whatever it plays.
func (s *Solver) lost(b *gm.Board) bool {
	return s.MateDepth > 1 && defenderLost(b, s.MateDepth-1)
}

// longestDefence returns the legal move after which the opponent's shortest
// mate is the longest.
func (s *Solver) longestDefence(b *gm.Board) (gm.Move, bool) {
	var best gm.Move
	bestPlies := 0
	for _, m := range b.GenerateMoves() {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		plies := s.MateDepth + 1
		for p := 1; p < s.MateDepth; p += 2 {
			if _, mated := forcedMate(b, p); mated {
				plies = p
				break
			}
		}
		b.UnmakeMove(m, st)
		if plies > bestPlies {
			best, bestPlies = m, plies
		}
	}
	return best, bestPlies > 0
}

// insufficientMaterial covers K v K and K+minor v K.
func insufficientMaterial(b *gm.Board) bool {
	minors := 0
	for sq := gm.Square(0); sq < 64; sq++ {
		switch b.PieceAt(sq) {
		case gm.NoPiece, gm.WhiteKing, gm.BlackKing:
		case gm.WhiteKnight, gm.BlackKnight, gm.WhiteBishop, gm.BlackBishop:
			minors++
		default:
			return false
		}
	}
	return minors <= 1
}

func (s *Solver) shortestMate(b *gm.Board) (gm.Move, bool) {
	for plies := 1; plies <= s.MateDepth; plies += 2 {
		if m, ok := forcedMate(b, plies); ok {
			return m, true
		}
	}
	return 0, false
}

// forcedMate looks for a move of the side to move that mates within plies.
func forcedMate(b *gm.Board, plies int) (gm.Move, bool) {
	for _, m := range b.GenerateMoves() {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		won := defenderLost(b, plies-1)
		b.UnmakeMove(m, st)
		if won {
			return m, true
		}
	}
	return 0, false
}

// defenderLost reports whether every reply of the side to move runs into a
// forced mate within plies.
func defenderLost(b *gm.Board, plies int) bool {
	replies := b.GenerateMoves()
	if len(replies) == 0 {
		return b.InCheckmate()
	}
	if plies < 2 {
		return false
	}
	for _, r := range replies {
		ok, st := b.MakeMove(r)
		if !ok {
			continue
		}
		_, mated := forcedMate(b, plies-1)
		b.UnmakeMove(r, st)
		if !mated {
			return false
		}
	}
	return true
}
