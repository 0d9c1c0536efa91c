// Package tablebase connects the search to an endgame oracle. Oracles work on
// goosemg boards; this package owns the translation to and from the
// dragontoothmg types used everywhere else, so the search never sees the
// oracle's representation.
package tablebase

import (
	"errors"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// WDL represents Win/Draw/Loss from the side to move's point of view.
type WDL int8

const (
	Loss        WDL = -2
	BlessedLoss WDL = -1 // Loss that the fifty-move rule turns into a draw
	Draw        WDL = 0
	CursedWin   WDL = 1 // Win that the fifty-move rule turns into a draw
	Win         WDL = 2
)

func (w WDL) String() string {
	switch w {
	case Loss:
		return "loss"
	case BlessedLoss:
		return "blessed-loss"
	case Draw:
		return "draw"
	case CursedWin:
		return "cursed-win"
	case Win:
		return "win"
	}
	return "unknown"
}

// Reward is the magnitude of a tablebase win.
const Reward float32 = 100000

// Probes are only attempted for this total piece count, kings included.
const (
	MinPieces = 3
	MaxPieces = 5
)

var (
	ErrUnavailable = errors.New("tablebase: unavailable")
	ErrNotFound    = errors.New("tablebase: position not covered")
)

// Oracle is an endgame oracle for positions with at most MaxPieces men and no
// castling rights.
type Oracle interface {
	// ProbeWDL classifies the position for the side to move.
	ProbeWDL(b *gm.Board) (WDL, error)
	// BestMove returns the oracle's recommended move. ok is false when it has
	// none.
	BestMove(b *gm.Board) (m gm.Move, ok bool, err error)
}

// Unavailable is the oracle used when no tablebase could be set up.
type Unavailable struct{}

func (Unavailable) ProbeWDL(*gm.Board) (WDL, error) { return Draw, ErrUnavailable }

func (Unavailable) BestMove(*gm.Board) (gm.Move, bool, error) { return 0, false, ErrUnavailable }

// scoreFor turns a result for the side to move into a White-positive score.
// Cursed wins and blessed losses cannot be converted and count as draws.
func scoreFor(wdl WDL, whiteToMove bool) float32 {
	var score float32
	switch wdl {
	case Win:
		score = Reward
	case Loss:
		score = -Reward
	}
	if !whiteToMove {
		score = -score
	}
	return score
}
