package engine

import (
	"math/bits"
	"time"

	"github.com/dylhunn/dragontoothmg"
)

// Deadline is the wall-clock budget of one BestMove call. It is only consulted
// between iterative deepening rounds; a running round is never interrupted, so
// the budget is a soft target.
type Deadline struct {
	Start  time.Time
	Budget time.Duration
}

func NewDeadline(start time.Time, budget time.Duration) Deadline {
	return Deadline{Start: start, Budget: budget}
}

func (d Deadline) At() time.Time { return d.Start.Add(d.Budget) }

func (d Deadline) Expired() bool {
	return !time.Now().Before(d.At())
}

func (d Deadline) Elapsed() time.Duration { return time.Since(d.Start) }

// AllocateBudget turns a UCI clock (remaining time and increment) into a
// per-move budget.
func AllocateBudget(b *dragontoothmg.Board, remaining, increment time.Duration) time.Duration {
	const (
		overhead    = 30 * time.Millisecond // reserve for UCI/IO jitter
		minMove     = 5 * time.Millisecond
		maxFrac     = 0.7
		panicThresh = time.Second
		panicFrac   = 0.9
	)

	movesLeft := time.Duration(estimateMovesRemaining(GetPiecePhase(b)))

	var moveTime time.Duration
	if increment > 0 {
		if remaining < panicThresh {
			moveTime = time.Duration(float64(increment) * panicFrac)
		} else {
			moveTime = remaining/movesLeft + increment
		}
	} else {
		moveTime = remaining / 40
	}

	if moveTime > time.Duration(float64(remaining)*maxFrac) {
		moveTime = time.Duration(float64(remaining) * maxFrac)
	}
	if moveTime > remaining-overhead {
		moveTime = remaining - overhead
	}
	if moveTime < minMove {
		moveTime = minMove
	}
	return moveTime
}

// GetPiecePhase is 24 with all minor and major pieces on the board and 0 with
// none left.
func GetPiecePhase(b *dragontoothmg.Board) int {
	minors := bits.OnesCount64(b.White.Knights | b.Black.Knights | b.White.Bishops | b.Black.Bishops)
	rooks := bits.OnesCount64(b.White.Rooks | b.Black.Rooks)
	queens := bits.OnesCount64(b.White.Queens | b.Black.Queens)
	return min(minors+2*rooks+4*queens, 24)
}

func estimateMovesRemaining(phase int) int {
	// Linearly interpolate between 20 (endgame) and 45 (opening/midgame)
	return (phase*25)/24 + 20
}
