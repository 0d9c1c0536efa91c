package engine

import (
	"math"
	"math/bits"

	"github.com/dylhunn/dragontoothmg"

	"chessbot/position"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// MateScore is the raw evaluation of a checkmated position. Scores at or
	// beyond it are never cached.
	MateScore float32 = 1000
	// MateBonus is divided by the ply of a mate found inside the search, so
	// shorter mates outrank longer ones.
	MateBonus float32 = 4000
	// FiftyMoveLimit is the counter value at which a position is a draw.
	FiftyMoveLimit uint8 = 50
)

// Material values in pawns, indexed by dragontoothmg piece type.
var PieceValue = [7]float32{
	dragontoothmg.Nothing: 0,
	dragontoothmg.Pawn:    1.0,
	dragontoothmg.Knight:  3.05,
	dragontoothmg.Bishop:  3.33,
	dragontoothmg.Rook:    5.63,
	dragontoothmg.Queen:   9.5,
	dragontoothmg.King:    0,
}

// Score evaluates b from White's point of view: positive favours White.
func Score(b *dragontoothmg.Board, fifty uint8) float32 {
	if fifty >= FiftyMoveLimit {
		return 0
	}
	return scoreStatus(b, position.GetStatus(b))
}

func scoreStatus(b *dragontoothmg.Board, status position.Status) float32 {
	switch status {
	case position.Checkmate:
		if b.Wtomove {
			return -MateScore
		}
		return MateScore
	case position.Stalemate:
		return 0
	}
	return Material(b)
}

// MateIn converts a score from the side to move's point of view into full
// moves to mate: positive when the side to move mates, negative when it is
// mated. ok is false for scores that carry no mate distance, including
// tablebase rewards.
func MateIn(score float32) (int, bool) {
	abs := float32(math.Abs(float64(score)))
	if abs <= MateScore {
		return 0, false
	}
	ply := int(math.Round(float64(MateBonus / (abs - MateScore))))
	if ply < 2 {
		return 0, false
	}
	n := ply / 2
	if score < 0 {
		n = -n
	}
	return n, true
}

// Material is the signed material balance, White minus Black.
func Material(b *dragontoothmg.Board) float32 {
	return sideMaterial(&b.White) - sideMaterial(&b.Black)
}

func sideMaterial(bb *dragontoothmg.Bitboards) float32 {
	return float32(bits.OnesCount64(bb.Pawns))*PieceValue[dragontoothmg.Pawn] +
		float32(bits.OnesCount64(bb.Knights))*PieceValue[dragontoothmg.Knight] +
		float32(bits.OnesCount64(bb.Bishops))*PieceValue[dragontoothmg.Bishop] +
		float32(bits.OnesCount64(bb.Rooks))*PieceValue[dragontoothmg.Rook] +
		float32(bits.OnesCount64(bb.Queens))*PieceValue[dragontoothmg.Queen]
}
