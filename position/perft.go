package position

import "github.com/dylhunn/dragontoothmg"

// Perft counts leaf nodes of the legal move tree to the given depth.
func Perft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += Perft(b, depth-1)
		unapply()
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(b *dragontoothmg.Board, depth int) map[dragontoothmg.Move]uint64 {
	div := make(map[dragontoothmg.Move]uint64)
	if depth <= 0 {
		return div
	}
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		div[m] = Perft(b, depth-1)
		unapply()
	}
	return div
}
