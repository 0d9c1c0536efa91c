package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	"chessbot/position"
)

// Renderer turns a move into text for logs and front ends. before is the
// position the move is played from.
type Renderer interface {
	Render(before *dragontoothmg.Board, m dragontoothmg.Move) string
}

// SANRenderer writes standard algebraic notation ("Nf3", "exd5", "O-O",
// "e8=Q#"). If the move cannot be decoded it falls back to UCI notation.
type SANRenderer struct{}

func (SANRenderer) Render(before *dragontoothmg.Board, m dragontoothmg.Move) string {
	uci := position.UCI(m)
	fen, err := chess.FEN(before.ToFen())
	if err != nil {
		return uci
	}
	pos := chess.NewGame(fen).Position()
	decoded, err := chess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		return uci
	}
	// Decode leaves the check tag unset; the generated moves carry it.
	for _, move := range pos.ValidMoves() {
		if move.S1() == decoded.S1() && move.S2() == decoded.S2() && move.Promo() == decoded.Promo() {
			return chess.AlgebraicNotation{}.Encode(pos, move)
		}
	}
	return chess.AlgebraicNotation{}.Encode(pos, decoded)
}

// UCIRenderer writes long algebraic notation ("e2e4", "e7e8q").
type UCIRenderer struct{}

func (UCIRenderer) Render(_ *dragontoothmg.Board, m dragontoothmg.Move) string {
	return position.UCI(m)
}
