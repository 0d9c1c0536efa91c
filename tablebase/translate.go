package tablebase

import (
	"fmt"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"

	"chessbot/position"
)

// NativeSquare maps a dragontoothmg square (0 = a1, 7 = h1, 63 = h8) to the
// oracle's square.
func NativeSquare(sq uint8) gm.Square {
	file, rank := int(sq%8), int(sq/8)
	return gm.Square(rank*8 + file)
}

func FromNativeSquare(sq gm.Square) uint8 {
	file, rank := int(sq)%8, int(sq)/8
	return uint8(rank*8 + file)
}

func squareName(sq gm.Square) string {
	return string([]byte{'a' + byte(int(sq)%8), '1' + byte(int(sq)/8)})
}

func NativePiece(pt dragontoothmg.Piece, c position.Color) gm.Piece {
	white := c == position.White
	switch pt {
	case dragontoothmg.Pawn:
		if white {
			return gm.WhitePawn
		}
		return gm.BlackPawn
	case dragontoothmg.Knight:
		if white {
			return gm.WhiteKnight
		}
		return gm.BlackKnight
	case dragontoothmg.Bishop:
		if white {
			return gm.WhiteBishop
		}
		return gm.BlackBishop
	case dragontoothmg.Rook:
		if white {
			return gm.WhiteRook
		}
		return gm.BlackRook
	case dragontoothmg.Queen:
		if white {
			return gm.WhiteQueen
		}
		return gm.BlackQueen
	case dragontoothmg.King:
		if white {
			return gm.WhiteKing
		}
		return gm.BlackKing
	}
	return gm.NoPiece
}

// FromNativePiece drops the colour of an oracle piece.
func FromNativePiece(p gm.Piece) dragontoothmg.Piece {
	switch p {
	case gm.WhitePawn, gm.BlackPawn:
		return dragontoothmg.Pawn
	case gm.WhiteKnight, gm.BlackKnight:
		return dragontoothmg.Knight
	case gm.WhiteBishop, gm.BlackBishop:
		return dragontoothmg.Bishop
	case gm.WhiteRook, gm.BlackRook:
		return dragontoothmg.Rook
	case gm.WhiteQueen, gm.BlackQueen:
		return dragontoothmg.Queen
	case gm.WhiteKing, gm.BlackKing:
		return dragontoothmg.King
	}
	return dragontoothmg.Nothing
}

// ToNative builds the oracle's board: placement, side to move, en passant
// square and the half-move clock. Castling rights are always empty because
// probes are only made without them.
func ToNative(b *dragontoothmg.Board, fifty uint8) (*gm.Board, error) {
	stm := "w"
	if !b.Wtomove {
		stm = "b"
	}
	ep := "-"
	if sq, ok := position.EnPassant(b); ok {
		ep = squareName(NativeSquare(sq))
	}

	native, err := gm.ParseFEN(fmt.Sprintf("8/8/8/8/8/8/8/8 %s - %s %d 1", stm, ep, fifty))
	if err != nil {
		return nil, fmt.Errorf("tablebase: translate %s: %w", b.ToFen(), err)
	}
	for sq := uint8(0); sq < 64; sq++ {
		if pt, c, ok := position.PieceAt(b, sq); ok {
			native.SetPiece(NativeSquare(sq), NativePiece(pt, c))
		}
	}
	return native, nil
}

// FromNativeMove converts an oracle move back to from, to and promotion.
func FromNativeMove(m gm.Move) dragontoothmg.Move {
	var out dragontoothmg.Move
	out.Setfrom(dragontoothmg.Square(FromNativeSquare(m.From())))
	out.Setto(dragontoothmg.Square(FromNativeSquare(m.To())))
	if promo := m.PromotionPiece(); promo != gm.NoPiece {
		out.Setpromote(FromNativePiece(promo))
	}
	return out
}
