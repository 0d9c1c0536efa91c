// Package position wraps the dragontoothmg move generator with the handful of
// rules queries the search needs: legal moves, successor positions, terminal
// status, piece lookup and castling rights.
package position

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid FEN")

type Status uint8

const (
	Ongoing Status = iota
	Stalemate
	Checkmate
)

func (s Status) String() string {
	switch s {
	case Stalemate:
		return "stalemate"
	case Checkmate:
		return "checkmate"
	default:
		return "ongoing"
	}
}

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// Rights is a bit set of the castling options one side still holds.
type Rights uint8

const (
	Kingside Rights = 1 << iota
	Queenside
)

// ParseFEN builds a board from a FEN string. Missing move counters default to
// "0 1". The generator panics on malformed placement, so that is recovered and
// reported as ErrInvalidFEN.
func ParseFEN(fen string) (b dragontoothmg.Board, err error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return b, fmt.Errorf("%w: %q: expected at least 4 fields, got %d", ErrInvalidFEN, fen, len(fields))
	}
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	} else if len(fields) == 5 {
		fields = append(fields, "1")
	}
	if n := len(strings.Split(fields[0], "/")); n != 8 {
		return b, fmt.Errorf("%w: %q: expected 8 ranks, got %d", ErrInvalidFEN, fen, n)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return b, fmt.Errorf("%w: %q: side to move must be w or b", ErrInvalidFEN, fen)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %q: %v", ErrInvalidFEN, fen, r)
		}
	}()
	b = dragontoothmg.ParseFen(strings.Join(fields[:6], " "))

	if bits.OnesCount64(b.White.Kings) != 1 || bits.OnesCount64(b.Black.Kings) != 1 {
		return b, fmt.Errorf("%w: %q: each side needs exactly one king", ErrInvalidFEN, fen)
	}
	return b, nil
}

// MustParseFEN is ParseFEN for fixtures known to be valid.
func MustParseFEN(fen string) dragontoothmg.Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

func LegalMoves(b *dragontoothmg.Board) []dragontoothmg.Move {
	return b.GenerateLegalMoves()
}

// Apply returns the successor of b after m. b itself is left untouched, so a
// board may be shared read-only between goroutines that each call Apply.
func Apply(b *dragontoothmg.Board, m dragontoothmg.Move) dragontoothmg.Board {
	next := *b
	next.Apply(m)
	return next
}

// InCheck reports whether the side to move is in check.
func InCheck(b *dragontoothmg.Board) bool {
	return b.OurKingInCheck()
}

// StatusOf classifies b given its already generated legal moves.
func StatusOf(b *dragontoothmg.Board, moves []dragontoothmg.Move) Status {
	if len(moves) > 0 {
		return Ongoing
	}
	if b.OurKingInCheck() {
		return Checkmate
	}
	return Stalemate
}

func GetStatus(b *dragontoothmg.Board) Status {
	return StatusOf(b, b.GenerateLegalMoves())
}

func SideToMove(b *dragontoothmg.Board) Color {
	if b.Wtomove {
		return White
	}
	return Black
}

func getPieceTypeAtPosition(sq uint8, bitboards *dragontoothmg.Bitboards) (dragontoothmg.Piece, bool) {
	mask := uint64(1) << sq
	switch {
	case bitboards.Pawns&mask != 0:
		return dragontoothmg.Pawn, true
	case bitboards.Knights&mask != 0:
		return dragontoothmg.Knight, true
	case bitboards.Bishops&mask != 0:
		return dragontoothmg.Bishop, true
	case bitboards.Rooks&mask != 0:
		return dragontoothmg.Rook, true
	case bitboards.Queens&mask != 0:
		return dragontoothmg.Queen, true
	case bitboards.Kings&mask != 0:
		return dragontoothmg.King, true
	}
	return dragontoothmg.Nothing, false
}

// PieceAt reports the piece and its colour on sq (0 = a1, 63 = h8).
func PieceAt(b *dragontoothmg.Board, sq uint8) (dragontoothmg.Piece, Color, bool) {
	if p, ok := getPieceTypeAtPosition(sq, &b.White); ok {
		return p, White, true
	}
	if p, ok := getPieceTypeAtPosition(sq, &b.Black); ok {
		return p, Black, true
	}
	return dragontoothmg.Nothing, White, false
}

func PieceCount(b *dragontoothmg.Board) int {
	return bits.OnesCount64(b.White.All | b.Black.All)
}

// fenField returns the n-th space separated field of the board's FEN. The
// generator keeps castling and en passant state unexported, so the FEN is the
// only way to read them.
func fenField(b *dragontoothmg.Board, n int) string {
	fields := strings.Fields(b.ToFen())
	if n >= len(fields) {
		return "-"
	}
	return fields[n]
}

func CastlingRights(b *dragontoothmg.Board, c Color) Rights {
	var rights Rights
	for _, ch := range fenField(b, 2) {
		switch {
		case ch == 'K' && c == White, ch == 'k' && c == Black:
			rights |= Kingside
		case ch == 'Q' && c == White, ch == 'q' && c == Black:
			rights |= Queenside
		}
	}
	return rights
}

// EnPassant returns the en passant target square and whether one is set.
func EnPassant(b *dragontoothmg.Board) (uint8, bool) {
	field := fenField(b, 3)
	if field == "-" || len(field) != 2 {
		return 0, false
	}
	file, rank := field[0]-'a', field[1]-'1'
	if file > 7 || rank > 7 {
		return 0, false
	}
	return rank*8 + file, true
}

func occupied(b *dragontoothmg.Board, sq uint8) bool {
	return (b.White.All|b.Black.All)&(uint64(1)<<sq) != 0
}

// IsCapture reports whether m lands on an occupied square. En passant is a
// pawn move and resets the fifty-move counter either way.
func IsCapture(b *dragontoothmg.Board, m dragontoothmg.Move) bool {
	return occupied(b, m.To())
}

func IsPawnMove(b *dragontoothmg.Board, m dragontoothmg.Move) bool {
	return (b.White.Pawns|b.Black.Pawns)&(uint64(1)<<m.From()) != 0
}

// NextFifty returns the fifty-move counter after m is played from b.
func NextFifty(b *dragontoothmg.Board, m dragontoothmg.Move, fifty uint8) uint8 {
	if IsPawnMove(b, m) || IsCapture(b, m) {
		return 0
	}
	if fifty == 255 {
		return fifty
	}
	return fifty + 1
}

func UCI(m dragontoothmg.Move) string {
	return m.String()
}

// FindMove resolves a long algebraic move string (e2e4, e7e8q) against the
// legal moves of b.
func FindMove(b *dragontoothmg.Board, s string) (dragontoothmg.Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range b.GenerateLegalMoves() {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("move %s is not legal in %s", s, b.ToFen())
}
