package tablebase

import (
	"errors"
	"sync/atomic"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"

	"chessbot/position"
)

// Hit is a successful probe.
type Hit struct {
	Move  dragontoothmg.Move
	WDL   WDL
	Score float32 // White-positive, like the evaluator
}

// Prober guards, translates and forwards probes to an Oracle. Oracle failures
// are logged and reported as a miss; they never stop the search.
type Prober struct {
	oracle Oracle
	log    zerolog.Logger
	probes atomic.Uint64
}

func NewProber(oracle Oracle, log zerolog.Logger) *Prober {
	if oracle == nil {
		oracle = Unavailable{}
	}
	if _, ok := oracle.(Unavailable); ok {
		log.Info().Msg("tablebase unavailable, using search only")
	}
	return &Prober{oracle: oracle, log: log}
}

// Applicable reports whether b may be probed: 3 to 5 men and no castling
// rights left on either side.
func Applicable(b *dragontoothmg.Board) bool {
	n := position.PieceCount(b)
	if n < MinPieces || n > MaxPieces {
		return false
	}
	return position.CastlingRights(b, position.White) == 0 &&
		position.CastlingRights(b, position.Black) == 0
}

// Probes is the number of probes that reached the oracle.
func (p *Prober) Probes() uint64 { return p.probes.Load() }

// Probe asks the oracle for a result and a move. ok is false when the position
// is not applicable, the oracle fails, or it has no legal move to offer.
func (p *Prober) Probe(b *dragontoothmg.Board, fifty uint8) (Hit, bool) {
	if !Applicable(b) {
		return Hit{}, false
	}
	native, err := ToNative(b, fifty)
	if err != nil {
		p.log.Warn().Err(err).Msg("tablebase translation failed")
		return Hit{}, false
	}

	p.probes.Add(1)
	wdl, err := p.oracle.ProbeWDL(native)
	if err != nil {
		p.logMiss(err, b)
		return Hit{}, false
	}
	nm, ok, err := p.oracle.BestMove(native)
	if err != nil {
		p.logMiss(err, b)
		return Hit{}, false
	}
	if !ok {
		p.log.Debug().Str("fen", b.ToFen()).Stringer("wdl", wdl).Msg("tablebase has no move")
		return Hit{}, false
	}

	m, legal := matchLegal(b, FromNativeMove(nm))
	if !legal {
		p.log.Warn().Str("fen", b.ToFen()).Str("move", position.UCI(m)).Msg("tablebase move is not legal")
		return Hit{}, false
	}
	return Hit{Move: m, WDL: wdl, Score: scoreFor(wdl, b.Wtomove)}, true
}

func (p *Prober) logMiss(err error, b *dragontoothmg.Board) {
	switch {
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrNotFound):
		p.log.Debug().Err(err).Str("fen", b.ToFen()).Msg("tablebase miss")
	default:
		p.log.Warn().Err(err).Str("fen", b.ToFen()).Msg("tablebase probe failed")
	}
}

// matchLegal finds the legal move with the same squares and promotion.
func matchLegal(b *dragontoothmg.Board, want dragontoothmg.Move) (dragontoothmg.Move, bool) {
	for _, m := range b.GenerateLegalMoves() {
		if m.From() == want.From() && m.To() == want.To() && m.Promote() == want.Promote() {
			return m, true
		}
	}
	return want, false
}
