package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"chessbot/engine"
	"chessbot/position"
	"chessbot/tablebase"
)

func newTestEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Depth, cfg.MaxDepth, cfg.Budget, cfg.Threads = 2, 4, time.Millisecond, 2
	opts = append([]engine.Option{engine.WithLogger(zerolog.Nop()), engine.WithSeed(3)}, opts...)
	eng, err := engine.New(cfg, opts...)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return eng
}

func TestPlayGameMateInOne(t *testing.T) {
	var out bytes.Buffer
	start := position.MustParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	res, err := playGame(newTestEngine(t), start, 10, &out)
	if err != nil {
		t.Fatalf("playGame: %v", err)
	}
	if res.Result != "1-0" || res.Reason != "checkmate" || len(res.Moves) != 1 {
		t.Fatalf("unexpected outcome %v", res)
	}
	if out.String() != "1. Ra8#" {
		t.Fatalf("unexpected move list %q", out.String())
	}
}

func TestPlayGameFiftyMoveDraw(t *testing.T) {
	// Bare kings never capture or move a pawn, so the counter runs out.
	start := position.MustParseFEN("8/8/3k4/8/8/4K3/8/8 w - - 45 80")
	res, err := playGame(newTestEngine(t), start, 100, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("playGame: %v", err)
	}
	if res.Result != "1/2-1/2" || res.Reason != "fifty-move rule" {
		t.Fatalf("unexpected outcome %v", res)
	}
	if len(res.Moves) != int(drawAt)-45 {
		t.Fatalf("expected %d plies, got %d", int(drawAt)-45, len(res.Moves))
	}
}

func TestPlayGamePlyLimit(t *testing.T) {
	start := position.MustParseFEN(position.StartFEN)
	res, err := playGame(newTestEngine(t), start, 4, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("playGame: %v", err)
	}
	if res.Result != "*" || len(res.Moves) != 4 {
		t.Fatalf("unexpected outcome %v", res)
	}
}

func TestPlayGameWithSolver(t *testing.T) {
	start := position.MustParseFEN("k7/8/2K5/8/8/8/8/1Q6 w - - 0 1")
	eng := newTestEngine(t, engine.WithTablebase(tablebase.NewSolver(tablebase.DefaultMateDepth)))
	res, err := playGame(eng, start, 10, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("playGame: %v", err)
	}
	if res.Result != "1-0" || len(res.Moves) != 1 {
		t.Fatalf("unexpected outcome %v", res)
	}
	if eng.TablebaseProbes() == 0 {
		t.Fatalf("solver was never probed")
	}
}
