package bench

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"chessbot/engine"
	"chessbot/position"
	"chessbot/tablebase"
)

func benchBestMove(b *testing.B, fen string, depth, maxDepth int) {
	board, err := position.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	cfg := engine.DefaultConfig()
	eng, err := engine.New(cfg, engine.WithLogger(zerolog.Nop()), engine.WithSeed(1), engine.WithRenderer(engine.UCIRenderer{}))
	if err != nil {
		b.Fatalf("engine.New: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	var nodes uint64
	for i := 0; i < b.N; i++ {
		res, err := eng.BestMove(&board, 0, depth, maxDepth, 0, time.Now())
		if err != nil {
			b.Fatalf("BestMove: %v", err)
		}
		nodes += res.Nodes
	}
	b.ReportMetric(float64(nodes)/float64(b.N), "nodes/op")
}

func BenchmarkBestMove_Initial_D3(b *testing.B) {
	benchBestMove(b, position.StartFEN, 3, 5)
}

func BenchmarkBestMove_Kiwipete_D2(b *testing.B) {
	benchBestMove(b, kiwipete, 2, 4)
}

func BenchmarkScore_Kiwipete(b *testing.B) {
	board := position.MustParseFEN(kiwipete)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Score(&board, 0)
	}
}

func BenchmarkSANRender_Kiwipete(b *testing.B) {
	board := position.MustParseFEN(kiwipete)
	moves := position.LegalMoves(&board)
	r := engine.SANRenderer{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Render(&board, moves[i%len(moves)])
	}
}

func BenchmarkToNative_KRK(b *testing.B) {
	board := position.MustParseFEN("8/8/4k3/8/8/3K4/3R4/8 w - - 0 1")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tablebase.ToNative(&board, 0); err != nil {
			b.Fatalf("ToNative: %v", err)
		}
	}
}

func BenchmarkSolverProbe_KQK(b *testing.B) {
	board := position.MustParseFEN("k7/8/2K5/8/8/8/8/1Q6 w - - 0 1")
	p := tablebase.NewProber(tablebase.NewSolver(tablebase.DefaultMateDepth), zerolog.Nop())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := p.Probe(&board, 0); !ok {
			b.Fatalf("expected a hit")
		}
	}
}
