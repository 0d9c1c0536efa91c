package engine

import (
	"testing"

	"chessbot/position"
)

func TestSANRenderer(t *testing.T) {
	tests := []struct {
		fen  string
		move string
		want string
	}{
		{position.StartFEN, "e2e4", "e4"},
		{position.StartFEN, "g1f3", "Nf3"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", "O-O-O"},
		{"4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a8", "Ra8+"},
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8", "Ra8#"},
		{"4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8q", "a8=Q+"},
	}
	for _, tt := range tests {
		b := position.MustParseFEN(tt.fen)
		m, err := position.FindMove(&b, tt.move)
		if err != nil {
			t.Fatalf("FindMove(%s): %v", tt.move, err)
		}
		if got := (SANRenderer{}).Render(&b, m); got != tt.want {
			t.Fatalf("%s %s: expected %q, got %q", tt.fen, tt.move, tt.want, got)
		}
		if got := (UCIRenderer{}).Render(&b, m); got != tt.move {
			t.Fatalf("expected %q, got %q", tt.move, got)
		}
	}
}
