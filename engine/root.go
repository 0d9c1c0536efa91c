package engine

import (
	"fmt"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/sync/errgroup"

	"chessbot/position"
)

// Result is the engine's decision for one position.
type Result struct {
	Move      dragontoothmg.Move
	Fifty     uint8   // fifty-move counter after Move
	Score     float32 // White-positive
	Depth     int     // nominal depth of the last completed round
	MaxDepth  int     // ply ceiling of the last completed round
	SAN       string
	Tablebase bool // Move came from the tablebase, no search ran
	Nodes     uint64
	Elapsed   time.Duration
}

type rootScore struct {
	move  dragontoothmg.Move
	score float32 // from the side to move's point of view
	nodes uint64

	memoHits    uint64
	memoEntries int
}

// BestMove searches b and returns the move to play. fifty is the caller's
// fifty-move counter for b. Rounds deepen until the budget measured from start
// is spent or the depth reaches MaxSearchDepth; the deadline is only checked
// between rounds, so the last round may overrun it.
func (e *Engine) BestMove(b *dragontoothmg.Board, fifty uint8, depth, maxDepth int, budget time.Duration, start time.Time) (Result, error) {
	if depth < 1 || maxDepth < depth {
		return Result{}, fmt.Errorf("engine: invalid depth %d / max depth %d", depth, maxDepth)
	}
	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		return Result{}, fmt.Errorf("%w: %s is %v", ErrNoLegalMoves, b.ToFen(), position.StatusOf(b, moves))
	}

	if hit, ok := e.tb.Probe(b, fifty); ok {
		res := Result{
			Move:      hit.Move,
			Fifty:     fifty + 1,
			Score:     hit.Score,
			SAN:       e.render.Render(b, hit.Move),
			Tablebase: true,
			Elapsed:   time.Since(start),
		}
		e.log.Info().
			Stringer("side", position.SideToMove(b)).
			Str("move", res.SAN).
			Stringer("wdl", hit.WDL).
			Float32("eval", res.Score).
			Msg("tablebase move")
		return res, nil
	}

	deadline := NewDeadline(start, budget)
	round := 0
	best, nodes := e.searchRound(b, moves, fifty, depth, maxDepth, round)
	for !deadline.Expired() && depth < MaxSearchDepth {
		if maxDepth <= depth+6 {
			maxDepth += 2
		} else {
			depth += 2
		}
		round++
		var n uint64
		best, n = e.searchRound(b, moves, fifty, depth, maxDepth, round)
		nodes += n
	}

	factor := float32(1)
	if !b.Wtomove {
		factor = -1
	}
	res := Result{
		Move:     best.move,
		Fifty:    position.NextFifty(b, best.move, fifty),
		Score:    factor * best.score,
		Depth:    depth,
		MaxDepth: maxDepth,
		SAN:      e.render.Render(b, best.move),
		Nodes:    nodes,
		Elapsed:  deadline.Elapsed(),
	}
	e.log.Info().
		Stringer("side", position.SideToMove(b)).
		Str("move", res.SAN).
		Int("depth", res.Depth).
		Int("max_depth", res.MaxDepth).
		Float32("eval", res.Score).
		Dur("elapsed", res.Elapsed).
		Msg("move selected")
	return res, nil
}

// searchRound scores every root move at the given depth and picks one.
func (e *Engine) searchRound(b *dragontoothmg.Board, moves []dragontoothmg.Move, fifty uint8, depth, maxDepth, round int) (rootScore, uint64) {
	started := time.Now()
	factor := float32(1)
	if !b.Wtomove {
		factor = -1
	}
	// The children of the root have the other side to move.
	maximizing := !b.Wtomove

	scores := make([]rootScore, len(moves))
	var g errgroup.Group
	g.SetLimit(e.cfg.Threads)
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			child := position.Apply(b, m)
			s := newSearcher(newRand(taskSeed(e.seed, round, i)))
			score := s.minimax(&child, position.NextFifty(b, m, fifty), depth-1, maxDepth, negInf, posInf, maximizing, 2)
			scores[i] = rootScore{
				move:        m,
				score:       factor * score,
				nodes:       s.nodes,
				memoHits:    s.memo.Hits(),
				memoEntries: s.memo.Len(),
			}
			return nil
		})
	}
	// The tasks never fail; the group only bounds how many run at once.
	_ = g.Wait()

	var nodes, hits uint64
	entries := 0
	for _, s := range scores {
		nodes += s.nodes
		hits += s.memoHits
		entries += s.memoEntries
	}
	best := selectBest(scores, newRand(taskSeed(e.seed, round, -1)))

	e.log.Debug().
		Int("round", round).
		Int("depth", depth).
		Int("max_depth", maxDepth).
		Str("best", position.UCI(best.move)).
		Float32("score", best.score).
		Uint64("nodes", nodes).
		Uint64("memo_hits", hits).
		Int("memo_entries", entries).
		Dur("elapsed", time.Since(started)).
		Msg("round complete")
	return best, nodes
}

// selectBest shuffles the scored moves and returns the first with the highest
// score, so equal scores are broken at random.
func selectBest(scores []rootScore, order shuffler) rootScore {
	shuffled := make([]rootScore, len(scores))
	copy(shuffled, scores)
	order.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	best := rootScore{score: negInf}
	for i, s := range shuffled {
		if i == 0 || s.score > best.score {
			best = s
		}
	}
	return best
}
