package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chessbot/engine"
	"chessbot/position"
)

type benchOptions struct {
	fen        string
	budget     time.Duration
	repeat     int
	cpuProfile string
	memProfile string
}

func main() {
	// --- Flags ---
	cfg := engine.DefaultConfig()
	depthFlag := flag.Int("depth", cfg.Depth, "search depth in plies")
	maxDepthFlag := flag.Int("maxdepth", cfg.MaxDepth, "ply ceiling")
	var opts benchOptions
	flag.DurationVar(&opts.budget, "budget", 0, "time budget per search (0 = one round)")
	flag.IntVar(&opts.repeat, "repeat", 1, "number of searches to run")
	flag.StringVar(&opts.fen, "fen", "", "FEN to search (empty = startpos)")
	flag.IntVar(&cfg.Threads, "threads", cfg.Threads, "root moves searched in parallel")
	flag.Uint64Var(&cfg.Seed, "seed", 1, "move order seed (0 = random)")
	flag.StringVar(&opts.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	flag.StringVar(&opts.memProfile, "memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
	cfg.Depth = *depthFlag
	cfg.MaxDepth = max(*maxDepthFlag, *depthFlag)

	if err := run(cfg, opts, logger, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("searchbench")
		os.Exit(1)
	}
}

// run performs the searches. Profiles are flushed before it returns, also on
// error.
func run(cfg engine.Config, opts benchOptions, logger zerolog.Logger, out io.Writer) error {
	if cfg.Depth <= 0 {
		return fmt.Errorf("depth must be positive, got %d", cfg.Depth)
	}

	// --- Optional CPU profiling setup ---
	if opts.cpuProfile != "" {
		cpuFile, err := os.Create(opts.cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			cpuFile.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := position.StartFEN
	if opts.fen != "" {
		fen = opts.fen
	}
	start, err := position.ParseFEN(fen)
	if err != nil {
		return fmt.Errorf("bad position: %w", err)
	}

	eng, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("engine setup: %w", err)
	}

	fmt.Fprintf(out, "searchbench: fen=%q depth=%d maxdepth=%d threads=%d repeat=%d\n",
		fen, cfg.Depth, cfg.MaxDepth, cfg.Threads, opts.repeat)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < opts.repeat; i++ {
		board := start
		res, err := eng.BestMove(&board, board.Halfmoveclock, cfg.Depth, cfg.MaxDepth, opts.budget, time.Now())
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		totalNodes += res.Nodes
		fmt.Fprintf(out, "iteration %d: bestmove %s (%s) depth=%d/%d eval=%.2f nodes=%d time=%v\n",
			i+1, position.UCI(res.Move), res.SAN, res.Depth, res.MaxDepth, res.Score, res.Nodes, res.Elapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Fprintf(out, "total time: %v  nodes: %d  nps: %.0f\n", totalElapsed, totalNodes, float64(totalNodes)/totalElapsed.Seconds())

	// --- Optional heap profile at the end ---
	if opts.memProfile != "" {
		f, err := os.Create(opts.memProfile)
		if err != nil {
			return fmt.Errorf("could not create memory profile: %w", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %w", err)
		}
	}
	return nil
}
