// Command selfplay lets the engine play full games against itself and prints
// the moves and the result of each game.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chessbot/engine"
	"chessbot/position"
	"chessbot/tablebase"
)

// drawAt ends a game by the fifty-move rule once the counter passes the
// search's own draw threshold.
const drawAt = engine.FiftyMoveLimit + 1

type outcome struct {
	Result string // "1-0", "0-1", "1/2-1/2" or "*" when cut short
	Reason string
	Moves  []string
}

func main() {
	cfg := engine.DefaultConfig()
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "starting search depth in plies")
	flag.IntVar(&cfg.MaxDepth, "maxdepth", cfg.MaxDepth, "starting ply ceiling")
	flag.DurationVar(&cfg.Budget, "budget", cfg.Budget, "time per move")
	flag.IntVar(&cfg.Threads, "threads", cfg.Threads, "root moves searched in parallel")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "move order seed (0 = random)")
	fen := flag.String("fen", position.StartFEN, "starting position")
	games := flag.Int("games", 1, "number of games to play")
	maxPlies := flag.Int("maxplies", 400, "stop a game after this many plies")
	solver := flag.Bool("solver", true, "use the built-in endgame mate solver")
	verbose := flag.Bool("v", false, "log every search round")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(level)

	start, err := position.ParseFEN(*fen)
	if err != nil {
		logger.Fatal().Err(err).Msg("starting position")
	}
	opts := []engine.Option{engine.WithLogger(logger)}
	if *solver {
		opts = append(opts, engine.WithTablebase(tablebase.NewSolver(tablebase.DefaultMateDepth)))
	}
	eng, err := engine.New(cfg, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("engine setup")
	}

	score := map[string]int{}
	for g := 1; g <= *games; g++ {
		fmt.Printf("game %d\n", g)
		res, err := playGame(eng, start, *maxPlies, os.Stdout)
		if err != nil {
			logger.Fatal().Err(err).Int("game", g).Msg("game aborted")
		}
		score[res.Result]++
		fmt.Printf("%s (%s)\n\n", res.Result, res.Reason)
	}
	fmt.Printf("white %d, black %d, draws %d, unfinished %d\n", score["1-0"], score["0-1"], score["1/2-1/2"], score["*"])
}

// playGame plays from start until the game is decided or maxPlies is reached.
// Each move is requested asynchronously and written to out as it arrives.
func playGame(eng *engine.Engine, start dragontoothmg.Board, maxPlies int, out io.Writer) (outcome, error) {
	board := start
	fifty := start.Halfmoveclock
	var moves []string
	for ply := 0; ; ply++ {
		switch position.GetStatus(&board) {
		case position.Checkmate:
			if board.Wtomove {
				return outcome{"0-1", "checkmate", moves}, nil
			}
			return outcome{"1-0", "checkmate", moves}, nil
		case position.Stalemate:
			return outcome{"1/2-1/2", "stalemate", moves}, nil
		}
		if fifty >= drawAt {
			return outcome{"1/2-1/2", "fifty-move rule", moves}, nil
		}
		if ply >= maxPlies {
			return outcome{"*", "ply limit", moves}, nil
		}

		reply := <-eng.Start(eng.NewRequest(board, fifty))
		if reply.Err != nil {
			return outcome{}, fmt.Errorf("ply %d (%s): %w", ply, board.ToFen(), reply.Err)
		}
		res := reply.Result
		if board.Wtomove {
			fmt.Fprintf(out, "%d. %s", int(board.Fullmoveno), res.SAN)
		} else {
			fmt.Fprintf(out, " %s\n", res.SAN)
		}
		moves = append(moves, res.SAN)
		board = position.Apply(&board, res.Move)
		fifty = res.Fifty
	}
}

func (o outcome) String() string {
	return fmt.Sprintf("%s %s [%s]", strings.Join(o.Moves, " "), o.Result, o.Reason)
}
