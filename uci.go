package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"

	"chessbot/engine"
	"chessbot/position"
	"chessbot/tablebase"
)

func main() {
	cfg := engine.DefaultConfig()
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "starting search depth in plies")
	flag.IntVar(&cfg.MaxDepth, "maxdepth", cfg.MaxDepth, "starting ply ceiling")
	flag.DurationVar(&cfg.Budget, "budget", cfg.Budget, "time per move when the GUI sends no clock")
	flag.IntVar(&cfg.Threads, "threads", cfg.Threads, "root moves searched in parallel")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "move order seed (0 = random)")
	solver := flag.Bool("solver", true, "answer small endgames with the built-in mate solver")
	level := flag.String("log", "info", "log level (debug, info, warn, error, disabled)")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -log level: %v\n", err)
		os.Exit(2)
	}
	// stdout belongs to the GUI.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).With().Timestamp().Logger()

	opts := []engine.Option{engine.WithLogger(logger)}
	if *solver {
		opts = append(opts, engine.WithTablebase(tablebase.NewSolver(tablebase.DefaultMateDepth)))
	}
	eng, err := engine.New(cfg, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("engine setup")
	}
	if err := uciLoop(os.Stdin, os.Stdout, eng); err != nil {
		logger.Fatal().Err(err).Msg("reading commands")
	}
}

type uciSession struct {
	eng   *engine.Engine
	board dragontoothmg.Board
	fifty uint8

	mu      sync.Mutex // guards out
	out     io.Writer
	pending sync.WaitGroup
}

func (s *uciSession) println(a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, a...)
}

func (s *uciSession) printf(format string, a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, a...)
}

// uciLoop reads UCI commands from in until quit or EOF. A search started by
// go answers on its own goroutine; quit and EOF wait for it.
func uciLoop(in io.Reader, out io.Writer, eng *engine.Engine) error {
	s := &uciSession{eng: eng, out: out}
	s.newGame()
	defer s.pending.Wait()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			s.println("id name chessbot")
			s.println("id author chessbot developers")
			s.println("uciok")
		case "isready":
			s.println("readyok")
		case "ucinewgame":
			s.pending.Wait()
			s.newGame()
		case "position":
			s.position(tokens[1:])
		case "go":
			s.pending.Wait()
			s.goCommand(tokens[1:])
		case "stop":
			// Searches are bounded by their budget and cannot be interrupted.
		case "eval":
			s.printf("info string eval %.2f fifty %d\n", engine.Score(&s.board, s.fifty), s.fifty)
		case "d":
			s.printf("info string fen %s\n", s.board.ToFen())
		case "quit":
			return nil
		default:
			s.println("info string Unknown command:", line)
		}
	}
	return scanner.Err()
}

func (s *uciSession) newGame() {
	s.board = position.MustParseFEN(position.StartFEN)
	s.fifty = 0
}

func (s *uciSession) position(args []string) {
	if len(args) == 0 {
		s.println("info string Malformed position command")
		return
	}
	var fen string
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		fen = position.StartFEN
	case "fen":
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		fen = strings.Join(rest[:i], " ")
		rest = rest[i:]
	default:
		s.println("info string Invalid position subcommand")
		return
	}

	board, err := position.ParseFEN(fen)
	if err != nil {
		s.println("info string Invalid fen position:", err)
		return
	}
	fifty := board.Halfmoveclock
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, moveStr := range rest[1:] {
			m, err := position.FindMove(&board, moveStr)
			if err != nil {
				s.println("info string", err)
				return
			}
			fifty = position.NextFifty(&board, m, fifty)
			board = position.Apply(&board, m)
		}
	}
	s.board, s.fifty = board, fifty
}

// goCommand parses the search limits and starts the search. With an explicit
// depth and no clock a single round runs at that depth.
func (s *uciSession) goCommand(args []string) {
	cfg := s.eng.Config()
	req := s.eng.NewRequest(s.board, s.fifty)

	var wTime, bTime, wInc, bInc, moveTime time.Duration
	depthGiven := false
	for i := 0; i < len(args); i++ {
		token := strings.ToLower(args[i])
		if token == "infinite" {
			continue
		}
		if i+1 >= len(args) {
			s.println("info string Malformed go command option", token)
			break
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			s.println("info string Malformed go command option; could not convert", token)
			i++
			continue
		}
		ms := time.Duration(n) * time.Millisecond
		switch token {
		case "wtime":
			wTime = ms
		case "btime":
			bTime = ms
		case "winc":
			wInc = ms
		case "binc":
			bInc = ms
		case "movetime":
			moveTime = ms
		case "depth":
			req.Depth = n
			depthGiven = true
		case "maxdepth":
			req.MaxDepth = n
		default:
			s.println("info string Unknown go subcommand", token)
		}
		i++
	}
	if req.MaxDepth < req.Depth {
		req.MaxDepth = max(cfg.MaxDepth, req.Depth)
	}

	remaining, inc := wTime, wInc
	if !s.board.Wtomove {
		remaining, inc = bTime, bInc
	}
	switch {
	case moveTime > 0:
		req.Budget = moveTime
	case remaining > 0:
		req.Budget = engine.AllocateBudget(&s.board, remaining, inc)
	case depthGiven:
		req.Budget = 0
	}

	white := s.board.Wtomove
	replies := s.eng.Start(req)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.report(<-replies, white)
	}()
}

func (s *uciSession) report(r engine.Reply, whiteToMove bool) {
	if r.Err != nil {
		s.println("info string", r.Err)
		s.println("bestmove 0000")
		return
	}
	res := r.Result
	// UCI scores are from the side to move.
	score := res.Score
	if !whiteToMove {
		score = -score
	}
	s.printf("info depth %d seldepth %d score %s nodes %d time %d\n",
		res.Depth, res.MaxDepth, uciScore(score), res.Nodes, res.Elapsed.Milliseconds())
	s.println("bestmove", position.UCI(res.Move))
}

// maxCentipawns caps scores that carry no mate distance, such as tablebase
// verdicts.
const maxCentipawns = 20000

func uciScore(score float32) string {
	if n, ok := engine.MateIn(score); ok {
		return fmt.Sprintf("mate %d", n)
	}
	cp := max(-maxCentipawns, min(maxCentipawns, int(score*100)))
	return fmt.Sprintf("cp %d", cp)
}
