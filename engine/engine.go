// Package engine picks a move for a position under a time budget: a material
// evaluator, an alpha-beta search core and a root dispatcher that searches
// every root move in parallel with iterative deepening.
package engine

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chessbot/tablebase"
)

// ErrNoLegalMoves is returned when the engine is asked to move in a position
// that is already checkmate or stalemate.
var ErrNoLegalMoves = errors.New("engine: no legal moves")

// Engine is safe for concurrent use; every call to BestMove builds its own
// search state.
type Engine struct {
	cfg    Config
	seed   uint64
	log    zerolog.Logger
	render Renderer
	tb     *tablebase.Prober
	oracle tablebase.Oracle
}

type Option func(*Engine)

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.render = r }
}

// WithTablebase sets the endgame oracle. Without it probes always miss.
func WithTablebase(o tablebase.Oracle) Option {
	return func(e *Engine) { e.oracle = o }
}

// WithSeed overrides Config.Seed. A fixed seed makes move order, and so the
// chosen move, reproducible for a given position and round count.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = seed }
}

func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:    cfg,
		seed:   cfg.Seed,
		log:    log.Logger,
		render: SANRenderer{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.seed == 0 {
		e.seed = randomSeed()
	}
	e.tb = tablebase.NewProber(e.oracle, e.log)
	return e, nil
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) Seed() uint64 { return e.seed }

// TablebaseProbes is the number of probes that reached the oracle so far.
func (e *Engine) TablebaseProbes() uint64 { return e.tb.Probes() }
