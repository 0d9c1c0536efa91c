package engine

import (
	"time"

	"github.com/dylhunn/dragontoothmg"
)

// Request is one move decision to run in the background.
type Request struct {
	Board    dragontoothmg.Board
	Fifty    uint8
	Depth    int
	MaxDepth int
	Budget   time.Duration
	Start    time.Time // zero means when Start is called
}

type Reply struct {
	Result Result
	Err    error
}

// NewRequest fills depth, ceiling and budget from the engine's Config.
func (e *Engine) NewRequest(b dragontoothmg.Board, fifty uint8) Request {
	return Request{
		Board:    b,
		Fifty:    fifty,
		Depth:    e.cfg.Depth,
		MaxDepth: e.cfg.MaxDepth,
		Budget:   e.cfg.Budget,
	}
}

// Start runs BestMove on its own goroutine. The returned channel yields exactly
// one Reply and is then closed. There is no way to cancel a started search.
func (e *Engine) Start(req Request) <-chan Reply {
	if req.Start.IsZero() {
		req.Start = time.Now()
	}
	out := make(chan Reply, 1)
	go func() {
		defer close(out)
		res, err := e.BestMove(&req.Board, req.Fifty, req.Depth, req.MaxDepth, req.Budget, req.Start)
		out <- Reply{Result: res, Err: err}
	}()
	return out
}
