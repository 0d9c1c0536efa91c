package engine

import (
	"fmt"
	"runtime"
	"time"
)

// MaxSearchDepth is the nominal depth at which iterative deepening stops even
// if time remains.
const MaxSearchDepth = 50

// Config holds the search knobs a caller usually wants to set once.
type Config struct {
	Depth    int           // starting nominal depth
	MaxDepth int           // starting ply ceiling
	Budget   time.Duration // per-move time budget
	Threads  int           // root moves searched concurrently
	Seed     uint64        // 0 picks a random seed
}

func DefaultConfig() Config {
	return Config{
		Depth:    4,
		MaxDepth: 10,
		Budget:   125 * time.Millisecond,
		Threads:  runtime.NumCPU(),
	}
}

func (c Config) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("engine: depth must be positive, got %d", c.Depth)
	}
	if c.MaxDepth < c.Depth {
		return fmt.Errorf("engine: max depth %d is below depth %d", c.MaxDepth, c.Depth)
	}
	if c.Threads < 1 {
		return fmt.Errorf("engine: threads must be positive, got %d", c.Threads)
	}
	if c.Budget < 0 {
		return fmt.Errorf("engine: negative budget %v", c.Budget)
	}
	return nil
}
