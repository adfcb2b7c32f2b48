package engine

import (
	"context"
	"sync"

	"github.com/davide/gamereview/internal/analysis"
	"github.com/davide/gamereview/internal/logger"
)

// Pool manages a set of reusable engine processes. It implements
// analysis.Evaluator, so a Reviewer can fan ply evaluations out over the
// pooled engines.
type Pool struct {
	path    string
	size    int
	engines chan *Engine
	mu      sync.Mutex
	closed  bool
	log     *logger.Logger
}

// NewPool creates a pool with the specified number of engines.
func NewPool(path string, size int, opts ...Option) (*Pool, error) {
	if size <= 0 {
		size = 2
	}
	log := logger.Default().WithPrefix("engine-pool")

	pool := &Pool{
		path:    path,
		size:    size,
		engines: make(chan *Engine, size),
		log:     log,
	}

	// Pre-warm the pool
	log.Info("initializing engine pool with %d engines", size)
	for i := 0; i < size; i++ {
		engine, err := NewEngine(path, opts...)
		if err != nil {
			pool.Close() // Clean up any already-created engines
			return nil, err
		}
		pool.engines <- engine
	}
	log.Info("engine pool ready")
	return pool, nil
}

// Acquire gets an engine from the pool, blocking if none are available.
func (p *Pool) Acquire(ctx context.Context) (*Engine, error) {
	select {
	case engine := <-p.engines:
		return engine, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns an engine to the pool.
func (p *Pool) Release(engine *Engine) {
	if engine == nil {
		return
	}
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		// Pool is closed, close the engine
		engine.Close()
		return
	}
	select {
	case p.engines <- engine:
		// Returned to pool
	default:
		// Pool full, close the engine
		engine.Close()
	}
}

// TopMoves acquires an engine, searches the position, and releases it back.
func (p *Pool) TopMoves(ctx context.Context, fen string, n int) ([]analysis.Candidate, error) {
	engine, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Release(engine)

	return engine.TopMoves(ctx, fen, n)
}

// Evaluate acquires an engine, scores the position, and releases it back.
func (p *Pool) Evaluate(ctx context.Context, fen string) (analysis.Eval, error) {
	engine, err := p.Acquire(ctx)
	if err != nil {
		return analysis.Eval{}, err
	}
	defer p.Release(engine)

	return engine.Evaluate(ctx, fen)
}

// Close shuts down all engines in the pool.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	p.log.Info("closing engine pool")
	close(p.engines)
	for engine := range p.engines {
		engine.Close()
	}
}

// Available returns how many engines are currently idle.
func (p *Pool) Available() int {
	return len(p.engines)
}
