package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/davide/gamereview/internal/analysis"
	"github.com/davide/gamereview/internal/logger"
)

const (
	defaultDepth = 18
	evalTimeout  = 8 * time.Second
)

// Engine drives a single UCI engine subprocess. All evaluation scores are
// normalized to White's perspective before they leave this package; UCI
// engines report from the side to move.
type Engine struct {
	path  string
	depth int
	log   *logger.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  ioWriter
	stdout *bufio.Reader
}

type ioWriter interface {
	Write([]byte) (int, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithDepth sets the search depth for evaluations.
func WithDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.depth = depth
		}
	}
}

func NewEngine(path string, opts ...Option) (*Engine, error) {
	log := logger.Default().WithPrefix("engine")

	if path == "" {
		path = "stockfish"
	}

	log.Info("starting engine: %s", path)
	cmd := exec.Command(path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		log.Error("failed to create stdin pipe: %v", err)
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Error("failed to create stdout pipe: %v", err)
		return nil, err
	}

	engine := &Engine{
		path:   path,
		depth:  defaultDepth,
		log:    log,
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
	}
	for _, opt := range opts {
		opt(engine)
	}

	if err := cmd.Start(); err != nil {
		log.Error("failed to start engine: %v", err)
		return nil, err
	}

	log.Debug("initializing UCI protocol")
	if err := engine.init(); err != nil {
		log.Error("failed to initialize UCI: %v", err)
		return nil, err
	}

	log.Info("engine ready")
	return engine, nil
}

func (e *Engine) init() error {
	if err := e.send("uci"); err != nil {
		return err
	}
	if err := e.waitFor("uciok", 2*time.Second); err != nil {
		return err
	}
	if err := e.send("isready"); err != nil {
		return err
	}
	return e.waitFor("readyok", 2*time.Second)
}

func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return nil
	}

	e.log.Debug("closing engine")
	_ = e.sendLocked("quit")
	err := e.cmd.Wait()
	e.cmd = nil

	if err != nil {
		e.log.Debug("engine process exited: %v", err)
	} else {
		e.log.Debug("engine process exited cleanly")
	}

	return err
}

// TopMoves searches the position and returns the best n lines, strongest
// first.
func (e *Engine) TopMoves(ctx context.Context, fen string, n int) ([]analysis.Candidate, error) {
	if n <= 0 {
		n = 1
	}
	result, err := e.search(ctx, fen, n)
	if err != nil {
		return nil, err
	}
	if len(result.candidates) == 0 {
		return nil, errors.New("engine returned no lines")
	}
	return result.candidates, nil
}

// Evaluate scores the position without asking for alternative lines. It
// works on terminal positions too, where no move exists to suggest.
func (e *Engine) Evaluate(ctx context.Context, fen string) (analysis.Eval, error) {
	result, err := e.search(ctx, fen, 1)
	if err != nil {
		return analysis.Eval{}, err
	}
	if len(result.candidates) > 0 {
		return result.candidates[0].Eval, nil
	}
	if !result.scored {
		return analysis.Eval{}, errors.New("engine returned no score")
	}
	return result.terminal, nil
}

type searchResult struct {
	candidates []analysis.Candidate
	// terminal holds the score of a position with no legal moves, where the
	// engine emits a bare score and "bestmove (none)".
	terminal analysis.Eval
	scored   bool
}

type pvLine struct {
	eval analysis.Eval
	move string
}

func (e *Engine) search(ctx context.Context, fen string, multiPV int) (searchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	log := e.log.WithFields(map[string]any{
		"depth":   e.depth,
		"multipv": multiPV,
	})

	start := time.Now()
	log.Debug("evaluating position")

	if err := e.sendLocked("ucinewgame"); err != nil {
		return searchResult{}, err
	}
	if err := e.sendLocked(fmt.Sprintf("setoption name MultiPV value %d", multiPV)); err != nil {
		return searchResult{}, err
	}
	if err := e.sendLocked("position fen " + fen); err != nil {
		return searchResult{}, err
	}
	if err := e.sendLocked(fmt.Sprintf("go depth %d", e.depth)); err != nil {
		return searchResult{}, err
	}

	parts := strings.Fields(fen)
	blackToMove := len(parts) > 1 && parts[1] == "b"

	lines := map[int]pvLine{}
	var result searchResult
	deadline := time.Now().Add(evalTimeout)
	for {
		if ctx.Err() != nil {
			log.Warn("evaluation cancelled: %v", ctx.Err())
			return searchResult{}, ctx.Err()
		}
		if time.Now().After(deadline) {
			log.Error("evaluation timed out after %v", evalTimeout)
			return searchResult{}, errors.New("engine timeout")
		}
		raw, err := e.stdout.ReadString('\n')
		if err != nil {
			log.Error("failed to read from engine: %v", err)
			return searchResult{}, err
		}
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "info") {
			if info, ok := parseInfo(line, blackToMove); ok {
				if info.move == "" {
					result.terminal = info.eval
					result.scored = true
				} else {
					lines[info.rank] = pvLine{eval: info.eval, move: info.move}
				}
			}
			continue
		}
		if strings.HasPrefix(line, "bestmove") {
			result.candidates = collectLines(lines)
			log.Debug("evaluation completed in %v: %d lines", time.Since(start), len(result.candidates))
			return result, nil
		}
	}
}

type infoLine struct {
	rank int
	eval analysis.Eval
	move string
}

// parseInfo extracts the multipv rank, score and first pv move from one
// "info" line, normalizing the score to White's perspective.
func parseInfo(line string, blackToMove bool) (infoLine, bool) {
	parts := strings.Fields(line)
	info := infoLine{rank: 1}

	var depth int
	var cp float64
	var mate int
	var hasCP, hasMate bool

	for i := 0; i < len(parts); i++ {
		switch parts[i] {
		case "depth":
			if i+1 < len(parts) {
				depth, _ = strconv.Atoi(parts[i+1])
			}
		case "multipv":
			if i+1 < len(parts) {
				if v, err := strconv.Atoi(parts[i+1]); err == nil {
					info.rank = v
				}
			}
		case "score":
			if i+2 >= len(parts) {
				return infoLine{}, false
			}
			v, err := strconv.Atoi(parts[i+2])
			if err != nil {
				return infoLine{}, false
			}
			switch parts[i+1] {
			case "cp":
				cp, hasCP = float64(v), true
			case "mate":
				mate, hasMate = v, true
			}
		case "pv":
			if i+1 < len(parts) {
				info.move = parts[i+1]
			}
		}
	}

	if !hasCP && !hasMate {
		return infoLine{}, false
	}

	if hasMate {
		// A reported mate of zero means the side to move is already
		// checkmated; treat it as the shortest mate for the other side so
		// the sign survives normalization.
		if mate == 0 {
			mate = -1
		}
		if blackToMove {
			mate = -mate
		}
		info.eval = analysis.MateIn(mate, depth)
		return info, true
	}

	if blackToMove {
		cp = -cp
	}
	info.eval = analysis.Centipawns(cp, depth)
	return info, true
}

func collectLines(lines map[int]pvLine) []analysis.Candidate {
	ranks := make([]int, 0, len(lines))
	for rank := range lines {
		ranks = append(ranks, rank)
	}
	sort.Ints(ranks)

	out := make([]analysis.Candidate, 0, len(lines))
	for _, rank := range ranks {
		pv := lines[rank]
		out = append(out, analysis.Candidate{MoveUCI: pv.move, Eval: pv.eval})
	}
	return out
}

func (e *Engine) send(cmd string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sendLocked(cmd)
}

func (e *Engine) sendLocked(cmd string) error {
	_, err := e.stdin.Write([]byte(cmd + "\n"))
	return err
}

func (e *Engine) waitFor(marker string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if time.Now().After(deadline) {
			e.log.Error("timeout waiting for %s", marker)
			return fmt.Errorf("timeout waiting for %s", marker)
		}
		line, err := e.stdout.ReadString('\n')
		if err != nil {
			return err
		}
		if strings.Contains(line, marker) {
			return nil
		}
	}
}
