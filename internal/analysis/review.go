package analysis

import (
	"context"
	"sync"

	"github.com/davide/gamereview/internal/board"
	"github.com/davide/gamereview/internal/errors"
	"github.com/davide/gamereview/internal/logger"
)

const defaultReviewWorkers = 4

// Reviewer runs the full post-game pipeline: it evaluates every ply with the
// engine, classifies each move, scans the resulting positions for hanging and
// trapped pieces, and aggregates critical moments and per-side accuracy.
type Reviewer struct {
	cfg        Config
	evaluator  Evaluator
	classifier *Classifier
	workers    int
	topN       int
}

// ReviewerOption configures a Reviewer.
type ReviewerOption func(*Reviewer)

// WithWorkers sets how many plies are evaluated concurrently.
func WithWorkers(n int) ReviewerOption {
	return func(r *Reviewer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithCandidates sets how many engine lines are requested per position.
func WithCandidates(n int) ReviewerOption {
	return func(r *Reviewer) {
		if n > 0 {
			r.topN = n
		}
	}
}

func NewReviewer(cfg Config, evaluator Evaluator, opts ...ReviewerOption) *Reviewer {
	r := &Reviewer{
		cfg:        cfg,
		evaluator:  evaluator,
		classifier: NewClassifier(cfg),
		workers:    defaultReviewWorkers,
		topN:       3,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Review analyzes a replayed game. Plies are evaluated concurrently but the
// returned report lists moves in ply order, so two runs over the same input
// produce identical reports. A ply whose evaluation fails is recorded with
// its error and excluded from critical moments and accuracy; a cancelled
// context aborts the whole review.
func (r *Reviewer) Review(ctx context.Context, plies []Ply) (*GameReport, error) {
	if len(plies) == 0 {
		return nil, errors.NewEmptyGameError()
	}

	log := logger.FromContext(ctx).WithPrefix("review")
	records := make([]MoveRecord, len(plies))

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.workers)

	for i, ply := range plies {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, ply Ply) {
			defer wg.Done()
			defer func() { <-sem }()
			records[i] = r.reviewPly(ctx, ply)
		}(i, ply)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed := 0
	for i := range records {
		if records[i].Failed() {
			failed++
			continue
		}
		label, delta := r.classifier.Classify(plies[i], records[i])
		records[i].Classification = label
		records[i].Delta = delta
	}
	if failed > 0 {
		log.Warn("review finished with gaps: plies=%d, failed=%d", len(plies), failed)
	}

	return &GameReport{
		Moves:           records,
		CriticalMoments: FindCriticalMoments(r.cfg, records),
		WhiteAccuracy:   ComputeAccuracy(r.cfg, records, board.White),
		BlackAccuracy:   ComputeAccuracy(r.cfg, records, board.Black),
	}, nil
}

// reviewPly evaluates a single ply. Failures are captured in the record
// rather than returned: one bad ply must not sink the rest of the game.
func (r *Reviewer) reviewPly(ctx context.Context, ply Ply) MoveRecord {
	rec := MoveRecord{
		Ply:       ply.Index,
		Color:     ply.Side(),
		MoveUCI:   ply.MoveUCI,
		FENBefore: ply.FENBefore,
		FENAfter:  ply.FENAfter,
	}

	posAfter, err := board.ParseFEN(ply.FENAfter)
	if err != nil {
		rec.Err = errors.NewInvalidPositionError(err.Error()).Error()
		return rec
	}

	candidates, err := r.evaluator.TopMoves(ctx, ply.FENBefore, r.topN)
	if err != nil || len(candidates) == 0 {
		rec.Err = errors.NewEvaluationUnavailableError(ply.Index, err).Error()
		return rec
	}
	actual, err := r.evaluator.Evaluate(ctx, ply.FENAfter)
	if err != nil {
		rec.Err = errors.NewEvaluationUnavailableError(ply.Index, err).Error()
		return rec
	}

	rec.Candidates = candidates
	rec.BestMove = candidates[0].MoveUCI
	rec.BestEval = candidates[0].Eval
	rec.ActualEval = actual
	rec.WinBefore = r.cfg.WinProbability(rec.BestEval.Scalar())
	rec.WinAfter = r.cfg.WinProbability(actual.Scalar())
	rec.Delta = rec.WinAfter - rec.WinBefore

	danger, err := AnalyzePosition(posAfter)
	if err != nil {
		rec.Err = err.Error()
		return rec
	}
	rec.Danger = danger

	return rec
}
