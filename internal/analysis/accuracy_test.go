package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davide/gamereview/internal/board"
)

func rec(ply int, winBefore, winAfter float64) MoveRecord {
	color := board.White
	if ply%2 == 1 {
		color = board.Black
	}
	return MoveRecord{Ply: ply, Color: color, WinBefore: winBefore, WinAfter: winAfter}
}

func TestMoveAccuracy(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 100.0, cfg.moveAccuracy(50, 50))
	assert.Equal(t, 100.0, cfg.moveAccuracy(50, 60), "a gain is a perfect move")

	small := cfg.moveAccuracy(50, 48)
	large := cfg.moveAccuracy(50, 30)
	huge := cfg.moveAccuracy(95, 5)
	assert.Greater(t, 100.0, small)
	assert.Greater(t, small, large)
	assert.Greater(t, large, huge)
	assert.GreaterOrEqual(t, huge, 0.0)

	assert.Equal(t, 0.0, cfg.moveAccuracy(100, 0), "a thrown-away win bottoms out")
}

func TestHarmonicMean(t *testing.T) {
	assert.Equal(t, 0.0, harmonicMean(nil))
	assert.InDelta(t, 100, harmonicMean([]float64{100, 100, 100}), 1e-9)
	assert.InDelta(t, 100, harmonicMean([]float64{0, 100}), 1e-9, "non-positive values are skipped")

	// The harmonic mean punishes one bad value far more than the average.
	mixed := harmonicMean([]float64{100, 100, 10})
	assert.Less(t, mixed, 70.0)
	assert.Greater(t, mixed, 0.0)
}

func TestComputeAccuracy_PerfectGame(t *testing.T) {
	cfg := DefaultConfig()
	records := []MoveRecord{
		rec(0, 0.52, 0.52),
		rec(1, 0.52, 0.52),
		rec(2, 0.52, 0.52),
		rec(3, 0.52, 0.52),
	}

	white := ComputeAccuracy(cfg, records, board.White)
	assert.InDelta(t, 100, white.Final, 1e-9)
	assert.Equal(t, 2, white.Moves)

	black := ComputeAccuracy(cfg, records, board.Black)
	assert.InDelta(t, 100, black.Final, 1e-9)
	assert.Equal(t, 2, black.Moves)
}

func TestComputeAccuracy_NoMovesForSide(t *testing.T) {
	cfg := DefaultConfig()
	records := []MoveRecord{rec(0, 0.52, 0.55)}

	summary := ComputeAccuracy(cfg, records, board.Black)
	assert.Equal(t, AccuracySummary{Harmonic: 100, Weighted: 100, Final: 100}, summary)
}

func TestComputeAccuracy_BlunderDragsScoreDown(t *testing.T) {
	cfg := DefaultConfig()
	clean := []MoveRecord{
		rec(0, 0.52, 0.52),
		rec(1, 0.52, 0.52),
		rec(2, 0.52, 0.52),
		rec(3, 0.52, 0.52),
	}
	blundered := []MoveRecord{
		rec(0, 0.52, 0.52),
		rec(1, 0.52, 0.52),
		rec(2, 0.52, 0.12),
		rec(3, 0.12, 0.12),
	}

	cleanWhite := ComputeAccuracy(cfg, clean, board.White)
	blunderWhite := ComputeAccuracy(cfg, blundered, board.White)
	assert.Less(t, blunderWhite.Final, cleanWhite.Final)
	assert.Less(t, blunderWhite.Final, 70.0)

	// Black never erred in either game.
	blunderBlack := ComputeAccuracy(cfg, blundered, board.Black)
	assert.InDelta(t, 100, blunderBlack.Final, 1e-9)
}

func TestComputeAccuracy_BlackPerspective(t *testing.T) {
	cfg := DefaultConfig()
	// White's win chance dropping on black's move is a gain for black.
	records := []MoveRecord{
		rec(0, 0.52, 0.52),
		rec(1, 0.52, 0.30),
	}

	black := ComputeAccuracy(cfg, records, board.Black)
	assert.InDelta(t, 100, black.Final, 1e-9)
}

func TestComputeAccuracy_SkipsFailedPlies(t *testing.T) {
	cfg := DefaultConfig()
	records := []MoveRecord{
		rec(0, 0.52, 0.52),
		{Ply: 1, Color: board.Black, Err: "evaluation unavailable"},
		rec(2, 0.52, 0.52),
	}

	white := ComputeAccuracy(cfg, records, board.White)
	assert.Equal(t, 2, white.Moves)
	assert.InDelta(t, 100, white.Final, 1e-9)

	black := ComputeAccuracy(cfg, records, board.Black)
	assert.Equal(t, 0, black.Moves)
	assert.InDelta(t, 100, black.Final, 1e-9)
}
