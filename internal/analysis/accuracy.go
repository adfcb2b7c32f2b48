package analysis

import (
	"math"

	"github.com/davide/gamereview/internal/board"
)

// Accuracy aggregates per-move win-probability losses into one 0-100 score
// per side. The aggregation is deliberately concave: each move's accuracy
// decays exponentially with its win-percentage loss, and the game score
// averages a harmonic mean (which a single blunder drags down hard) with a
// volatility-weighted mean (which weights sharp positions more). A perfect
// game scores 100; a missed forced mate lands near 0.

// moveAccuracy converts one move's win percentages (mover's perspective,
// 0-100) into that move's accuracy.
func (c Config) moveAccuracy(winBefore, winAfter float64) float64 {
	if winAfter >= winBefore {
		return 100
	}
	diff := winBefore - winAfter
	raw := c.AccuracyA*math.Exp(c.AccuracyB*diff) + c.AccuracyC
	return math.Max(0, math.Min(100, raw+1))
}

func harmonicMean(values []float64) float64 {
	var reciprocalSum float64
	var n int
	for _, v := range values {
		if v <= 0 {
			continue
		}
		reciprocalSum += 1 / v
		n++
	}
	if n == 0 || reciprocalSum == 0 {
		return 0
	}
	return float64(n) / reciprocalSum
}

func (c Config) windowStdDev(seq []float64) float64 {
	if len(seq) == 0 {
		return c.VolatilityMinWeight
	}
	var mean float64
	for _, v := range seq {
		mean += v
	}
	mean /= float64(len(seq))
	var variance float64
	for _, v := range seq {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(seq))
	return math.Sqrt(variance)
}

// volatilityWeightedMean weights each move's accuracy by the standard
// deviation of the win percentages in a small window around it, so moves in
// sharp positions count for more than shuffling in dead-equal ones.
func (c Config) volatilityWeightedMean(accuracies, winChances []float64, side board.Color) float64 {
	if len(accuracies) == 0 {
		return 0
	}
	var weightedSum, totalWeight float64
	for i, acc := range accuracies {
		baseIndex := i*2 + 1
		if side == board.Black {
			baseIndex = i*2 + 2
		}
		start := baseIndex - c.VolatilityWindow
		if start < 0 {
			start = 0
		}
		end := baseIndex + c.VolatilityWindow
		if end > len(winChances)-1 {
			end = len(winChances) - 1
		}
		var window []float64
		if start <= end {
			window = winChances[start : end+1]
		}
		weight := math.Max(c.VolatilityMinWeight, math.Min(c.VolatilityMaxWeight, c.windowStdDev(window)))
		weightedSum += acc * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// ComputeAccuracy summarizes one side's move quality over a game. The result
// is deterministic for a given record sequence; plies that failed analysis
// are excluded. A side with no analyzed moves gets the sentinel 100 — no
// errors observed is a perfect score, not a failure.
func ComputeAccuracy(cfg Config, records []MoveRecord, side board.Color) AccuracySummary {
	var accuracies []float64
	var winChances []float64

	first := true
	for _, rec := range records {
		if rec.Failed() {
			continue
		}
		if first {
			winChances = append(winChances, rec.WinBefore*100)
			first = false
		}
		winChances = append(winChances, rec.WinAfter*100)

		if rec.Color != side {
			continue
		}
		before, after := rec.WinBefore*100, rec.WinAfter*100
		if side == board.Black {
			before, after = 100-before, 100-after
		}
		accuracies = append(accuracies, cfg.moveAccuracy(before, after))
	}

	if len(accuracies) == 0 {
		return AccuracySummary{Harmonic: 100, Weighted: 100, Final: 100}
	}

	harmonic := harmonicMean(accuracies)
	weighted := cfg.volatilityWeightedMean(accuracies, winChances, side)
	return AccuracySummary{
		Harmonic: harmonic,
		Weighted: weighted,
		Final:    (harmonic + weighted) / 2,
		Moves:    len(accuracies),
	}
}
