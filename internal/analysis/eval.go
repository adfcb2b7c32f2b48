package analysis

import (
	"fmt"
	"math"

	"github.com/davide/gamereview/internal/board"
)

// Mate scores are mapped onto the centipawn scale above any reachable
// centipawn value, with nearer mates more extreme: mate-in-1 becomes 29900,
// mate-in-2 becomes 29800, and so on. Plain centipawn scores are capped below
// the slowest representable mate so the two never interleave.
const (
	mateValueBase      = 30000.0
	mateValueDecrement = 100.0
	maxMateDistance    = 99
	centipawnCeiling   = 20000.0
)

// winProbEpsilon keeps probabilities strictly inside (0,1) even for mate
// scores that would saturate the logistic in float64.
const winProbEpsilon = 1e-9

// Eval is a single engine evaluation of a position, always from White's
// perspective. Exactly one of CP or Mate is meaningful: when Mate is non-nil
// it is the signed number of moves to forced mate and CP is ignored.
type Eval struct {
	CP    float64 `json:"cp"`
	Mate  *int    `json:"mate,omitempty"`
	Depth int     `json:"depth"`
}

// MateIn builds a forced-mate evaluation. Positive n means White mates.
func MateIn(n, depth int) Eval {
	return Eval{Mate: &n, Depth: depth}
}

// Centipawns builds a plain centipawn evaluation.
func Centipawns(cp float64, depth int) Eval {
	return Eval{CP: cp, Depth: depth}
}

// Scalar normalizes the evaluation into one comparable centipawn-scale
// number. Mate markers dominate every centipawn score, and shorter mates
// dominate longer ones.
func (e Eval) Scalar() float64 {
	if e.Mate != nil {
		n := *e.Mate
		if n == 0 {
			return 0
		}
		dist := n
		if dist < 0 {
			dist = -dist
		}
		if dist > maxMateDistance {
			dist = maxMateDistance
		}
		scalar := mateValueBase - float64(dist)*mateValueDecrement
		if n < 0 {
			return -scalar
		}
		return scalar
	}
	return math.Max(-centipawnCeiling, math.Min(centipawnCeiling, e.CP))
}

// IsMate reports whether the evaluation is a forced-mate marker.
func (e Eval) IsMate() bool { return e.Mate != nil }

func (e Eval) String() string {
	if e.Mate != nil {
		return fmt.Sprintf("M%d", *e.Mate)
	}
	return fmt.Sprintf("%+.0f", e.CP)
}

// WinProbability maps a normalized scalar to White's estimated win chance in
// (0,1). The transform is a logistic curve, monotonically increasing in the
// scalar and clamped away from the exact bounds.
func (c Config) WinProbability(scalar float64) float64 {
	chances := 2/(1+math.Exp(-c.WinProbScale*scalar)) - 1
	p := 0.5 + 0.5*math.Max(-1, math.Min(1, chances))
	return math.Max(winProbEpsilon, math.Min(1-winProbEpsilon, p))
}

// WinProbabilityFor is WinProbability seen from the given side:
// P(scalar, white) == 1 - P(-scalar, black).
func (c Config) WinProbabilityFor(scalar float64, side board.Color) float64 {
	p := c.WinProbability(scalar)
	if side == board.Black {
		return 1 - p
	}
	return p
}
