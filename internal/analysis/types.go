package analysis

import (
	"context"
	"fmt"

	"github.com/davide/gamereview/internal/board"
)

// Label is the closed set of move quality classifications. Exactly one label
// is attached to every analyzed move.
type Label int8

const (
	LabelNone Label = iota
	LabelBrilliant
	LabelGreat
	LabelBest
	LabelExcellent
	LabelGood
	LabelInaccuracy
	LabelMistake
	LabelBlunder
	LabelForced
	LabelTheory
)

var labelNames = map[Label]string{
	LabelNone:       "",
	LabelBrilliant:  "brilliant",
	LabelGreat:      "great",
	LabelBest:       "best",
	LabelExcellent:  "excellent",
	LabelGood:       "good",
	LabelInaccuracy: "inaccuracy",
	LabelMistake:    "mistake",
	LabelBlunder:    "blunder",
	LabelForced:     "forced",
	LabelTheory:     "theory",
}

func (l Label) String() string { return labelNames[l] }

// ParseLabel restores a Label from its storage form.
func ParseLabel(s string) (Label, error) {
	for l, name := range labelNames {
		if name == s {
			return l, nil
		}
	}
	return LabelNone, fmt.Errorf("unknown classification %q", s)
}

// MarshalJSON renders the label as its lowercase name.
func (l Label) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON parses the lowercase name form.
func (l *Label) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid classification json %s", b)
	}
	parsed, err := ParseLabel(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Ply is one half-move of a replayed game, as produced by the rules provider.
type Ply struct {
	Index        int    `json:"index"`
	FENBefore    string `json:"fen_before"`
	FENAfter     string `json:"fen_after"`
	MoveUCI      string `json:"move"`
	LegalMoves   int    `json:"legal_moves"`
	DeliversMate bool   `json:"delivers_mate"`
	IsBook       bool   `json:"is_book"`
}

// Side returns the color that played this ply.
func (p Ply) Side() board.Color {
	if p.Index%2 == 0 {
		return board.White
	}
	return board.Black
}

// Candidate is one engine line: a move and the evaluation it leads to.
type Candidate struct {
	MoveUCI string `json:"move"`
	Eval    Eval   `json:"eval"`
}

// Evaluator is the engine collaborator the orchestrator consumes. All
// evaluations are from White's perspective. Failures are hard errors for the
// ply being analyzed, never silent zeros.
type Evaluator interface {
	// TopMoves returns up to n candidate lines for the position, best first.
	TopMoves(ctx context.Context, fen string, n int) ([]Candidate, error)
	// Evaluate scores a single position.
	Evaluate(ctx context.Context, fen string) (Eval, error)
}

// SquareDanger describes the attack/defense situation of one occupied square.
type SquareDanger struct {
	Square    board.Square    `json:"square"`
	Piece     board.PieceType `json:"piece"`
	Color     board.Color     `json:"color"`
	Attackers int             `json:"attackers"`
	Defenders int             `json:"defenders"`
	Hanging   bool            `json:"hanging"`
	Trapped   bool            `json:"trapped"`
	Score     float64         `json:"score"`
}

// DangerReport is the per-ply piece safety picture: one entry per occupied
// square, in square order. Recomputed independently every ply.
type DangerReport struct {
	Squares []SquareDanger `json:"squares"`
}

// MoveRecord is the complete per-ply analysis result. Immutable once the
// orchestrator has assembled it.
type MoveRecord struct {
	Ply        int         `json:"ply"`
	Color      board.Color `json:"color"`
	MoveUCI    string      `json:"move"`
	FENBefore  string      `json:"fen_before"`
	FENAfter   string      `json:"fen_after"`
	BestMove   string      `json:"best_move"`
	BestEval   Eval        `json:"best_eval"`
	ActualEval Eval        `json:"actual_eval"`

	// WinBefore/WinAfter are White's win probabilities before and after the
	// move; Delta is the moving side's probability loss, never negative.
	WinBefore float64 `json:"win_before"`
	WinAfter  float64 `json:"win_after"`
	Delta     float64 `json:"delta"`

	Candidates     []Candidate  `json:"candidates,omitempty"`
	Classification Label        `json:"classification"`
	Danger         DangerReport `json:"danger"`

	// Err marks a ply whose analysis failed; the rest of the record is then
	// a gap in the report, not a result.
	Err string `json:"error,omitempty"`
}

// Failed reports whether this ply is a gap in the report.
func (r MoveRecord) Failed() bool { return r.Err != "" }

// CriticalMoment marks a ply whose win-probability swing crossed the
// significance threshold.
type CriticalMoment struct {
	Ply       int     `json:"ply"`
	WinBefore float64 `json:"win_before"`
	WinAfter  float64 `json:"win_after"`
	Swing     float64 `json:"swing"`
}

// AccuracySummary is the aggregate move quality of one side over a game.
type AccuracySummary struct {
	Harmonic float64 `json:"harmonic"`
	Weighted float64 `json:"weighted"`
	Final    float64 `json:"final"`
	Moves    int     `json:"moves"`
}

// GameReport is the root aggregate handed back to the caller: per-ply records
// in order, the critical moments, and the per-side accuracy. Read-only after
// construction.
type GameReport struct {
	Moves           []MoveRecord     `json:"moves"`
	CriticalMoments []CriticalMoment `json:"critical_moments"`
	WhiteAccuracy   AccuracySummary  `json:"white_accuracy"`
	BlackAccuracy   AccuracySummary  `json:"black_accuracy"`
}
