package analysis

import (
	"fmt"
	"strings"

	"github.com/davide/gamereview/internal/board"
)

// Classifier assigns exactly one quality label to each played move by
// comparing it against the engine's best available line. Classification is
// stateless per ply: it depends only on the MoveRecord and its originating
// Ply, never on neighboring plies.
type Classifier struct {
	cfg Config
}

// NewClassifier builds a Classifier with the given calibration.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify returns the label for the move and the moving side's
// win-probability loss. Overrides run before the boundary table, in order:
// forced moves, book moves, delivered mate, the engine's own top move,
// brilliant sacrifices and uniquely good ("great") moves.
func (c *Classifier) Classify(ply Ply, rec MoveRecord) (Label, float64) {
	side := ply.Side()
	delta := winLoss(rec.WinBefore, rec.WinAfter, side)

	// A forced move carries no information about the player.
	if ply.LegalMoves <= 1 {
		return LabelForced, delta
	}
	if ply.IsBook {
		return LabelTheory, delta
	}
	if ply.DeliversMate {
		return LabelBest, delta
	}

	topMovePlayed := rec.BestMove != "" && rec.MoveUCI == rec.BestMove
	if topMovePlayed {
		// The top move loses nothing by construction; the engine's own
		// rounding between runs must not push it below Best.
		delta = 0
	}

	bestCP := rec.BestEval.Scalar()
	actualCP := rec.ActualEval.Scalar()
	lossCP := sideLoss(bestCP, actualCP, side)
	subjective := sideAdvantage(actualCP, side)

	label := LabelBest
	if !topMovePlayed {
		label = c.pointLossLabel(delta * 100)
	}

	posBefore, from, to, ok := c.moveContext(rec)
	if ok && c.isBrilliant(posBefore, from, to, lossCP, subjective) {
		return LabelBrilliant, delta
	}
	if len(rec.Candidates) > 1 {
		second := rec.Candidates[1].Eval.Scalar()
		if ok && c.isGreat(posBefore, from, to, topMovePlayed, lossCP, subjective, bestCP, second, side) {
			return LabelGreat, delta
		}
		if topMovePlayed && c.isCriticalChoice(posBefore, bestCP, actualCP, second, side) {
			return LabelGreat, delta
		}
	}
	return label, delta
}

// pointLossLabel maps a win-percentage loss through the ordered boundary
// table. Boundaries are inclusive on the better side: a loss exactly at a
// boundary earns the better label.
func (c *Classifier) pointLossLabel(lossPct float64) Label {
	switch {
	case lossPct <= c.cfg.BestLoss:
		return LabelBest
	case lossPct <= c.cfg.ExcellentLoss:
		return LabelExcellent
	case lossPct <= c.cfg.GoodLoss:
		return LabelGood
	case lossPct <= c.cfg.InaccuracyLoss:
		return LabelInaccuracy
	case lossPct <= c.cfg.MistakeLoss:
		return LabelMistake
	default:
		return LabelBlunder
	}
}

// moveContext parses the position before the move and the move's squares.
// A record that cannot be parsed simply gets no special labels.
func (c *Classifier) moveContext(rec MoveRecord) (board.Position, board.Square, board.Square, bool) {
	pos, err := board.ParseFEN(rec.FENBefore)
	if err != nil {
		return board.Position{}, board.NoSquare, board.NoSquare, false
	}
	from, to, err := SquaresFromUCI(rec.MoveUCI)
	if err != nil {
		return board.Position{}, board.NoSquare, board.NoSquare, false
	}
	return pos, from, to, true
}

// IsSacrifice reports whether moving from from to to gives up significant
// material: the moved piece lands on a square where a cheaper enemy piece can
// take it, and the net material given up is at least a pawn. Pre- and
// post-move material balance both enter the judgment via the captured piece.
func (c *Classifier) IsSacrifice(pos board.Position, from, to board.Square) bool {
	moved := pos.Piece(from)
	if moved.IsEmpty() || moved.Type == board.King {
		return false
	}
	captured := pos.Piece(to)

	after := pos.MovePiece(from, to)
	attackers := directAttackers(after, to, moved.Color.Other())
	if len(attackers) == 0 {
		return false
	}

	minAttacker := cheapestPiece(after, attackers)
	if minAttacker == 0 || minAttacker >= moved.Type.Value() {
		return false
	}
	netSacrifice := moved.Type.Value() - captured.Type.Value() - minAttacker
	return netSacrifice >= c.cfg.SacrificeMinValue
}

// isBrilliant: a genuine sacrifice that keeps a non-losing position without
// giving away too much against the best line.
func (c *Classifier) isBrilliant(pos board.Position, from, to board.Square, lossCP, subjective float64) bool {
	if !c.IsSacrifice(pos, from, to) {
		return false
	}
	return lossCP <= c.cfg.BrilliantMaxLoss && subjective >= 0
}

// isGreat: the move either towers over every alternative, is a near-optimal
// tactical blow, or is the only move that avoids a clearly worse position.
func (c *Classifier) isGreat(pos board.Position, from, to board.Square, topMovePlayed bool, lossCP, subjective, bestCP, secondCP float64, side board.Color) bool {
	if topMovePlayed {
		gap := sideLoss(bestCP, secondCP, side)
		if gap >= c.cfg.GreatMoveGap && subjective >= c.cfg.GreatMoveAdvantage {
			return true
		}
	} else if lossCP <= c.cfg.GreatMoveLossThreshold {
		tactical := !pos.Piece(to).IsEmpty() ||
			pos.MovePiece(from, to).InCheck(side.Other()) ||
			c.IsSacrifice(pos, from, to)
		if tactical && subjective >= c.cfg.GreatMoveTacticalAdvantage {
			return true
		}
	}

	secondAdvantage := sideAdvantage(secondCP, side)
	return subjective >= 0 && subjective < 100 && secondAdvantage < c.cfg.AlternativeBadThreshold
}

// isCriticalChoice: the played top move was hard to find because the second
// best line is far worse — unless the position was already completely won,
// already lost, or the move was a check evasion anyway.
func (c *Classifier) isCriticalChoice(pos board.Position, bestCP, actualCP, secondCP float64, side board.Color) bool {
	bestAdv := sideAdvantage(bestCP, side)
	actualAdv := sideAdvantage(actualCP, side)
	if bestAdv >= c.cfg.CriticalEvalCeiling || actualAdv >= c.cfg.CriticalEvalCeiling {
		return false
	}
	if actualAdv < 0 {
		return false
	}
	if pos.InCheck(pos.Turn()) {
		return false
	}
	return sideLoss(bestCP, secondCP, side) > c.cfg.CriticalGap
}

// winLoss is the moving side's win-probability drop, clamped at zero.
func winLoss(winBefore, winAfter float64, side board.Color) float64 {
	loss := winBefore - winAfter
	if side == board.Black {
		loss = winAfter - winBefore
	}
	if loss < 0 {
		return 0
	}
	return loss
}

// sideLoss converts two White-perspective scalars into the moving side's
// centipawn loss.
func sideLoss(best, actual float64, side board.Color) float64 {
	if side == board.Black {
		return actual - best
	}
	return best - actual
}

// sideAdvantage converts a White-perspective scalar into the moving side's
// advantage.
func sideAdvantage(cp float64, side board.Color) float64 {
	if side == board.Black {
		return -cp
	}
	return cp
}

// SquaresFromUCI extracts the origin and destination squares from a UCI move
// string such as "e2e4" or "e7e8q".
func SquaresFromUCI(uci string) (board.Square, board.Square, error) {
	uci = strings.TrimSpace(uci)
	if len(uci) < 4 {
		return board.NoSquare, board.NoSquare, fmt.Errorf("invalid uci move %q", uci)
	}
	from, err := board.SquareFromString(uci[0:2])
	if err != nil {
		return board.NoSquare, board.NoSquare, err
	}
	to, err := board.SquareFromString(uci[2:4])
	if err != nil {
		return board.NoSquare, board.NoSquare, err
	}
	return from, to, nil
}
