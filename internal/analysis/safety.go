package analysis

import (
	"fmt"

	"github.com/davide/gamereview/internal/board"
	"github.com/davide/gamereview/internal/errors"
)

// isPieceSafe decides whether the piece on the square can stand where it is.
// The rules, in order:
//   - a direct attacker cheaper than the piece makes it unsafe outright
//   - no more attackers (batteries included) than defenders is safe
//   - a piece cheaper than every direct attacker, with a defender also
//     cheaper than every direct attacker, is safe (any capture is a bad trade)
//   - a piece defended by a pawn is safe
func isPieceSafe(pos board.Position, sq board.Square) bool {
	piece := pos.Piece(sq)
	if piece.IsEmpty() {
		return true
	}
	opponent := piece.Color.Other()

	direct := directAttackers(pos, sq, opponent)
	for _, attackerSq := range direct {
		if pos.Piece(attackerSq).Type.Value() < piece.Type.Value() {
			return false
		}
	}

	allAttackers := transitiveAttackers(pos, sq, opponent)
	defenders := defendersOf(pos, sq)
	if len(allAttackers) <= len(defenders) {
		return true
	}

	if len(direct) > 0 {
		lowestAttacker := cheapestPiece(pos, direct)
		if piece.Type.Value() < lowestAttacker {
			for _, defSq := range defenders {
				if pos.Piece(defSq).Type.Value() < lowestAttacker {
					return true
				}
			}
		}
	}

	for _, defSq := range defenders {
		if pos.Piece(defSq).Type == board.Pawn {
			return true
		}
	}
	return false
}

// unsafePieces lists squares of the given color holding unsafe pieces, pawns
// and kings excluded.
func unsafePieces(pos board.Position, color board.Color) []board.Square {
	var unsafe []board.Square
	for sq := board.Square(0); sq < 64; sq++ {
		piece := pos.Piece(sq)
		if piece.IsEmpty() || piece.Color != color {
			continue
		}
		if piece.Type == board.Pawn || piece.Type == board.King {
			continue
		}
		if !isPieceSafe(pos, sq) {
			unsafe = append(unsafe, sq)
		}
	}
	return unsafe
}

// dangerScore puts a number on a hanging piece: the material it could lose,
// scaled up by how outnumbered it is.
func dangerScore(piece board.Piece, attackers, defenders int) float64 {
	imbalance := attackers - defenders
	if imbalance < 0 {
		imbalance = 0
	}
	return float64(piece.Type.Value()) * (1 + 0.1*float64(imbalance))
}

// AnalyzePosition computes the DangerReport for every occupied square of the
// position: attacker and defender counts, the derived danger score, and the
// hanging and trapped flags. The report covers all squares in index order and
// never skips one silently; an inconsistent position (a side without its
// king) fails with an invalid-position error.
func AnalyzePosition(pos board.Position) (DangerReport, error) {
	for _, c := range []board.Color{board.White, board.Black} {
		if _, ok := pos.KingSquare(c); !ok {
			return DangerReport{}, errors.NewInvalidPositionError(fmt.Sprintf("%s has no king", c))
		}
	}

	var report DangerReport
	for sq := board.Square(0); sq < 64; sq++ {
		piece := pos.Piece(sq)
		if piece.IsEmpty() {
			continue
		}
		opponent := piece.Color.Other()

		attackers := transitiveAttackers(pos, sq, opponent)
		defenders := defendersOf(pos, sq)

		entry := SquareDanger{
			Square:    sq,
			Piece:     piece.Type,
			Color:     piece.Color,
			Attackers: len(attackers),
			Defenders: len(defenders),
		}
		if len(attackers) > 0 && piece.Type != board.King && !isPieceSafe(pos, sq) {
			entry.Hanging = true
			entry.Score = dangerScore(piece, len(attackers), len(defenders))
			entry.Trapped = isTrapped(pos, sq)
		}
		report.Squares = append(report.Squares, entry)
	}
	return report, nil
}
