package analysis

import "github.com/davide/gamereview/internal/board"

// Attacker/defender enumeration over the static attack graph of a position.
// Attackers optionally include battery pieces: sliders that would attack the
// target once the piece in front of them moves or captures. Defenders are
// found by simulating each possible capture and counting recapturers, keeping
// the smallest recapture set so a single overworked defender is not counted
// against every attacker at once.

// directAttackers returns the squares of pieces of the given color whose
// capture set includes the target.
func directAttackers(pos board.Position, target board.Square, by board.Color) []board.Square {
	return pos.AttackersOf(target, by)
}

// transitiveAttackers additionally uncovers battery attackers by removing
// each non-king attacker and collecting the pieces revealed behind it,
// repeating until no new attacker appears.
func transitiveAttackers(pos board.Position, target board.Square, by board.Color) []board.Square {
	attackers := pos.AttackersOf(target, by)
	seen := make(map[board.Square]bool, len(attackers))
	for _, sq := range attackers {
		seen[sq] = true
	}

	frontier := append([]board.Square(nil), attackers...)
	for len(frontier) > 0 {
		current := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		// A king cannot head a battery.
		if pos.Piece(current).Type == board.King {
			continue
		}

		revealed := pos.WithoutPiece(current).AttackersOf(target, by)
		for _, sq := range revealed {
			if !seen[sq] {
				seen[sq] = true
				attackers = append(attackers, sq)
				frontier = append(frontier, sq)
			}
		}
	}
	return attackers
}

// defendersOf returns the pieces of the target's own color that could
// recapture on the target square.
func defendersOf(pos board.Position, target board.Square) []board.Square {
	piece := pos.Piece(target)
	if piece.IsEmpty() {
		return nil
	}
	defending := piece.Color
	attackers := directAttackers(pos, target, defending.Other())

	if len(attackers) == 0 {
		// Nothing attacks the piece. Flip its color and ask who would
		// recapture if it were attacked; that is the passive defender set.
		flipped := pos.WithPiece(target, board.Piece{Type: piece.Type, Color: defending.Other()})
		return flipped.AttackersOf(target, defending)
	}

	// Simulate each capture and keep the smallest recapture set.
	var smallest []board.Square
	found := false
	for _, attackerSq := range attackers {
		attacker := pos.Piece(attackerSq)
		if attacker.IsEmpty() {
			continue
		}
		after := pos.WithPiece(target, attacker).WithoutPiece(attackerSq)
		recapturers := transitiveAttackers(after, target, defending)
		if !found || len(recapturers) < len(smallest) {
			smallest = recapturers
			found = true
		}
	}
	return smallest
}

// cheapestPiece returns the lowest material value among the pieces on the
// given squares, or 0 when the list is empty.
func cheapestPiece(pos board.Position, squares []board.Square) int {
	cheapest := 0
	for _, sq := range squares {
		v := pos.Piece(sq).Type.Value()
		if v == 0 {
			continue
		}
		if cheapest == 0 || v < cheapest {
			cheapest = v
		}
	}
	return cheapest
}
