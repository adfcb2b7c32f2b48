package analysis

import "github.com/davide/gamereview/internal/board"

// isTrapped reports whether the piece on the square has nowhere safe to go.
// This is a one-ply lookahead over the piece's own destinations, not a
// search: a piece already safe is never trapped, and any destination that is
// safe, or any capture that wins back at least the piece's own value, counts
// as an escape.
func isTrapped(pos board.Position, sq board.Square) bool {
	piece := pos.Piece(sq)
	if piece.IsEmpty() || piece.Type == board.King {
		return false
	}
	if isPieceSafe(pos, sq) {
		return false
	}

	for _, dest := range pos.Destinations(sq) {
		captured := pos.Piece(dest)
		if !captured.IsEmpty() && captured.Type.Value() >= piece.Type.Value() {
			return false // an even or winning trade is an escape
		}
		after := pos.MovePiece(sq, dest)
		if isPieceSafe(after, dest) {
			return false
		}
	}
	return true
}
