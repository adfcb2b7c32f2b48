package board

// Attack generation is a uniform step/ray walk parameterized by each piece
// type's movement capability, instead of ad hoc per-piece branching. Steppers
// (knight, king) probe each offset once; sliders (bishop, rook, queen) walk
// the ray until blocked. Pawns are the one asymmetry: their capture set
// differs from their push set and depends on color.

type delta struct{ file, rank int }

var (
	orthogonal = []delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = []delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	royal      = append(append([]delta{}, orthogonal...), diagonal...)
	knightwise = []delta{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

type capability struct {
	deltas  []delta
	sliding bool
}

var capabilities = map[PieceType]capability{
	Knight: {knightwise, false},
	Bishop: {diagonal, true},
	Rook:   {orthogonal, true},
	Queen:  {royal, true},
	King:   {royal, false},
}

func step(sq Square, d delta) (Square, bool) {
	f, r := sq.File()+d.file, sq.Rank()+d.rank
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return SquareAt(f, r), true
}

// pawnCaptureDeltas returns the capture offsets for a pawn of the given color.
func pawnCaptureDeltas(c Color) []delta {
	if c == White {
		return []delta{{1, 1}, {-1, 1}}
	}
	return []delta{{1, -1}, {-1, -1}}
}

// Attacks reports whether the piece on from attacks the target square,
// tracing through occupancy for sliders.
func (p Position) Attacks(from, target Square) bool {
	piece := p.squares[from]
	if piece.IsEmpty() || from == target {
		return false
	}
	if piece.Type == Pawn {
		for _, d := range pawnCaptureDeltas(piece.Color) {
			if sq, ok := step(from, d); ok && sq == target {
				return true
			}
		}
		return false
	}
	mv := capabilities[piece.Type]
	for _, d := range mv.deltas {
		sq, ok := step(from, d)
		for ok {
			if sq == target {
				return true
			}
			if !mv.sliding || !p.squares[sq].IsEmpty() {
				break
			}
			sq, ok = step(sq, d)
		}
	}
	return false
}

// AttackersOf returns the squares of all pieces of the given color whose
// capture set includes the target square.
func (p Position) AttackersOf(target Square, by Color) []Square {
	var attackers []Square
	for sq := Square(0); sq < 64; sq++ {
		piece := p.squares[sq]
		if piece.IsEmpty() || piece.Color != by {
			continue
		}
		if p.Attacks(sq, target) {
			attackers = append(attackers, sq)
		}
	}
	return attackers
}

// IsAttacked reports whether any piece of the given color attacks the square.
func (p Position) IsAttacked(target Square, by Color) bool {
	for sq := Square(0); sq < 64; sq++ {
		piece := p.squares[sq]
		if piece.IsEmpty() || piece.Color != by {
			continue
		}
		if p.Attacks(sq, target) {
			return true
		}
	}
	return false
}

// InCheck reports whether the given side's king is attacked.
func (p Position) InCheck(c Color) bool {
	king, ok := p.KingSquare(c)
	if !ok {
		return false
	}
	return p.IsAttacked(king, c.Other())
}

// Destinations returns the pseudo-legal destination squares for the piece on
// the given square: quiet moves plus captures of opposing pieces. Pins and
// check evasions are ignored; callers use this for one-ply safety probes
// where an approximate move set is sufficient.
func (p Position) Destinations(from Square) []Square {
	piece := p.squares[from]
	if piece.IsEmpty() {
		return nil
	}
	if piece.Type == Pawn {
		return p.pawnDestinations(from, piece.Color)
	}

	var dests []Square
	mv := capabilities[piece.Type]
	for _, d := range mv.deltas {
		sq, ok := step(from, d)
		for ok {
			occupant := p.squares[sq]
			if occupant.IsEmpty() {
				dests = append(dests, sq)
			} else {
				if occupant.Color != piece.Color && occupant.Type != King {
					dests = append(dests, sq)
				}
				break
			}
			if !mv.sliding {
				break
			}
			sq, ok = step(sq, d)
		}
	}
	return dests
}

func (p Position) pawnDestinations(from Square, c Color) []Square {
	forward := 1
	startRank := 1
	if c == Black {
		forward = -1
		startRank = 6
	}

	var dests []Square
	if sq, ok := step(from, delta{0, forward}); ok && p.squares[sq].IsEmpty() {
		dests = append(dests, sq)
		if from.Rank() == startRank {
			if sq2, ok := step(sq, delta{0, forward}); ok && p.squares[sq2].IsEmpty() {
				dests = append(dests, sq2)
			}
		}
	}
	for _, d := range pawnCaptureDeltas(c) {
		sq, ok := step(from, d)
		if !ok {
			continue
		}
		occupant := p.squares[sq]
		if !occupant.IsEmpty() && occupant.Color != c && occupant.Type != King {
			dests = append(dests, sq)
		} else if sq == p.enPassant && occupant.IsEmpty() {
			dests = append(dests, sq)
		}
	}
	return dests
}
