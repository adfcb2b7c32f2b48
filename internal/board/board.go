package board

import (
	"fmt"
	"strings"
)

// Color identifies a side.
type Color int8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType enumerates the chess piece kinds. NoPiece is the zero value so an
// empty square is the zero Piece.
type PieceType int8

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Material values in centipawns.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

var pieceValues = [7]int{0, PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue}

// Value returns the material value of the piece type in centipawns.
func (t PieceType) Value() int {
	if t < 0 || int(t) >= len(pieceValues) {
		return 0
	}
	return pieceValues[t]
}

// Piece is a piece type plus its color. The zero Piece is an empty square.
type Piece struct {
	Type  PieceType
	Color Color
}

// IsEmpty reports whether the piece represents an empty square.
func (p Piece) IsEmpty() bool { return p.Type == NoPiece }

// Square indexes the board 0-63, a1=0, b1=1, ..., h8=63.
type Square int8

// NoSquare marks the absence of a square (e.g. no en-passant target).
const NoSquare Square = -1

// File returns the square's file, 0-7 for a-h.
func (s Square) File() int { return int(s) % 8 }

// Rank returns the square's rank, 0-7 for 1-8.
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+s.File(), '1'+s.Rank())
}

// SquareAt builds a square from file and rank indices, both 0-7.
func SquareAt(file, rank int) Square {
	return Square(rank*8 + file)
}

// SquareFromString parses algebraic notation like "e4".
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return SquareAt(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Position is an immutable snapshot of a board: occupancy, side to move,
// castling rights and en-passant target. It is a value type; mutating helpers
// return copies.
type Position struct {
	squares   [64]Piece
	turn      Color
	castling  string
	enPassant Square
}

// ParseFEN builds a Position from the board, side-to-move, castling and
// en-passant fields of a FEN string. It rejects malformed boards and boards
// where either side does not have exactly one king.
func ParseFEN(fen string) (Position, error) {
	var pos Position
	pos.enPassant = NoSquare

	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 2 {
		return pos, fmt.Errorf("fen %q: want at least board and side-to-move fields", fen)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return pos, fmt.Errorf("fen %q: want 8 ranks, got %d", fen, len(ranks))
	}
	var whiteKings, blackKings int
	for r, rankStr := range ranks {
		rank := 7 - r // FEN lists rank 8 first
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file > 7 {
				return pos, fmt.Errorf("fen %q: rank %d overflows", fen, rank+1)
			}
			piece, err := pieceFromFEN(ch)
			if err != nil {
				return pos, fmt.Errorf("fen %q: %w", fen, err)
			}
			if piece.Type == King {
				if piece.Color == White {
					whiteKings++
				} else {
					blackKings++
				}
			}
			pos.squares[SquareAt(file, rank)] = piece
			file++
		}
		if file != 8 {
			return pos, fmt.Errorf("fen %q: rank %d has %d files", fen, rank+1, file)
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return pos, fmt.Errorf("fen %q: want one king per side, got %d white and %d black", fen, whiteKings, blackKings)
	}

	switch fields[1] {
	case "w":
		pos.turn = White
	case "b":
		pos.turn = Black
	default:
		return pos, fmt.Errorf("fen %q: invalid side to move %q", fen, fields[1])
	}

	if len(fields) > 2 {
		pos.castling = fields[2]
	}
	if len(fields) > 3 && fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return pos, fmt.Errorf("fen %q: invalid en-passant target: %w", fen, err)
		}
		pos.enPassant = sq
	}
	return pos, nil
}

func pieceFromFEN(ch rune) (Piece, error) {
	color := White
	lower := ch
	if ch >= 'a' && ch <= 'z' {
		color = Black
	} else {
		lower = ch + ('a' - 'A')
	}
	var t PieceType
	switch lower {
	case 'p':
		t = Pawn
	case 'n':
		t = Knight
	case 'b':
		t = Bishop
	case 'r':
		t = Rook
	case 'q':
		t = Queen
	case 'k':
		t = King
	default:
		return Piece{}, fmt.Errorf("invalid piece char %q", ch)
	}
	return Piece{Type: t, Color: color}, nil
}

// Piece returns the piece on the given square.
func (p Position) Piece(sq Square) Piece {
	if sq < 0 || sq > 63 {
		return Piece{}
	}
	return p.squares[sq]
}

// Turn returns the side to move.
func (p Position) Turn() Color { return p.turn }

// EnPassant returns the en-passant target square, or NoSquare.
func (p Position) EnPassant() Square { return p.enPassant }

// KingSquare returns the square of the given side's king.
func (p Position) KingSquare(c Color) (Square, bool) {
	for sq := Square(0); sq < 64; sq++ {
		piece := p.squares[sq]
		if piece.Type == King && piece.Color == c {
			return sq, true
		}
	}
	return NoSquare, false
}

// WithoutPiece returns a copy of the position with the square emptied.
func (p Position) WithoutPiece(sq Square) Position {
	p.squares[sq] = Piece{}
	return p
}

// WithPiece returns a copy of the position with the piece placed on the square.
func (p Position) WithPiece(sq Square, piece Piece) Position {
	p.squares[sq] = piece
	return p
}

// MovePiece returns a copy with the piece on from relocated to to, capturing
// whatever stood there. Castling and promotion are not modelled; this exists
// for local what-if probes, not for replaying games.
func (p Position) MovePiece(from, to Square) Position {
	p.squares[to] = p.squares[from]
	p.squares[from] = Piece{}
	return p
}

// Mirror returns the position flipped vertically with colors swapped. A
// position and its mirror must produce identical relation analysis for
// mirrored squares.
func (p Position) Mirror() Position {
	var m Position
	m.enPassant = NoSquare
	m.turn = p.turn.Other()
	for sq := Square(0); sq < 64; sq++ {
		piece := p.squares[sq]
		if piece.IsEmpty() {
			continue
		}
		flipped := SquareAt(sq.File(), 7-sq.Rank())
		m.squares[flipped] = Piece{Type: piece.Type, Color: piece.Color.Other()}
	}
	if p.enPassant != NoSquare {
		m.enPassant = SquareAt(p.enPassant.File(), 7-p.enPassant.Rank())
	}
	return m
}
