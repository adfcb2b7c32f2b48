package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davide/gamereview/internal/board"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func mustSquare(t *testing.T, s string) board.Square {
	t.Helper()
	sq, err := board.SquareFromString(s)
	require.NoError(t, err)
	return sq
}

func TestParseFEN_StartingPosition(t *testing.T) {
	pos, err := board.ParseFEN(startFEN)
	require.NoError(t, err)

	assert.Equal(t, board.White, pos.Turn())
	assert.Equal(t, board.Piece{Type: board.Rook, Color: board.White}, pos.Piece(mustSquare(t, "a1")))
	assert.Equal(t, board.Piece{Type: board.King, Color: board.Black}, pos.Piece(mustSquare(t, "e8")))
	assert.Equal(t, board.Piece{Type: board.Pawn, Color: board.White}, pos.Piece(mustSquare(t, "e2")))
	assert.True(t, pos.Piece(mustSquare(t, "e4")).IsEmpty())

	kingSq, ok := pos.KingSquare(board.White)
	require.True(t, ok)
	assert.Equal(t, "e1", kingSq.String())
}

func TestParseFEN_BlackToMoveWithEnPassant(t *testing.T) {
	pos, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	require.NoError(t, err)

	assert.Equal(t, board.Black, pos.Turn())
	assert.Equal(t, "e3", pos.EnPassant().String())
}

func TestParseFEN_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"too few ranks", "8/8/8 w - - 0 1"},
		{"garbage characters", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1"},
		{"rank overflow", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"no white king", "rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w - - 0 1"},
		{"two white kings", "rnbqkbnr/pppppppp/8/8/8/4K3/PPPPPPPP/RNBQKBNR w - - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := board.ParseFEN(tt.fen)
			assert.Error(t, err)
		})
	}
}

func TestSquareRoundTrip(t *testing.T) {
	for _, name := range []string{"a1", "h1", "a8", "h8", "e4", "c6"} {
		sq, err := board.SquareFromString(name)
		require.NoError(t, err)
		assert.Equal(t, name, sq.String())
	}

	_, err := board.SquareFromString("i9")
	assert.Error(t, err)
	_, err = board.SquareFromString("e")
	assert.Error(t, err)
}

func TestMovePiece_CopySemantics(t *testing.T) {
	pos, err := board.ParseFEN(startFEN)
	require.NoError(t, err)

	from, to := mustSquare(t, "e2"), mustSquare(t, "e4")
	after := pos.MovePiece(from, to)

	assert.Equal(t, board.Pawn, after.Piece(to).Type)
	assert.True(t, after.Piece(from).IsEmpty())
	// Original is untouched
	assert.Equal(t, board.Pawn, pos.Piece(from).Type)
	assert.True(t, pos.Piece(to).IsEmpty())
}

func TestMirror(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)

	mirrored := pos.Mirror()

	// White pawn on e2 becomes a black pawn on e7.
	assert.Equal(t, board.Piece{Type: board.Pawn, Color: board.Black}, mirrored.Piece(mustSquare(t, "e7")))
	assert.Equal(t, board.Piece{Type: board.King, Color: board.Black}, mirrored.Piece(mustSquare(t, "e1")))
	assert.Equal(t, board.Piece{Type: board.King, Color: board.White}, mirrored.Piece(mustSquare(t, "e8")))
	assert.Equal(t, board.Black, mirrored.Turn())
}

func TestPieceValues(t *testing.T) {
	assert.Equal(t, 100, board.Pawn.Value())
	assert.Equal(t, 320, board.Knight.Value())
	assert.Equal(t, 330, board.Bishop.Value())
	assert.Equal(t, 500, board.Rook.Value())
	assert.Equal(t, 900, board.Queen.Value())
	assert.Greater(t, board.King.Value(), board.Queen.Value())
}
