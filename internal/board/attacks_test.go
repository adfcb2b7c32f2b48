package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davide/gamereview/internal/board"
)

func parsePos(t *testing.T, fen string) board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	require.NoError(t, err)
	return pos
}

func squareNames(squares []board.Square) []string {
	names := make([]string, 0, len(squares))
	for _, sq := range squares {
		names = append(names, sq.String())
	}
	return names
}

func TestAttackersOf(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		target    string
		by        board.Color
		attackers []string
	}{
		{
			name:      "rook off the line sees nothing",
			fen:       "4k3/8/8/8/8/8/4p3/R3K3 w - - 0 1",
			target:    "e2",
			by:        board.White,
			attackers: nil,
		},
		{
			name:      "rook attacks along rank",
			fen:       "4k3/8/8/8/8/8/8/R2pK3 w - - 0 1",
			target:    "d1",
			by:        board.White,
			attackers: []string{"a1", "e1"},
		},
		{
			name:      "knight jumps over blockers",
			fen:       "4k3/8/8/8/8/5N2/4PPPP/4K3 w - - 0 1",
			target:    "g5",
			by:        board.White,
			attackers: []string{"f3"},
		},
		{
			name:      "pawn attacks diagonally only",
			fen:       "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1",
			target:    "d5",
			by:        board.White,
			attackers: []string{"e4"},
		},
		{
			name:      "queen blocked by own pawn",
			fen:       "4k3/8/8/8/8/3P4/8/3QK3 w - - 0 1",
			target:    "d5",
			by:        board.White,
			attackers: nil,
		},
		{
			name:      "bishop through open diagonal",
			fen:       "4k3/8/8/8/8/8/1B6/4K3 w - - 0 1",
			target:    "f6",
			by:        board.White,
			attackers: []string{"b2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := parsePos(t, tt.fen)
			target, err := board.SquareFromString(tt.target)
			require.NoError(t, err)

			got := pos.AttackersOf(target, tt.by)
			assert.ElementsMatch(t, tt.attackers, squareNames(got))
		})
	}
}

func TestInCheck(t *testing.T) {
	// Back-rank check by rook.
	pos := parsePos(t, "4k3/8/8/8/8/8/8/4K2r w - - 0 1")
	assert.True(t, pos.InCheck(board.White))
	assert.False(t, pos.InCheck(board.Black))

	pos = parsePos(t, startFEN)
	assert.False(t, pos.InCheck(board.White))
	assert.False(t, pos.InCheck(board.Black))
}

func TestDestinations_Knight(t *testing.T) {
	pos := parsePos(t, "4k3/8/8/8/8/8/8/N3K3 w - - 0 1")
	from := mustSquare(t, "a1")

	got := pos.Destinations(from)
	assert.ElementsMatch(t, []string{"b3", "c2"}, squareNames(got))
}

func TestDestinations_PawnPushesAndCaptures(t *testing.T) {
	// White pawn on e2 with a black piece on d3: two pushes and one capture.
	pos := parsePos(t, "4k3/8/8/8/8/3r4/4P3/4K3 w - - 0 1")
	from := mustSquare(t, "e2")

	got := pos.Destinations(from)
	assert.ElementsMatch(t, []string{"e3", "e4", "d3"}, squareNames(got))
}

func TestDestinations_SlidingBlocked(t *testing.T) {
	// Rook on a1 blocked by own pawn on a3 and enemy pawn on c1.
	pos := parsePos(t, "4k3/8/8/8/8/P7/8/R1p1K3 w - - 0 1")
	from := mustSquare(t, "a1")

	got := pos.Destinations(from)
	assert.ElementsMatch(t, []string{"a2", "b1", "c1"}, squareNames(got))
}

func TestDestinations_ExcludesKingCapture(t *testing.T) {
	// Rook sees the enemy king but a king square is never a destination.
	pos := parsePos(t, "4k3/8/8/8/8/8/4R3/2K5 w - - 0 1")
	from := mustSquare(t, "e2")

	got := pos.Destinations(from)
	assert.NotContains(t, squareNames(got), "e8")
	assert.Contains(t, squareNames(got), "e7")
}
