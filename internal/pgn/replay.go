package pgn

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"

	"github.com/davide/gamereview/internal/analysis"
	"github.com/davide/gamereview/internal/errors"
)

// ReplayedGame is a PGN expanded into per-ply positions, ready for analysis.
type ReplayedGame struct {
	Plies       []analysis.Ply
	ECOCode     string
	OpeningName string
}

// Replay parses a PGN and walks through the game move by move, recording the
// position before and after each ply. An illegal or unparsable move sequence
// fails the whole replay; a game without moves is rejected.
func Replay(pgnText string) (*ReplayedGame, error) {
	pgnOpt, err := chess.PGN(strings.NewReader(pgnText))
	if err != nil {
		return nil, errors.NewInconsistentMovesError(-1, err)
	}
	game := chess.NewGame(pgnOpt)

	positions := game.Positions()
	moves := game.Moves()
	if len(moves) == 0 {
		return nil, errors.NewEmptyGameError()
	}
	if len(positions) != len(moves)+1 {
		return nil, errors.NewInconsistentMovesError(len(positions)-1,
			fmt.Errorf("got %d positions for %d moves", len(positions), len(moves)))
	}

	out := &ReplayedGame{Plies: make([]analysis.Ply, 0, len(moves))}

	bookDepth := 0
	book := opening.NewBookECO()
	if found := book.Find(moves); found != nil {
		out.ECOCode = found.Code()
		out.OpeningName = found.Title()
		bookDepth = len(found.Game().Moves())
	}

	for i := range moves {
		posAfter := positions[i+1]
		out.Plies = append(out.Plies, analysis.Ply{
			Index:        i,
			FENBefore:    positions[i].String(),
			FENAfter:     posAfter.String(),
			MoveUCI:      moveToUCI(moves[i]),
			LegalMoves:   len(positions[i].ValidMoves()),
			DeliversMate: posAfter.Status() == chess.Checkmate,
			IsBook:       i < bookDepth,
		})
	}

	return out, nil
}

// moveToUCI converts a chess Move to UCI format (e.g., "e2e4", "e7e8q")
func moveToUCI(move *chess.Move) string {
	if move == nil {
		return ""
	}

	from := squareToString(move.S1())
	to := squareToString(move.S2())
	uci := from + to

	switch move.Promo() {
	case chess.Queen:
		uci += "q"
	case chess.Rook:
		uci += "r"
	case chess.Bishop:
		uci += "b"
	case chess.Knight:
		uci += "n"
	}

	return uci
}

// squareToString converts a Square to algebraic notation (e.g., "e2", "a8")
func squareToString(sq chess.Square) string {
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}
