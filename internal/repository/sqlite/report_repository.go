package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/davide/gamereview/internal/analysis"
	"github.com/davide/gamereview/internal/board"
	"github.com/davide/gamereview/internal/errors"
	"github.com/davide/gamereview/internal/logger"
	"github.com/davide/gamereview/internal/repository"
)

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository implementation
func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

// SaveReport stores a full game report atomically, replacing any previous
// report for the game.
func (r *reportRepository) SaveReport(ctx context.Context, gameID int64, report *analysis.GameReport) error {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("saving report: game_id=%d, moves=%d", gameID, len(report.Moves))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		for _, table := range []string{"move_reports", "critical_moments", "accuracy_summaries"} {
			if _, err := t.ExecContext(ctx, `DELETE FROM `+table+` WHERE game_id = ?`, gameID); err != nil {
				return err
			}
		}

		for _, m := range report.Moves {
			bestEval, err := json.Marshal(m.BestEval)
			if err != nil {
				return err
			}
			actualEval, err := json.Marshal(m.ActualEval)
			if err != nil {
				return err
			}
			danger, err := json.Marshal(m.Danger)
			if err != nil {
				return err
			}
			_, err = t.ExecContext(ctx, `
INSERT INTO move_reports (game_id, ply, color, move_uci, fen_before, fen_after, best_move,
                          best_eval, actual_eval, win_before, win_after, delta, classification, danger, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, gameID, m.Ply, m.Color.String(), m.MoveUCI, m.FENBefore, m.FENAfter, m.BestMove,
				string(bestEval), string(actualEval), m.WinBefore, m.WinAfter, m.Delta,
				m.Classification.String(), string(danger), m.Err)
			if err != nil {
				return err
			}
		}

		for _, c := range report.CriticalMoments {
			_, err := t.ExecContext(ctx, `
INSERT INTO critical_moments (game_id, ply, win_before, win_after, swing)
VALUES (?, ?, ?, ?, ?)
`, gameID, c.Ply, c.WinBefore, c.WinAfter, c.Swing)
			if err != nil {
				return err
			}
		}

		summaries := map[string]analysis.AccuracySummary{
			board.White.String(): report.WhiteAccuracy,
			board.Black.String(): report.BlackAccuracy,
		}
		for color, s := range summaries {
			_, err := t.ExecContext(ctx, `
INSERT INTO accuracy_summaries (game_id, color, harmonic, weighted, final, moves)
VALUES (?, ?, ?, ?, ?, ?)
`, gameID, color, s.Harmonic, s.Weighted, s.Final, s.Moves)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetReport loads a stored report. A game with no stored moves has no report.
func (r *reportRepository) GetReport(ctx context.Context, gameID int64) (*analysis.GameReport, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("loading report: game_id=%d", gameID)

	report := &analysis.GameReport{}

	rows, err := r.db.QueryContext(ctx, `
SELECT ply, color, move_uci, fen_before, fen_after, best_move, best_eval, actual_eval,
       win_before, win_after, delta, classification, danger, error
FROM move_reports
WHERE game_id = ?
ORDER BY ply ASC
`, gameID)
	if err != nil {
		log.Error("failed to query move reports: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m analysis.MoveRecord
		var color, bestEval, actualEval, classification, danger string
		if err := rows.Scan(&m.Ply, &color, &m.MoveUCI, &m.FENBefore, &m.FENAfter, &m.BestMove,
			&bestEval, &actualEval, &m.WinBefore, &m.WinAfter, &m.Delta, &classification, &danger, &m.Err); err != nil {
			log.Error("failed to scan move report row: %v", err)
			return nil, err
		}
		m.Color, err = parseColor(color)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(bestEval), &m.BestEval); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(actualEval), &m.ActualEval); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(danger), &m.Danger); err != nil {
			return nil, err
		}
		if classification != "" {
			if m.Classification, err = analysis.ParseLabel(classification); err != nil {
				return nil, err
			}
		}
		report.Moves = append(report.Moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(report.Moves) == 0 {
		log.Debug("no report stored: game_id=%d", gameID)
		return nil, errors.NewNotFoundError("report", gameID)
	}

	moments, err := r.db.QueryContext(ctx, `
SELECT ply, win_before, win_after, swing
FROM critical_moments
WHERE game_id = ?
ORDER BY ply ASC
`, gameID)
	if err != nil {
		log.Error("failed to query critical moments: %v", err)
		return nil, err
	}
	defer moments.Close()
	for moments.Next() {
		var c analysis.CriticalMoment
		if err := moments.Scan(&c.Ply, &c.WinBefore, &c.WinAfter, &c.Swing); err != nil {
			return nil, err
		}
		report.CriticalMoments = append(report.CriticalMoments, c)
	}
	if err := moments.Err(); err != nil {
		return nil, err
	}

	summaries, err := r.db.QueryContext(ctx, `
SELECT color, harmonic, weighted, final, moves
FROM accuracy_summaries
WHERE game_id = ?
`, gameID)
	if err != nil {
		log.Error("failed to query accuracy summaries: %v", err)
		return nil, err
	}
	defer summaries.Close()
	for summaries.Next() {
		var color string
		var s analysis.AccuracySummary
		if err := summaries.Scan(&color, &s.Harmonic, &s.Weighted, &s.Final, &s.Moves); err != nil {
			return nil, err
		}
		side, err := parseColor(color)
		if err != nil {
			return nil, err
		}
		if side == board.White {
			report.WhiteAccuracy = s
		} else {
			report.BlackAccuracy = s
		}
	}
	if err := summaries.Err(); err != nil {
		return nil, err
	}

	log.Debug("report loaded: moves=%d, critical=%d", len(report.Moves), len(report.CriticalMoments))
	return report, nil
}

func (r *reportRepository) DeleteReport(ctx context.Context, gameID int64) error {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("deleting report: game_id=%d", gameID)

	return tx(ctx, r.db, func(t *sql.Tx) error {
		for _, table := range []string{"move_reports", "critical_moments", "accuracy_summaries"} {
			if _, err := t.ExecContext(ctx, `DELETE FROM `+table+` WHERE game_id = ?`, gameID); err != nil {
				return err
			}
		}
		return nil
	})
}

func parseColor(s string) (board.Color, error) {
	switch s {
	case "white":
		return board.White, nil
	case "black":
		return board.Black, nil
	}
	return board.White, fmt.Errorf("unknown color %q", s)
}
