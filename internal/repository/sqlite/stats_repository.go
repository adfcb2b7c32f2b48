package sqlite

import (
	"context"
	"database/sql"

	"github.com/davide/gamereview/internal/logger"
	"github.com/davide/gamereview/internal/models"
	"github.com/davide/gamereview/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Summary(ctx context.Context) (*models.Stats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing summary stats")

	var stats models.Stats
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*),
       COALESCE(SUM(CASE WHEN analysis_status = 'completed' THEN 1 ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN analysis_status = 'failed' THEN 1 ELSE 0 END), 0)
FROM games
`).Scan(&stats.TotalGames, &stats.AnalyzedGames, &stats.FailedGames)
	if err != nil {
		log.Error("failed to count games: %v", err)
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM move_reports WHERE error = ''`).Scan(&stats.TotalMoves)
	if err != nil {
		log.Error("failed to count moves: %v", err)
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `SELECT COALESCE(AVG(final), 0) FROM accuracy_summaries WHERE moves > 0`).Scan(&stats.AvgAccuracy)
	if err != nil {
		log.Error("failed to average accuracy: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT classification, COUNT(*)
FROM move_reports
WHERE classification != ''
GROUP BY classification
ORDER BY COUNT(*) DESC
`)
	if err != nil {
		log.Error("failed to group classifications: %v", err)
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var lc models.LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, err
		}
		stats.Classifications = append(stats.Classifications, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("summary stats: games=%d, analyzed=%d", stats.TotalGames, stats.AnalyzedGames)
	return &stats, nil
}
