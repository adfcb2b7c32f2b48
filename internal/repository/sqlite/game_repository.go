package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/davide/gamereview/internal/logger"
	"github.com/davide/gamereview/internal/models"
	"github.com/davide/gamereview/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const gameColumns = "id, pgn, white, black, result, event, eco_code, opening_name, analysis_status, played_at, created_at"

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository implementation
func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

func scanGame(row interface{ Scan(...any) error }) (models.Game, error) {
	var g models.Game
	err := row.Scan(&g.ID, &g.PGN, &g.White, &g.Black, &g.Result, &g.Event,
		&g.ECOCode, &g.OpeningName, &g.AnalysisStatus, &g.PlayedAt, &g.CreatedAt)
	return g, err
}

func (r *gameRepository) Get(ctx context.Context, id int64) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("getting game: id=%d", id)

	g, err := scanGame(r.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("game not found: id=%d", id)
		} else {
			log.Error("failed to get game: %v", err)
		}
		return nil, err
	}
	log.Debug("game found: white=%s, black=%s, result=%s", g.White, g.Black, g.Result)
	return &g, nil
}

func gameFilterWhere(query squirrel.SelectBuilder, filter models.GameFilter) squirrel.SelectBuilder {
	if filter.White != "" {
		query = query.Where(squirrel.Eq{"white": filter.White})
	}
	if filter.Black != "" {
		query = query.Where(squirrel.Eq{"black": filter.Black})
	}
	if filter.Result != "" {
		query = query.Where(squirrel.Eq{"result": filter.Result})
	}
	if filter.AnalysisStatus != "" {
		query = query.Where(squirrel.Eq{"analysis_status": filter.AnalysisStatus})
	}
	return query
}

func (r *gameRepository) List(ctx context.Context, filter models.GameFilter) ([]models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("listing games with filter: white=%s, black=%s, result=%s, status=%s",
		filter.White, filter.Black, filter.Result, filter.AnalysisStatus)

	query := sqlBuilder.Select(
		"id", "pgn", "white", "black", "result", "event", "eco_code",
		"opening_name", "analysis_status", "played_at", "created_at",
	).From("games")
	query = gameFilterWhere(query, filter)

	// Safe ORDER BY with validation
	orderBy := "played_at"
	switch filter.OrderBy {
	case "played_at", "created_at", "id":
		orderBy = filter.OrderBy
	}
	orderDir := "DESC"
	if filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, err
	}
	defer rows.Close()
	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			log.Error("failed to scan game row: %v", err)
			return nil, err
		}
		games = append(games, g)
	}
	log.Debug("found %d games", len(games))
	return games, rows.Err()
}

func (r *gameRepository) Count(ctx context.Context, filter models.GameFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")

	query := gameFilterWhere(sqlBuilder.Select("COUNT(*)").From("games"), filter)

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		log.Error("failed to count games: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *gameRepository) Insert(ctx context.Context, g models.Game) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("inserting game: white=%s, black=%s", g.White, g.Black)

	status := g.AnalysisStatus
	if status == "" {
		status = models.StatusPending
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO games (pgn, white, black, result, event, eco_code, opening_name, analysis_status, played_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, g.PGN, g.White, g.Black, g.Result, g.Event, g.ECOCode, g.OpeningName, status, g.PlayedAt)
	if err != nil {
		log.Error("failed to insert game: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get game id: %v", err)
		return 0, err
	}
	log.Debug("game inserted: id=%d", id)
	return id, nil
}

func (r *gameRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("updating game status: game_id=%d, status=%s", id, status)

	_, err := r.db.ExecContext(ctx, `UPDATE games SET analysis_status = ? WHERE id = ?`, status, id)
	if err != nil {
		log.Error("failed to update game status: %v", err)
	}
	return err
}

func (r *gameRepository) UpdateOpening(ctx context.Context, id int64, ecoCode, openingName string) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("updating game opening: game_id=%d, eco=%s", id, ecoCode)

	_, err := r.db.ExecContext(ctx, `UPDATE games SET eco_code = ?, opening_name = ? WHERE id = ?`, ecoCode, openingName, id)
	if err != nil {
		log.Error("failed to update game opening: %v", err)
	}
	return err
}

// ResetProcessingToPending marks in-progress games back to pending, for
// recovery after an unclean shutdown.
func (r *gameRepository) ResetProcessingToPending(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("resetting processing games to pending")

	_, err := r.db.ExecContext(ctx, `UPDATE games SET analysis_status = 'pending' WHERE analysis_status = 'processing'`)
	if err != nil {
		log.Error("failed to reset processing games: %v", err)
	}
	return err
}
