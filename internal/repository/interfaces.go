package repository

import (
	"context"

	"github.com/davide/gamereview/internal/analysis"
	"github.com/davide/gamereview/internal/models"
)

// GameRepository handles game data access
type GameRepository interface {
	Get(ctx context.Context, id int64) (*models.Game, error)
	List(ctx context.Context, filter models.GameFilter) ([]models.Game, error)
	Count(ctx context.Context, filter models.GameFilter) (int, error)
	Insert(ctx context.Context, game models.Game) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateOpening(ctx context.Context, id int64, ecoCode, openingName string) error
	ResetProcessingToPending(ctx context.Context) error
}

// ReportRepository persists and loads analysis reports
type ReportRepository interface {
	SaveReport(ctx context.Context, gameID int64, report *analysis.GameReport) error
	GetReport(ctx context.Context, gameID int64) (*analysis.GameReport, error)
	DeleteReport(ctx context.Context, gameID int64) error
}

// StatsRepository aggregates analysis results across games
type StatsRepository interface {
	Summary(ctx context.Context) (*models.Stats, error)
}
