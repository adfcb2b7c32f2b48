package services

import (
	"context"
	"database/sql"

	"github.com/davide/gamereview/internal/analysis"
	"github.com/davide/gamereview/internal/errors"
	"github.com/davide/gamereview/internal/logger"
	"github.com/davide/gamereview/internal/models"
	"github.com/davide/gamereview/internal/pgn"
	"github.com/davide/gamereview/internal/repository"
)

// ReviewService runs and stores full game analyses
type ReviewService interface {
	AnalyzeGame(ctx context.Context, gameID int64) error
	GetReport(ctx context.Context, gameID int64) (*analysis.GameReport, error)
}

type reviewService struct {
	gameRepo   repository.GameRepository
	reportRepo repository.ReportRepository
	reviewer   *analysis.Reviewer
}

// NewReviewService creates a new ReviewService
func NewReviewService(gameRepo repository.GameRepository, reportRepo repository.ReportRepository, reviewer *analysis.Reviewer) ReviewService {
	return &reviewService{
		gameRepo:   gameRepo,
		reportRepo: reportRepo,
		reviewer:   reviewer,
	}
}

// AnalyzeGame replays a stored game, runs the review pipeline on it, and
// persists the resulting report. The game's analysis status tracks the
// attempt: processing while running, completed or failed afterwards.
func (s *reviewService) AnalyzeGame(ctx context.Context, gameID int64) error {
	log := logger.FromContext(ctx).WithField("game_id", gameID)
	log.Info("starting game analysis")

	game, err := s.gameRepo.Get(ctx, gameID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("game", gameID)
		}
		log.Error("failed to get game: %v", err)
		return err
	}
	if game == nil {
		return errors.NewNotFoundError("game", gameID)
	}

	if game.AnalysisStatus == models.StatusCompleted {
		log.Debug("game already analyzed, skipping")
		return nil
	}

	if err := s.gameRepo.UpdateStatus(ctx, gameID, models.StatusProcessing); err != nil {
		log.Error("failed to update game status: %v", err)
		return err
	}

	replayed, err := pgn.Replay(game.PGN)
	if err != nil {
		log.Error("failed to replay game: %v", err)
		_ = s.gameRepo.UpdateStatus(ctx, gameID, models.StatusFailed)
		return err
	}

	// Fill in the opening when the PGN headers did not carry one.
	if game.OpeningName == "" && replayed.OpeningName != "" {
		if err := s.gameRepo.UpdateOpening(ctx, gameID, replayed.ECOCode, replayed.OpeningName); err != nil {
			log.Warn("failed to update game opening: %v", err)
		} else {
			log.Debug("updated opening to %s (%s)", replayed.OpeningName, replayed.ECOCode)
		}
	}

	log.Debug("reviewing %d plies", len(replayed.Plies))
	report, err := s.reviewer.Review(ctx, replayed.Plies)
	if err != nil {
		log.Error("review failed: %v", err)
		_ = s.gameRepo.UpdateStatus(ctx, gameID, models.StatusFailed)
		return err
	}

	if err := s.reportRepo.SaveReport(ctx, gameID, report); err != nil {
		log.Error("failed to save report: %v", err)
		_ = s.gameRepo.UpdateStatus(ctx, gameID, models.StatusFailed)
		return err
	}

	if err := s.gameRepo.UpdateStatus(ctx, gameID, models.StatusCompleted); err != nil {
		log.Error("failed to mark game completed: %v", err)
		return err
	}

	log.Info("game analysis completed: moves=%d, critical=%d, white_accuracy=%.1f, black_accuracy=%.1f",
		len(report.Moves), len(report.CriticalMoments), report.WhiteAccuracy.Final, report.BlackAccuracy.Final)
	return nil
}

func (s *reviewService) GetReport(ctx context.Context, gameID int64) (*analysis.GameReport, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting report: game_id=%d", gameID)

	game, err := s.gameRepo.Get(ctx, gameID)
	if err != nil || game == nil {
		return nil, errors.NewNotFoundError("game", gameID)
	}

	return s.reportRepo.GetReport(ctx, gameID)
}
