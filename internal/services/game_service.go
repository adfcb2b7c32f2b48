package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/davide/gamereview/internal/errors"
	"github.com/davide/gamereview/internal/jobs"
	"github.com/davide/gamereview/internal/logger"
	"github.com/davide/gamereview/internal/models"
	"github.com/davide/gamereview/internal/pgn"
	"github.com/davide/gamereview/internal/repository"
)

// GameService handles game-related business logic
type GameService interface {
	SubmitGame(ctx context.Context, pgnText string) (*models.Game, error)
	GetGame(ctx context.Context, id int64) (*models.Game, error)
	ListGames(ctx context.Context, filter models.GameFilter) ([]models.Game, int, error)
	QueueGameAnalysis(ctx context.Context, gameID int64) error
	ResumeAnalysis(ctx context.Context) (int, error)
}

type gameService struct {
	gameRepo repository.GameRepository
	jobQueue jobs.JobQueue
}

// NewGameService creates a new GameService
func NewGameService(gameRepo repository.GameRepository, jobQueue jobs.JobQueue) GameService {
	return &gameService{
		gameRepo: gameRepo,
		jobQueue: jobQueue,
	}
}

// SubmitGame stores a PGN and queues it for analysis. Header metadata is
// captured best effort; replay problems surface when the analysis runs.
func (s *gameService) SubmitGame(ctx context.Context, pgnText string) (*models.Game, error) {
	log := logger.FromContext(ctx)

	pgnText = strings.TrimSpace(pgnText)
	if pgnText == "" {
		return nil, errors.NewValidationError("pgn", "cannot be empty")
	}

	headers := pgn.ParseHeaders(pgnText)
	game := models.Game{
		PGN:            pgnText,
		White:          headers["White"],
		Black:          headers["Black"],
		Result:         headers["Result"],
		Event:          headers["Event"],
		ECOCode:        headers["ECO"],
		OpeningName:    headers["Opening"],
		AnalysisStatus: models.StatusPending,
		PlayedAt:       time.Now(),
	}
	if date, err := time.Parse("2006.01.02", headers["Date"]); err == nil {
		game.PlayedAt = date
	}

	id, err := s.gameRepo.Insert(ctx, game)
	if err != nil {
		log.Error("failed to insert game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	game.ID = id
	log.Info("game submitted: id=%d, white=%s, black=%s", id, game.White, game.Black)

	if err := s.jobQueue.EnqueueAnalysis(id); err != nil {
		log.Warn("failed to enqueue analysis for game %d: %v", id, err)
	}

	return &game, nil
}

func (s *gameService) GetGame(ctx context.Context, id int64) (*models.Game, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting game: id=%d", id)

	game, err := s.gameRepo.Get(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("game", id)
		}
		log.Error("failed to get game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if game == nil {
		return nil, errors.NewNotFoundError("game", id)
	}
	return game, nil
}

func (s *gameService) ListGames(ctx context.Context, filter models.GameFilter) ([]models.Game, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing games")

	games, err := s.gameRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	totalCount, err := s.gameRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count games: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return games, totalCount, nil
}

func (s *gameService) QueueGameAnalysis(ctx context.Context, gameID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("queueing game analysis: game_id=%d", gameID)

	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.AnalysisStatus == models.StatusProcessing {
		log.Debug("game already processing, skipping queue")
		return nil
	}

	return s.jobQueue.EnqueueAnalysis(gameID)
}

// ResumeAnalysis requeues every unfinished game, recovering work lost to an
// unclean shutdown. Returns how many games were requeued.
func (s *gameService) ResumeAnalysis(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("resuming analysis of unfinished games")

	if err := s.gameRepo.ResetProcessingToPending(ctx); err != nil {
		log.Warn("failed to reset processing games: %v", err)
	}

	games, err := s.gameRepo.List(ctx, models.GameFilter{AnalysisStatus: models.StatusPending})
	if err != nil {
		log.Error("failed to list pending games: %v", err)
		return 0, errors.NewInternalError(err)
	}

	queued := 0
	for _, g := range games {
		if err := s.jobQueue.EnqueueAnalysis(g.ID); err != nil {
			log.Warn("failed to enqueue analysis for game %d: %v", g.ID, err)
			continue
		}
		queued++
	}

	return queued, nil
}
