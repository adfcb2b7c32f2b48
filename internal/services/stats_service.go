package services

import (
	"context"

	"github.com/davide/gamereview/internal/errors"
	"github.com/davide/gamereview/internal/logger"
	"github.com/davide/gamereview/internal/models"
	"github.com/davide/gamereview/internal/repository"
)

// StatsService exposes aggregate analysis statistics
type StatsService interface {
	Summary(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Summary(ctx context.Context) (*models.Stats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting summary stats")

	stats, err := s.statsRepo.Summary(ctx)
	if err != nil {
		log.Error("failed to get summary stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}
