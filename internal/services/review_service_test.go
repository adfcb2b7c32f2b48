package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davide/gamereview/internal/analysis"
	"github.com/davide/gamereview/internal/models"
	"github.com/davide/gamereview/internal/services"
	"github.com/davide/gamereview/internal/testutil/mocks"
)

// fixedEvaluator returns the same candidates and score for every position.
type fixedEvaluator struct{}

func (fixedEvaluator) TopMoves(_ context.Context, _ string, _ int) ([]analysis.Candidate, error) {
	return []analysis.Candidate{
		{MoveUCI: "e2e4", Eval: analysis.Centipawns(30, 18)},
		{MoveUCI: "d2d4", Eval: analysis.Centipawns(20, 18)},
	}, nil
}

func (fixedEvaluator) Evaluate(_ context.Context, _ string) (analysis.Eval, error) {
	return analysis.Centipawns(30, 18), nil
}

func newTestReviewService(gameRepo *mocks.MockGameRepository, reportRepo *mocks.MockReportRepository) services.ReviewService {
	reviewer := analysis.NewReviewer(analysis.DefaultConfig(), fixedEvaluator{}, analysis.WithWorkers(2))
	return services.NewReviewService(gameRepo, reportRepo, reviewer)
}

func TestAnalyzeGame_CompletesAndStoresReport(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	reportRepo := new(mocks.MockReportRepository)
	svc := newTestReviewService(gameRepo, reportRepo)

	gameRepo.On("Get", mock.Anything, int64(1)).Return(&models.Game{
		ID:             1,
		PGN:            "1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0",
		AnalysisStatus: models.StatusPending,
	}, nil)
	gameRepo.On("UpdateStatus", mock.Anything, int64(1), models.StatusProcessing).Return(nil)
	gameRepo.On("UpdateOpening", mock.Anything, int64(1), mock.Anything, mock.Anything).Return(nil)
	reportRepo.On("SaveReport", mock.Anything, int64(1), mock.MatchedBy(func(r *analysis.GameReport) bool {
		return len(r.Moves) == 7
	})).Return(nil)
	gameRepo.On("UpdateStatus", mock.Anything, int64(1), models.StatusCompleted).Return(nil)

	err := svc.AnalyzeGame(context.Background(), 1)
	require.NoError(t, err)
	gameRepo.AssertExpectations(t)
	reportRepo.AssertExpectations(t)
}

func TestAnalyzeGame_SkipsCompletedGame(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	reportRepo := new(mocks.MockReportRepository)
	svc := newTestReviewService(gameRepo, reportRepo)

	gameRepo.On("Get", mock.Anything, int64(2)).Return(&models.Game{
		ID: 2, AnalysisStatus: models.StatusCompleted,
	}, nil)

	err := svc.AnalyzeGame(context.Background(), 2)
	require.NoError(t, err)
	reportRepo.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeGame_UnreplayablePGNMarksGameFailed(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	reportRepo := new(mocks.MockReportRepository)
	svc := newTestReviewService(gameRepo, reportRepo)

	gameRepo.On("Get", mock.Anything, int64(3)).Return(&models.Game{
		ID: 3, PGN: "1. e4 e4 2. Ke2", AnalysisStatus: models.StatusPending,
	}, nil)
	gameRepo.On("UpdateStatus", mock.Anything, int64(3), models.StatusProcessing).Return(nil)
	gameRepo.On("UpdateStatus", mock.Anything, int64(3), models.StatusFailed).Return(nil)

	err := svc.AnalyzeGame(context.Background(), 3)
	assert.Error(t, err)
	gameRepo.AssertExpectations(t)
	reportRepo.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetReport(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	reportRepo := new(mocks.MockReportRepository)
	svc := newTestReviewService(gameRepo, reportRepo)

	stored := &analysis.GameReport{
		WhiteAccuracy: analysis.AccuracySummary{Final: 92.5, Moves: 20},
	}
	gameRepo.On("Get", mock.Anything, int64(4)).Return(&models.Game{ID: 4}, nil)
	reportRepo.On("GetReport", mock.Anything, int64(4)).Return(stored, nil)

	report, err := svc.GetReport(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 92.5, report.WhiteAccuracy.Final)
}

func TestGetReport_GameNotFound(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	reportRepo := new(mocks.MockReportRepository)
	svc := newTestReviewService(gameRepo, reportRepo)

	gameRepo.On("Get", mock.Anything, int64(9)).Return(nil, assert.AnError)

	_, err := svc.GetReport(context.Background(), 9)
	assert.Error(t, err)
	reportRepo.AssertNotCalled(t, "GetReport", mock.Anything, mock.Anything)
}
