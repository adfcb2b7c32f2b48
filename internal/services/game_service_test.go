package services_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davide/gamereview/internal/models"
	"github.com/davide/gamereview/internal/services"
	"github.com/davide/gamereview/internal/testutil/mocks"
)

const submittedPGN = `[Event "Live Chess"]
[White "alice"]
[Black "bob"]
[Result "1-0"]
[Date "2024.01.15"]
[ECO "C20"]

1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0`

func TestSubmitGame(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	queue := new(mocks.MockJobQueue)
	svc := services.NewGameService(gameRepo, queue)

	gameRepo.On("Insert", mock.Anything, mock.MatchedBy(func(g models.Game) bool {
		return g.White == "alice" && g.Black == "bob" && g.Result == "1-0" &&
			g.ECOCode == "C20" && g.AnalysisStatus == models.StatusPending
	})).Return(int64(7), nil)
	queue.On("EnqueueAnalysis", int64(7)).Return(nil)

	game, err := svc.SubmitGame(context.Background(), submittedPGN)
	require.NoError(t, err)

	assert.Equal(t, int64(7), game.ID)
	assert.Equal(t, "alice", game.White)
	assert.Equal(t, 2024, game.PlayedAt.Year())
	gameRepo.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestSubmitGame_EmptyPGN(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	queue := new(mocks.MockJobQueue)
	svc := services.NewGameService(gameRepo, queue)

	_, err := svc.SubmitGame(context.Background(), "   \n ")
	assert.Error(t, err)
	gameRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitGame_QueueFailureIsNotFatal(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	queue := new(mocks.MockJobQueue)
	svc := services.NewGameService(gameRepo, queue)

	gameRepo.On("Insert", mock.Anything, mock.Anything).Return(int64(3), nil)
	queue.On("EnqueueAnalysis", int64(3)).Return(errors.New("job queue is full"))

	game, err := svc.SubmitGame(context.Background(), submittedPGN)
	require.NoError(t, err, "the game is stored even when it cannot be queued")
	assert.Equal(t, int64(3), game.ID)
}

func TestGetGame_NotFound(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	queue := new(mocks.MockJobQueue)
	svc := services.NewGameService(gameRepo, queue)

	gameRepo.On("Get", mock.Anything, int64(99)).Return(nil, sql.ErrNoRows)

	_, err := svc.GetGame(context.Background(), 99)
	assert.Error(t, err)
}

func TestQueueGameAnalysis_SkipsProcessingGame(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	queue := new(mocks.MockJobQueue)
	svc := services.NewGameService(gameRepo, queue)

	gameRepo.On("Get", mock.Anything, int64(5)).Return(&models.Game{
		ID: 5, AnalysisStatus: models.StatusProcessing,
	}, nil)

	err := svc.QueueGameAnalysis(context.Background(), 5)
	require.NoError(t, err)
	queue.AssertNotCalled(t, "EnqueueAnalysis", mock.Anything)
}

func TestQueueGameAnalysis_EnqueuesPendingGame(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	queue := new(mocks.MockJobQueue)
	svc := services.NewGameService(gameRepo, queue)

	gameRepo.On("Get", mock.Anything, int64(5)).Return(&models.Game{
		ID: 5, AnalysisStatus: models.StatusPending,
	}, nil)
	queue.On("EnqueueAnalysis", int64(5)).Return(nil)

	require.NoError(t, svc.QueueGameAnalysis(context.Background(), 5))
	queue.AssertExpectations(t)
}

func TestResumeAnalysis(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	queue := new(mocks.MockJobQueue)
	svc := services.NewGameService(gameRepo, queue)

	gameRepo.On("ResetProcessingToPending", mock.Anything).Return(nil)
	gameRepo.On("List", mock.Anything, models.GameFilter{AnalysisStatus: models.StatusPending}).
		Return([]models.Game{{ID: 1}, {ID: 2}}, nil)
	queue.On("EnqueueAnalysis", int64(1)).Return(nil)
	queue.On("EnqueueAnalysis", int64(2)).Return(errors.New("job queue is full"))

	queued, err := svc.ResumeAnalysis(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, queued, "games that could not be queued are skipped")
}
