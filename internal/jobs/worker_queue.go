package jobs

import (
	"github.com/davide/gamereview/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	analysisPool  *worker.Pool
	reviewService worker.ReviewServiceInterface
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(analysisPool *worker.Pool, reviewService worker.ReviewServiceInterface) JobQueue {
	return &WorkerQueue{
		analysisPool:  analysisPool,
		reviewService: reviewService,
	}
}

func (q *WorkerQueue) EnqueueAnalysis(gameID int64) error {
	return q.analysisPool.Submit(&worker.AnalyzeGameJob{
		ReviewService: q.reviewService,
		GameID:        gameID,
	})
}
