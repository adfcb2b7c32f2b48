package worker

import "context"

type AnalyzeGameJob struct {
	ReviewService ReviewServiceInterface
	GameID        int64
}

func (j *AnalyzeGameJob) Name() string { return "analyze_game" }

func (j *AnalyzeGameJob) Run(ctx context.Context) error {
	return j.ReviewService.AnalyzeGame(ctx, j.GameID)
}
