package worker

import "context"

// ReviewServiceInterface defines the interface for game analysis
// This avoids import cycles by not importing the services package
type ReviewServiceInterface interface {
	AnalyzeGame(ctx context.Context, gameID int64) error
}
