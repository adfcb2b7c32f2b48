package models

// LabelCount is one move-classification bucket across analyzed games.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalGames      int          `json:"total_games"`
	AnalyzedGames   int          `json:"analyzed_games"`
	FailedGames     int          `json:"failed_games"`
	TotalMoves      int          `json:"total_moves"`
	AvgAccuracy     float64      `json:"avg_accuracy"`
	Classifications []LabelCount `json:"classifications"`
}
