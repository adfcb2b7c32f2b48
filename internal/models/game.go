package models

import "time"

// Analysis status lifecycle for a stored game.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type Game struct {
	ID             int64     `json:"id"`
	PGN            string    `json:"pgn"`
	White          string    `json:"white"`
	Black          string    `json:"black"`
	Result         string    `json:"result"`
	Event          string    `json:"event"`
	ECOCode        string    `json:"eco_code"`
	OpeningName    string    `json:"opening_name"`
	AnalysisStatus string    `json:"analysis_status"`
	PlayedAt       time.Time `json:"played_at"`
	CreatedAt      time.Time `json:"created_at"`
}

type GameFilter struct {
	White          string
	Black          string
	Result         string
	AnalysisStatus string
	Limit          int
	Offset         int
	OrderBy        string
	OrderDir       string
}
