package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/davide/gamereview/internal/analysis"
)

type Config struct {
	Addr                string
	DBPath              string
	StockfishPath       string
	StockfishDepth      int
	MultiPV             int
	EnginePoolSize      int
	LogLevel            string
	AnalysisWorkerCount int
	AnalysisQueueSize   int
	ReviewWorkerCount   int

	// Analysis holds the calibration knobs of the review pipeline.
	Analysis analysis.Config
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	cal := analysis.DefaultConfig()
	cal.WinProbScale = envFloatOr("WIN_PROB_SCALE", cal.WinProbScale)
	cal.CriticalSwing = envFloatOr("CRITICAL_SWING", cal.CriticalSwing)
	cal.BrilliantMaxLoss = envFloatOr("BRILLIANT_MAX_LOSS", cal.BrilliantMaxLoss)
	cal.SacrificeMinValue = envIntOr("SACRIFICE_MIN_VALUE", cal.SacrificeMinValue)

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:gamereview.db"),
		StockfishPath:       envOr("STOCKFISH_PATH", "stockfish"),
		StockfishDepth:      envIntOr("STOCKFISH_DEPTH", 18),
		MultiPV:             envIntOr("MULTI_PV", 3),
		EnginePoolSize:      envIntOr("ENGINE_POOL_SIZE", 2),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		AnalysisWorkerCount: envIntOr("ANALYSIS_WORKER_COUNT", 2),
		AnalysisQueueSize:   envIntOr("ANALYSIS_QUEUE_SIZE", 64),
		ReviewWorkerCount:   envIntOr("REVIEW_WORKER_COUNT", 4),
		Analysis:            cal,
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
