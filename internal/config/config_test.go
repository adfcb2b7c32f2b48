package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davide/gamereview/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:gamereview.db", cfg.DBPath)
	assert.Equal(t, "stockfish", cfg.StockfishPath)
	assert.Equal(t, 18, cfg.StockfishDepth)
	assert.Equal(t, 3, cfg.MultiPV)
	assert.Equal(t, 2, cfg.EnginePoolSize)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 2, cfg.AnalysisWorkerCount)
	assert.Equal(t, 64, cfg.AnalysisQueueSize)
	assert.Equal(t, 4, cfg.ReviewWorkerCount)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("STOCKFISH_DEPTH", "12")
	t.Setenv("MULTI_PV", "5")
	t.Setenv("WIN_PROB_SCALE", "0.004")
	t.Setenv("CRITICAL_SWING", "0.25")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 12, cfg.StockfishDepth)
	assert.Equal(t, 5, cfg.MultiPV)
	assert.Equal(t, 0.004, cfg.Analysis.WinProbScale)
	assert.Equal(t, 0.25, cfg.Analysis.CriticalSwing)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STOCKFISH_DEPTH", "deep")
	t.Setenv("WIN_PROB_SCALE", "steep")

	cfg := config.Load()

	assert.Equal(t, 18, cfg.StockfishDepth)
	assert.Equal(t, 0.00368208, cfg.Analysis.WinProbScale)
}

func TestLoad_CalibrationDefaultsCarriedOver(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, 1.0, cfg.Analysis.BestLoss)
	assert.Equal(t, 30.0, cfg.Analysis.MistakeLoss)
	assert.Equal(t, 0.18, cfg.Analysis.CriticalSwing)
	assert.Equal(t, 100, cfg.Analysis.SacrificeMinValue)
}
