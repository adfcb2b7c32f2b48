package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davide/gamereview/internal/analysis"
	"github.com/davide/gamereview/internal/api"
	"github.com/davide/gamereview/internal/config"
	"github.com/davide/gamereview/internal/db"
	"github.com/davide/gamereview/internal/engine"
	"github.com/davide/gamereview/internal/jobs"
	"github.com/davide/gamereview/internal/logger"
	"github.com/davide/gamereview/internal/repository/sqlite"
	"github.com/davide/gamereview/internal/services"
	"github.com/davide/gamereview/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("GameReview Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("stockfish_path=%s", cfg.StockfishPath)
	log.Debug("stockfish_depth=%d", cfg.StockfishDepth)
	log.Debug("multi_pv=%d", cfg.MultiPV)
	log.Debug("engine_pool_size=%d", cfg.EnginePoolSize)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("analysis_worker_count=%d", cfg.AnalysisWorkerCount)
	log.Debug("analysis_queue_size=%d", cfg.AnalysisQueueSize)
	log.Debug("review_worker_count=%d", cfg.ReviewWorkerCount)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Start the engine pool
	enginePool, err := engine.NewPool(cfg.StockfishPath, cfg.EnginePoolSize, engine.WithDepth(cfg.StockfishDepth))
	if err != nil {
		log.Error("failed to start engine pool: %v", err)
		os.Exit(1)
	}
	defer enginePool.Close()

	// Initialize repositories
	gameRepo := sqlite.NewGameRepository(database.DB)
	reportRepo := sqlite.NewReportRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Initialize the review pipeline and services
	reviewer := analysis.NewReviewer(cfg.Analysis, enginePool,
		analysis.WithWorkers(cfg.ReviewWorkerCount),
		analysis.WithCandidates(cfg.MultiPV),
	)
	reviewService := services.NewReviewService(gameRepo, reportRepo, reviewer)

	analysisPool := worker.NewPool(cfg.AnalysisWorkerCount, cfg.AnalysisQueueSize)
	jobQueue := jobs.NewWorkerQueue(analysisPool, reviewService)

	gameService := services.NewGameService(gameRepo, jobQueue)
	statsService := services.NewStatsService(statsRepo)

	srv := &api.Server{
		DB:            database,
		AnalysisPool:  analysisPool,
		GameService:   gameService,
		ReviewService: reviewService,
		StatsService:  statsService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	analysisPool.Start(ctx)

	// Requeue games interrupted by a previous shutdown.
	if queued, err := gameService.ResumeAnalysis(logger.NewContext(ctx, log)); err != nil {
		log.Warn("failed to resume unfinished analyses: %v", err)
	} else if queued > 0 {
		log.Info("requeued %d unfinished games", queued)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pools")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for workers to finish
	log.Debug("stopping analysis pool")
	analysisPool.Stop()

	log.Info("===========================================")
	log.Info("GameReview Server Stopped")
	log.Info("===========================================")
}
