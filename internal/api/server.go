package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davide/gamereview/internal/db"
	"github.com/davide/gamereview/internal/services"
	"github.com/davide/gamereview/internal/worker"
)

type Server struct {
	DB            *db.DB
	AnalysisPool  *worker.Pool
	GameService   services.GameService
	ReviewService services.ReviewService
	StatsService  services.StatsService
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/games", s.handleSubmitGame)
		r.Get("/games", s.handleListGames)
		r.Get("/games/{id}", s.handleGetGame)
		r.Post("/games/{id}/analyze", s.handleQueueAnalysis)
		r.Get("/games/{id}/report", s.handleGetReport)
		r.Post("/resume-analysis", s.handleResumeAnalysis)
		r.Get("/stats", s.handleStats)
	})

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	return r
}
