package api

import (
	"encoding/json"
	"net/http"

	"github.com/davide/gamereview/internal/errors"
	"github.com/davide/gamereview/internal/logger"
	"github.com/davide/gamereview/internal/models"
)

type submitGameRequest struct {
	PGN string `json:"pgn"`
}

func (s *Server) handleSubmitGame(w http.ResponseWriter, r *http.Request) {
	var req submitGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	game, err := s.GameService.SubmitGame(r.Context(), req.PGN)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, game)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.GameFilter{
		White:          q.Get("white"),
		Black:          q.Get("black"),
		Result:         q.Get("result"),
		AnalysisStatus: q.Get("status"),
		Limit:          queryInt(r, "limit", 50),
		Offset:         queryInt(r, "offset", 0),
		OrderBy:        q.Get("order_by"),
		OrderDir:       q.Get("order_dir"),
	}

	games, total, err := s.GameService.ListGames(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"games": games,
		"total": total,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	game, err := s.GameService.GetGame(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, game)
}

func (s *Server) handleQueueAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.GameService.QueueGameAnalysis(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusAccepted, map[string]any{"queued": true})
}

func (s *Server) handleResumeAnalysis(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	queued, err := s.GameService.ResumeAnalysis(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("requeued %d games for analysis", queued)

	respondJSON(w, r, http.StatusAccepted, map[string]any{"queued": queued})
}
