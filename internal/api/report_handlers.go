package api

import (
	"net/http"
)

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.ReviewService.GetReport(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, report)
}
