package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type MatchHandler struct {
	matchService services.MatchService
	logger       *slog.Logger
}

func NewMatchHandler(matchService services.MatchService, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{matchService: matchService, logger: logger}
}

type reportByeRequest struct {
	PlayerID int `json:"player_id"`
}

func (h *MatchHandler) ReportMatch(w http.ResponseWriter, r *http.Request) {
	var input services.ReportMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(h.logger, w, r, err)
		return
	}

	match, err := h.matchService.ReportMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(h.logger, w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(h.logger, w, r, err)
	}
}

func (h *MatchHandler) ReportBye(w http.ResponseWriter, r *http.Request) {
	var input reportByeRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(h.logger, w, r, err)
		return
	}

	match, err := h.matchService.ReportBye(r.Context(), input.PlayerID)
	if err != nil {
		mapServiceErrorToHTTP(h.logger, w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(h.logger, w, r, err)
	}
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(h.logger, w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(h.logger, w, r, err)
	}
}

func (h *MatchHandler) DeleteMatches(w http.ResponseWriter, r *http.Request) {
	if err := h.matchService.DeleteMatches(r.Context()); err != nil {
		mapServiceErrorToHTTP(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
