package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/swiss-tournament/services"
)

type AuthHandler struct {
	authService services.AuthService
	tokenTTL    time.Duration
	logger      *slog.Logger
}

func NewAuthHandler(authService services.AuthService, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL, logger: logger}
}

type tokenRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var input tokenRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(h.logger, w, r, err)
		return
	}
	if input.Password == "" {
		badRequestResponse(h.logger, w, r, errors.New("password is required"))
		return
	}

	token, err := h.authService.IssueOrganizerToken(r.Context(), input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Warn("organizer login rejected", slog.String("remote_addr", r.RemoteAddr))
		}
		mapServiceErrorToHTTP(h.logger, w, r, err)
		return
	}

	response := jsonResponse{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int(h.tokenTTL.Seconds()),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(h.logger, w, r, err)
	}
}
