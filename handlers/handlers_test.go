package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/services"
)

func doRequest(handler http.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func TestPlayerHandler(t *testing.T) {
	svc := &fakePlayerService{}
	h := NewPlayerHandler(svc, discardLogger())

	rec := doRequest(h.RegisterPlayer, http.MethodPost, `{"name":"Ann"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Player models.Player `json:"player"`
	}
	decodeBody(t, rec, &created)
	assert.Equal(t, "Ann", created.Player.Name)

	rec = doRequest(h.CountPlayers, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var count struct {
		Count int `json:"count"`
	}
	decodeBody(t, rec, &count)
	assert.Equal(t, 1, count.Count)

	rec = doRequest(h.ListPlayers, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name": "Ann"`)

	rec = doRequest(h.DeletePlayers, http.MethodDelete, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, svc.players)
}

func TestPlayerHandler_BadBodies(t *testing.T) {
	h := NewPlayerHandler(&fakePlayerService{}, discardLogger())

	for name, body := range map[string]string{
		"empty":         "",
		"malformed":     `{"name":`,
		"unknown field": `{"name":"Ann","rating":1500}`,
		"wrong type":    `{"name":42}`,
		"two values":    `{"name":"Ann"}{"name":"Bob"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(h.RegisterPlayer, http.MethodPost, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestMatchHandler(t *testing.T) {
	svc := &fakeMatchService{}
	h := NewMatchHandler(svc, discardLogger())

	rec := doRequest(h.ReportMatch, http.MethodPost, `{"winner_id":1,"loser_id":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(h.ReportBye, http.MethodPost, `{"player_id":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var bye struct {
		Match models.Match `json:"match"`
	}
	decodeBody(t, rec, &bye)
	assert.True(t, bye.Match.Bye)
	assert.Equal(t, 3, bye.Match.WinnerID)

	rec = doRequest(h.ListMatches, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Matches []models.Match `json:"matches"`
	}
	decodeBody(t, rec, &list)
	assert.Len(t, list.Matches, 2)

	rec = doRequest(h.DeleteMatches, http.MethodDelete, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTournamentHandler(t *testing.T) {
	bye := models.PlayerRef{ID: 5, Name: "Eve"}
	svc := &fakeTournamentService{
		standings: []models.StandingEntry{{PlayerID: 1, Name: "Ann", Wins: 1, Matches: 1}},
		round: &models.Round{
			Pairings: []models.Pairing{{Player1ID: 1, Player1Name: "Ann", Player2ID: 2, Player2Name: "Bob"}},
			Bye:      &bye,
		},
	}
	h := NewTournamentHandler(svc, discardLogger())

	rec := doRequest(h.Standings, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var standings struct {
		Standings []models.StandingEntry `json:"standings"`
	}
	decodeBody(t, rec, &standings)
	assert.Equal(t, svc.standings, standings.Standings)

	rec = doRequest(h.Pairings, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pairings struct {
		Round models.Round `json:"round"`
	}
	decodeBody(t, rec, &pairings)
	assert.Equal(t, *svc.round, pairings.Round)
	assert.Zero(t, svc.published, "previewing pairings publishes nothing")

	rec = doRequest(h.PublishRound, http.MethodPost, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var published struct {
		Round models.Round `json:"round"`
	}
	decodeBody(t, rec, &published)
	assert.Equal(t, *svc.round, published.Round)
	assert.Equal(t, 1, svc.published)
}

func TestMapServiceErrorToHTTP_AbandonedRequestWritesNothing(t *testing.T) {
	for _, err := range []error{context.Canceled, fmt.Errorf("pairing search interrupted: %w", context.DeadlineExceeded)} {
		rec := httptest.NewRecorder()

		mapServiceErrorToHTTP(discardLogger(), rec, httptest.NewRequest(http.MethodGet, "/pairings", nil), err)

		assert.Empty(t, rec.Body.String())
		assert.Empty(t, rec.Header().Get("Content-Type"))
	}
}

func TestAuthHandler(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{password: "hunter2"}, time.Hour, discardLogger())

	rec := doRequest(h.IssueToken, http.MethodPost, `{"password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var token struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		ExpiresIn int    `json:"expires_in"`
	}
	decodeBody(t, rec, &token)
	assert.Equal(t, "signed.jwt.token", token.Token)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, 3600, token.ExpiresIn)

	rec = doRequest(h.IssueToken, http.MethodPost, `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(h.IssueToken, http.MethodPost, `{"password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	disabled := NewAuthHandler(&fakeAuthService{err: services.ErrAuthDisabled}, time.Hour, discardLogger())
	rec = doRequest(disabled.IssueToken, http.MethodPost, `{"password":"hunter2"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: fmt.Errorf("%w (found 1)", brackets.ErrInsufficientPlayers), wantStatus: http.StatusUnprocessableEntity},
		{err: fmt.Errorf("%w: every arrangement repeats a game", brackets.ErrPairingExhausted), wantStatus: http.StatusConflict},
		{err: fmt.Errorf("%w: listing players: %w", services.ErrStorageUnavailable, errors.New("dial tcp")), wantStatus: http.StatusServiceUnavailable},
		{err: services.ErrPlayerNameRequired, wantStatus: http.StatusBadRequest},
		{err: services.ErrSelfMatch, wantStatus: http.StatusBadRequest},
		{err: fmt.Errorf("%w: winner_id and loser_id must be positive", services.ErrValidationFailed), wantStatus: http.StatusBadRequest},
		{err: services.ErrPlayerNotFound, wantStatus: http.StatusNotFound},
		{err: services.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/pairings", nil)

			mapServiceErrorToHTTP(discardLogger(), rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestMapServiceErrorToHTTP_HidesStorageDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("%w: loading snapshot: %w", services.ErrStorageUnavailable, errors.New("password authentication failed for user postgres"))

	mapServiceErrorToHTTP(discardLogger(), rec, httptest.NewRequest(http.MethodGet, "/standings", nil), err)

	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSwaggerDoc(t *testing.T) {
	rec := doRequest(SwaggerDoc, http.MethodGet, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]interface{}
	decodeBody(t, rec, &doc)
	assert.Contains(t, doc, "paths")
}
