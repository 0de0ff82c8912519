package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/services"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakePlayerService struct {
	players   []models.Player
	err       error
	lastInput services.RegisterPlayerInput
}

func (f *fakePlayerService) RegisterPlayer(_ context.Context, input services.RegisterPlayerInput) (*models.Player, error) {
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	p := models.Player{ID: len(f.players) + 1, Name: input.Name}
	f.players = append(f.players, p)
	return &p, nil
}

func (f *fakePlayerService) ListPlayers(context.Context) ([]models.Player, error) {
	return f.players, f.err
}

func (f *fakePlayerService) CountPlayers(context.Context) (int, error) {
	return len(f.players), f.err
}

func (f *fakePlayerService) DeletePlayers(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.players = nil
	return nil
}

type fakeMatchService struct {
	matches []models.Match
	err     error
}

func (f *fakeMatchService) ReportMatch(_ context.Context, input services.ReportMatchInput) (*models.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	m := models.Match{ID: len(f.matches) + 1, WinnerID: input.WinnerID, LoserID: input.LoserID}
	f.matches = append(f.matches, m)
	return &m, nil
}

func (f *fakeMatchService) ReportBye(_ context.Context, playerID int) (*models.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	m := models.Match{ID: len(f.matches) + 1, WinnerID: playerID, Bye: true}
	f.matches = append(f.matches, m)
	return &m, nil
}

func (f *fakeMatchService) ListMatches(context.Context) ([]models.Match, error) {
	return f.matches, f.err
}

func (f *fakeMatchService) DeleteMatches(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.matches = nil
	return nil
}

type fakeTournamentService struct {
	standings []models.StandingEntry
	round     *models.Round
	err       error
	published int
}

func (f *fakeTournamentService) Standings(context.Context) ([]models.StandingEntry, error) {
	return f.standings, f.err
}

func (f *fakeTournamentService) SwissPairings(context.Context) (*models.Round, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.round, nil
}

func (f *fakeTournamentService) PublishRound(context.Context) (*models.Round, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.published++
	return f.round, nil
}

type fakeAuthService struct {
	password string
	err      error
}

func (f *fakeAuthService) IssueOrganizerToken(_ context.Context, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if password != f.password {
		return "", services.ErrInvalidCredentials
	}
	return "signed.jwt.token", nil
}
