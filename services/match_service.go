package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type MatchService interface {
	ReportMatch(ctx context.Context, input ReportMatchInput) (*models.Match, error)
	ReportBye(ctx context.Context, playerID int) (*models.Match, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	DeleteMatches(ctx context.Context) error
}

type ReportMatchInput struct {
	WinnerID int `json:"winner_id"`
	LoserID  int `json:"loser_id"`
}

type matchService struct {
	matchRepo repositories.MatchRepository
	archive   RoundArchiver
	events    EventBroadcaster
	logger    *slog.Logger
}

// NewMatchService wires the match use cases. archive may be nil.
func NewMatchService(
	matchRepo repositories.MatchRepository,
	archive RoundArchiver,
	events EventBroadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		archive:   archive,
		events:    broadcasterOrNoop(events),
		logger:    logger,
	}
}

func (s *matchService) ReportMatch(ctx context.Context, input ReportMatchInput) (*models.Match, error) {
	if input.WinnerID <= 0 || input.LoserID <= 0 {
		return nil, fmt.Errorf("%w: winner_id and loser_id must be positive", ErrValidationFailed)
	}
	if input.WinnerID == input.LoserID {
		return nil, ErrSelfMatch
	}

	match := &models.Match{WinnerID: input.WinnerID, LoserID: input.LoserID}
	if err := s.create(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Info("match reported",
		slog.Int("match_id", match.ID),
		slog.Int("winner_id", match.WinnerID),
		slog.Int("loser_id", match.LoserID),
	)
	s.events.BroadcastEvent(brackets.EventMatchReported, match)
	return match, nil
}

// ReportBye records a free win for a player who sat out a round.
func (s *matchService) ReportBye(ctx context.Context, playerID int) (*models.Match, error) {
	if playerID <= 0 {
		return nil, fmt.Errorf("%w: player_id must be positive", ErrValidationFailed)
	}

	match := &models.Match{WinnerID: playerID, Bye: true}
	if err := s.create(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Info("bye recorded", slog.Int("match_id", match.ID), slog.Int("player_id", playerID))
	s.events.BroadcastEvent(brackets.EventMatchReported, match)
	return match, nil
}

func (s *matchService) create(ctx context.Context, match *models.Match) error {
	err := s.matchRepo.Create(ctx, match)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrMatchPlayerInvalid):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrMatchSelfPlay):
		return ErrSelfMatch
	default:
		return storageError("recording match", err)
	}
}

func (s *matchService) ListMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, storageError("listing matches", err)
	}
	if matches == nil {
		return []models.Match{}, nil
	}
	return matches, nil
}

func (s *matchService) DeleteMatches(ctx context.Context) error {
	if err := s.matchRepo.DeleteAll(ctx); err != nil {
		return storageError("deleting matches", err)
	}
	s.logger.Info("all matches deleted")

	if s.archive != nil {
		if err := s.archive.ClearLatest(ctx); err != nil {
			s.logger.Warn("failed to clear latest round archive", slog.Any("error", err))
		}
	}
	s.events.BroadcastEvent(brackets.EventMatchesReset, nil)
	return nil
}
