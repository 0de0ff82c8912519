package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type TournamentService interface {
	Standings(ctx context.Context) ([]models.StandingEntry, error)
	SwissPairings(ctx context.Context) (*models.Round, error)
	PublishRound(ctx context.Context) (*models.Round, error)
}

type tournamentService struct {
	snapshotRepo repositories.SnapshotRepository
	generator    brackets.PairingGenerator
	archive      RoundArchiver
	events       EventBroadcaster
	logger       *slog.Logger
}

// NewTournamentService wires standings and pairing generation. archive may be nil.
func NewTournamentService(
	snapshotRepo repositories.SnapshotRepository,
	generator brackets.PairingGenerator,
	archive RoundArchiver,
	events EventBroadcaster,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		snapshotRepo: snapshotRepo,
		generator:    generator,
		archive:      archive,
		events:       broadcasterOrNoop(events),
		logger:       logger,
	}
}

func (s *tournamentService) Standings(ctx context.Context) ([]models.StandingEntry, error) {
	snapshot, err := s.snapshotRepo.Load(ctx)
	if err != nil {
		return nil, storageError("loading standings snapshot", err)
	}
	return brackets.ComputeStandings(snapshot.Players, snapshot.Matches), nil
}

// SwissPairings computes the next round from one consistent snapshot without
// publishing it. Core errors (insufficient players, exhausted pairings) are
// returned as they are.
func (s *tournamentService) SwissPairings(ctx context.Context) (*models.Round, error) {
	_, round, err := s.nextRound(ctx)
	return round, err
}

// PublishRound computes the next round, archives it together with the standings it
// was paired from and announces it to live clients.
func (s *tournamentService) PublishRound(ctx context.Context) (*models.Round, error) {
	snapshot, round, err := s.nextRound(ctx)
	if err != nil {
		return nil, err
	}

	attrs := []any{
		slog.String("generator", s.generator.GetName()),
		slog.Int("pairings", len(round.Pairings)),
		slog.Bool("first_round", round.FirstRound),
	}
	if round.Bye != nil {
		attrs = append(attrs, slog.Int("bye_player_id", round.Bye.ID))
	}
	s.logger.Info("round published", attrs...)

	if s.archive != nil {
		standings := brackets.ComputeStandings(snapshot.Players, snapshot.Matches)
		if err := s.archive.ArchiveRound(ctx, standings, round); err != nil {
			s.logger.Warn("failed to archive round", slog.Any("error", err))
		}
	}
	s.events.BroadcastEvent(brackets.EventPairingsGenerated, round)
	return round, nil
}

func (s *tournamentService) nextRound(ctx context.Context) (*models.Snapshot, *models.Round, error) {
	snapshot, err := s.snapshotRepo.Load(ctx)
	if err != nil {
		return nil, nil, storageError("loading pairing snapshot", err)
	}

	round, err := s.generator.GeneratePairings(ctx, brackets.GeneratePairingsParams{
		Players: snapshot.Players,
		Matches: snapshot.Matches,
	})
	if err != nil {
		s.logger.Warn("pairing generation failed",
			slog.String("generator", s.generator.GetName()),
			slog.Int("players", len(snapshot.Players)),
			slog.Int("matches", len(snapshot.Matches)),
			slog.Any("error", err),
		)
		return nil, nil, err
	}
	return snapshot, round, nil
}
