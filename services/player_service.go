package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type PlayerService interface {
	RegisterPlayer(ctx context.Context, input RegisterPlayerInput) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	CountPlayers(ctx context.Context) (int, error)
	DeletePlayers(ctx context.Context) error
}

type RegisterPlayerInput struct {
	Name string `json:"name"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	archive    RoundArchiver
	events     EventBroadcaster
	logger     *slog.Logger
}

// NewPlayerService wires the player use cases. archive may be nil.
func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	archive RoundArchiver,
	events EventBroadcaster,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		archive:    archive,
		events:     broadcasterOrNoop(events),
		logger:     logger,
	}
}

func (s *playerService) RegisterPlayer(ctx context.Context, input RegisterPlayerInput) (*models.Player, error) {
	name, err := normalizePlayerName(input.Name)
	if err != nil {
		return nil, err
	}

	player := &models.Player{Name: name}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, storageError("registering player", err)
	}

	s.logger.Info("player registered", slog.Int("player_id", player.ID), slog.String("name", player.Name))
	s.events.BroadcastEvent(brackets.EventPlayerRegistered, player)
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, storageError("listing players", err)
	}
	if players == nil {
		return []models.Player{}, nil
	}
	return players, nil
}

func (s *playerService) CountPlayers(ctx context.Context) (int, error) {
	count, err := s.playerRepo.Count(ctx)
	if err != nil {
		return 0, storageError("counting players", err)
	}
	return count, nil
}

// DeletePlayers removes every player together with their matches.
func (s *playerService) DeletePlayers(ctx context.Context) error {
	if err := s.playerRepo.DeleteAll(ctx); err != nil {
		return storageError("deleting players", err)
	}
	s.logger.Info("all players deleted")

	if s.archive != nil {
		if err := s.archive.ClearLatest(ctx); err != nil {
			s.logger.Warn("failed to clear latest round archive", slog.Any("error", err))
		}
	}
	s.events.BroadcastEvent(brackets.EventPlayersReset, nil)
	return nil
}
