package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrInsufficientPlayers = errors.New("at least two players are required to generate pairings")
	ErrPairingExhausted    = errors.New("no pairing avoids a rematch")
)

type GeneratePairingsParams struct {
	Players []models.Player
	Matches []models.Match
}

type PairingGenerator interface {
	GeneratePairings(ctx context.Context, params GeneratePairingsParams) (*models.Round, error)

	GetName() string
}
