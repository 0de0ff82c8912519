package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/storage"
)

const (
	latestStandingsKey = "latest/standings.json"
	latestPairingsKey  = "latest/pairings.json"
)

// RoundArchiver publishes a copy of each generated round.
type RoundArchiver interface {
	ArchiveRound(ctx context.Context, standings []models.StandingEntry, round *models.Round) error
	ClearLatest(ctx context.Context) error
}

type roundArchive struct {
	uploader storage.FileUploader
	logger   *slog.Logger
	now      func() time.Time
}

func NewRoundArchive(uploader storage.FileUploader, logger *slog.Logger) RoundArchiver {
	return &roundArchive{uploader: uploader, logger: logger, now: time.Now}
}

type archivedStandings struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Standings   []models.StandingEntry `json:"standings"`
}

type archivedRound struct {
	GeneratedAt time.Time `json:"generated_at"`
	*models.Round
}

// ArchiveRound writes the standings the round was paired from and the round itself,
// both under a timestamped prefix and under latest/.
func (a *roundArchive) ArchiveRound(ctx context.Context, standings []models.StandingEntry, round *models.Round) error {
	generatedAt := a.now().UTC()
	prefix := "rounds/" + generatedAt.Format("20060102T150405.000000000Z")

	standingsJSON, err := json.Marshal(archivedStandings{GeneratedAt: generatedAt, Standings: standings})
	if err != nil {
		return fmt.Errorf("failed to encode standings: %w", err)
	}
	roundJSON, err := json.Marshal(archivedRound{GeneratedAt: generatedAt, Round: round})
	if err != nil {
		return fmt.Errorf("failed to encode round: %w", err)
	}

	objects := map[string][]byte{
		prefix + "/standings.json": standingsJSON,
		prefix + "/pairings.json":  roundJSON,
		latestStandingsKey:         standingsJSON,
		latestPairingsKey:          roundJSON,
	}

	g, gCtx := errgroup.WithContext(ctx)
	for key, body := range objects {
		g.Go(func() error {
			res, err := a.uploader.Upload(gCtx, key, "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			a.logger.Debug("round archive object uploaded", slog.String("key", res.Key), slog.String("location", res.Location))
			return nil
		})
	}
	return g.Wait()
}

func (a *roundArchive) ClearLatest(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)
	for _, key := range []string{latestStandingsKey, latestPairingsKey} {
		g.Go(func() error {
			return a.uploader.Delete(gCtx, key)
		})
	}
	return g.Wait()
}
