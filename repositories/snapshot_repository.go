package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

// SnapshotRepository reads players and matches as one consistent view.
type SnapshotRepository interface {
	Load(ctx context.Context) (*models.Snapshot, error)
}

type postgresSnapshotRepository struct {
	db *sql.DB
}

func NewPostgresSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &postgresSnapshotRepository{db: db}
}

func (r *postgresSnapshotRepository) Load(ctx context.Context) (snapshot *models.Snapshot, err error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else if err = tx.Commit(); err != nil {
			snapshot = nil
		}
	}()

	players, err := listPlayers(ctx, tx)
	if err != nil {
		return nil, err
	}
	matches, err := listMatches(ctx, tx)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{Players: players, Matches: matches}, nil
}
