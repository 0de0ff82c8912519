package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/lib/pq"
)

var (
	ErrMatchPlayerInvalid = errors.New("match references an unknown player")
	ErrMatchSelfPlay      = errors.New("match winner and loser must differ")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	List(ctx context.Context) ([]models.Match, error)
	DeleteAll(ctx context.Context) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (winner_id, loser_id, bye)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	var loserID sql.NullInt64
	if !match.Bye {
		loserID = sql.NullInt64{Int64: int64(match.LoserID), Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query, match.WinnerID, loserID, match.Bye).Scan(&match.ID, &match.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			return ErrMatchPlayerInvalid
		case "23514": // check_violation
			if pqErr.Constraint == "matches_distinct_players" {
				return ErrMatchSelfPlay
			}
		}
	}
	return fmt.Errorf("failed to insert match: %w", err)
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	return listMatches(ctx, r.db)
}

func listMatches(ctx context.Context, exec SQLExecutor) ([]models.Match, error) {
	rows, err := exec.QueryContext(ctx, `SELECT id, winner_id, loser_id, bye, created_at FROM matches ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, errScan := scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}

func scanMatch(row rowScanner) (models.Match, error) {
	var (
		m       models.Match
		loserID sql.NullInt64
	)
	if err := row.Scan(&m.ID, &m.WinnerID, &loserID, &m.Bye, &m.CreatedAt); err != nil {
		return models.Match{}, fmt.Errorf("failed to scan match: %w", err)
	}
	if loserID.Valid {
		m.LoserID = int(loserID.Int64)
	}
	return m, nil
}

func (r *postgresMatchRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}
