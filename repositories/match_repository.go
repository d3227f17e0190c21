package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jelyman2/tournament/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchPlayerInvalid = errors.New("match references a player that does not exist")
	ErrMatchPairConflict  = errors.New("match between this pair is already recorded")
)

// MatchRepository persists the matches table:
// matches(id serial PK, player_1 FK, player_2 FK NULL, result, round, played_at).
// player_2 is NULL for a bye. The unordered pair carries a unique index
// so the no-rematch invariant also holds at the persistence boundary.
type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, round *int) ([]*models.Match, error)
	Latest(ctx context.Context) (*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (player_1, player_2, result, round, played_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		match.Player1ID,
		match.Player2ID,
		match.Result,
		match.Round,
		match.PlayedAt,
	).Scan(&match.ID)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, player_1, player_2, result, round, played_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.scanMatch(r.db.QueryRowContext(ctx, query, id), match)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, round *int) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, player_1, player_2, result, round, played_at
		FROM matches`)

	args := make([]interface{}, 0, 1)
	if round != nil {
		queryBuilder.WriteString(" WHERE round = $")
		queryBuilder.WriteString(strconv.Itoa(len(args) + 1))
		args = append(args, *round)
	}
	queryBuilder.WriteString(" ORDER BY round ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := r.scanMatch(rows, &match); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, &match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) Latest(ctx context.Context) (*models.Match, error) {
	query := `
		SELECT id, player_1, player_2, result, round, played_at
		FROM matches
		ORDER BY id DESC
		LIMIT 1`

	match := &models.Match{}
	err := r.scanMatch(r.db.QueryRowContext(ctx, query), match)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan latest match: %w", err)
	}
	return match, nil
}

func (r *postgresMatchRepository) scanMatch(scanner interface{ Scan(...interface{}) error }, match *models.Match) error {
	return scanner.Scan(
		&match.ID,
		&match.Player1ID,
		&match.Player2ID,
		&match.Result,
		&match.Round,
		&match.PlayedAt,
	)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		// "23503": foreign_key_violation, "23505": unique_violation
		switch pqErr.Constraint {
		case "matches_player_1_fkey", "matches_player_2_fkey":
			return ErrMatchPlayerInvalid
		case "matches_pair_key":
			return ErrMatchPairConflict
		}
	}
	return err
}
