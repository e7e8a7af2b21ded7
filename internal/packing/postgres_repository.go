package packing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// PostgresRepository is a PostgreSQL implementation of Repository.
// Items are stored as a JSONB document keyed by category.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL checklist repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByTrip retrieves the checklist of a user's trip.
func (r *PostgresRepository) GetByTrip(ctx context.Context, userID, tripID string) (*Checklist, error) {
	query := `
		SELECT id, trip_id, user_id, items, notes, created_at, updated_at, version
		FROM packing_lists
		WHERE trip_id = $1 AND user_id = $2
	`

	var (
		c     Checklist
		items []byte
	)
	err := r.pool.QueryRow(ctx, query, tripID, userID).Scan(
		&c.ID,
		&c.TripID,
		&c.UserID,
		&items,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChecklistNotFound
		}
		return nil, err
	}

	c.Items = NewList()
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	return &c, nil
}

// Create stores a new checklist.
func (r *PostgresRepository) Create(ctx context.Context, c *Checklist) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		INSERT INTO packing_lists (id, trip_id, user_id, items, notes, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.pool.Exec(ctx, query,
		c.ID,
		c.TripID,
		c.UserID,
		items,
		c.Notes,
		c.CreatedAt,
		c.UpdatedAt,
		c.Version,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrChecklistExists
		}
		return err
	}

	return nil
}

// Update replaces the items and notes of an existing checklist when its
// version still matches.
func (r *PostgresRepository) Update(ctx context.Context, c *Checklist) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		UPDATE packing_lists SET
			items = $2,
			notes = $3,
			updated_at = $4,
			version = version + 1
		WHERE id = $1 AND version = $5
	`

	result, err := r.pool.Exec(ctx, query, c.ID, items, c.Notes, c.UpdatedAt, c.Version)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		var exists bool
		err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM packing_lists WHERE id = $1)`, c.ID).Scan(&exists)
		switch {
		case err != nil:
			return err
		case exists:
			return ErrChecklistConflict
		default:
			return ErrChecklistNotFound
		}
	}

	c.Version++
	return nil
}

// DeleteByTrip removes the checklist of a trip.
func (r *PostgresRepository) DeleteByTrip(ctx context.Context, userID, tripID string) error {
	query := `DELETE FROM packing_lists WHERE trip_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, tripID, userID)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
