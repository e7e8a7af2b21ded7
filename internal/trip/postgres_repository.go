package trip

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL trip repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const tripColumns = `
	id, user_id, destination, country,
	start_date, end_date, duration,
	trip_purposes, other_purpose,
	accommodations, custom_accommodation,
	luggage_type, itinerary, gender,
	created_at, updated_at
`

// GetByUserAndID retrieves a trip owned by the user.
func (r *PostgresRepository) GetByUserAndID(ctx context.Context, userID, tripID string) (*Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND user_id = $2`

	t, err := scanTrip(r.pool.QueryRow(ctx, query, tripID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	return t, nil
}

// List retrieves a user's trips, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra to determine if there are more results
	fetchLimit := limit + 1

	query := `SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	trips, err := r.queryTrips(ctx, query, userID, fetchLimit)
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		Items: trips,
	}

	if len(trips) > limit {
		result.Items = trips[:limit]
		result.NextCursor = trips[limit-1].ID
	}

	return result, nil
}

// ListStartingBetween retrieves trips starting in [from, to).
func (r *PostgresRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*Trip, error) {
	query := `SELECT ` + tripColumns + `
		FROM trips
		WHERE start_date >= $1 AND start_date < $2
		ORDER BY start_date ASC
	`

	return r.queryTrips(ctx, query, from, to)
}

func (r *PostgresRepository) queryTrips(ctx context.Context, query string, args ...interface{}) ([]*Trip, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}

// Create stores a new trip.
func (r *PostgresRepository) Create(ctx context.Context, t *Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.UserID,
		t.Destination,
		t.Country,
		t.StartDate,
		t.EndDate,
		t.DurationDays,
		purposeStrings(t.Purposes),
		t.OtherPurpose,
		accommodationStrings(t.Accommodations),
		t.CustomAccommodation,
		t.LuggageType,
		t.Itinerary,
		string(t.Gender),
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

// Update replaces an existing trip.
func (r *PostgresRepository) Update(ctx context.Context, t *Trip) error {
	query := `
		UPDATE trips SET
			destination = $2,
			country = $3,
			start_date = $4,
			end_date = $5,
			duration = $6,
			trip_purposes = $7,
			other_purpose = $8,
			accommodations = $9,
			custom_accommodation = $10,
			luggage_type = $11,
			itinerary = $12,
			gender = $13,
			updated_at = $14
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Destination,
		t.Country,
		t.StartDate,
		t.EndDate,
		t.DurationDays,
		purposeStrings(t.Purposes),
		t.OtherPurpose,
		accommodationStrings(t.Accommodations),
		t.CustomAccommodation,
		t.LuggageType,
		t.Itinerary,
		string(t.Gender),
		t.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrTripNotFound
	}

	return nil
}

// Delete deletes a trip by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM trips WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var (
		t              Trip
		purposes       []string
		accommodations []string
		gender         string
	)

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Destination,
		&t.Country,
		&t.StartDate,
		&t.EndDate,
		&t.DurationDays,
		&purposes,
		&t.OtherPurpose,
		&accommodations,
		&t.CustomAccommodation,
		&t.LuggageType,
		&t.Itinerary,
		&gender,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, p := range purposes {
		t.Purposes = append(t.Purposes, Purpose(p))
	}
	for _, a := range accommodations {
		t.Accommodations = append(t.Accommodations, Accommodation(a))
	}
	t.Gender = ParseGender(gender)

	return &t, nil
}

func purposeStrings(purposes []Purpose) []string {
	out := make([]string, len(purposes))
	for i, p := range purposes {
		out[i] = string(p)
	}
	return out
}

func accommodationStrings(accommodations []Accommodation) []string {
	out := make([]string, len(accommodations))
	for i, a := range accommodations {
		out[i] = string(a)
	}
	return out
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
