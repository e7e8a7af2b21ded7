package trip

import (
	"context"
	"time"
)

// ListOptions contains options for listing trips.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListResult contains the results of listing trips.
type ListResult struct {
	Items      []*Trip
	NextCursor string
}

// Repository defines the interface for trip persistence.
type Repository interface {
	// GetByUserAndID retrieves a trip owned by the user.
	// Returns ErrTripNotFound if the trip doesn't exist or belongs to someone else.
	GetByUserAndID(ctx context.Context, userID, tripID string) (*Trip, error)

	// List retrieves a user's trips, newest first.
	List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error)

	// ListStartingBetween retrieves trips of all users with a start date in [from, to).
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*Trip, error)

	// Create stores a new trip.
	Create(ctx context.Context, trip *Trip) error

	// Update replaces an existing trip.
	Update(ctx context.Context, trip *Trip) error

	// Delete deletes a trip by ID.
	Delete(ctx context.Context, id string) error
}
