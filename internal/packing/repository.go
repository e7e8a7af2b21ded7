package packing

import "context"

// Repository defines the interface for saved packing list persistence.
// There is at most one checklist per trip.
type Repository interface {
	// GetByTrip retrieves the checklist of a user's trip.
	// Returns ErrChecklistNotFound if there is none or it belongs to another user.
	GetByTrip(ctx context.Context, userID, tripID string) (*Checklist, error)

	// Create stores a new checklist. Returns ErrChecklistExists if the trip
	// already has one.
	Create(ctx context.Context, c *Checklist) error

	// Update replaces the items and notes of an existing checklist if its
	// stored version still equals c.Version, then increments c.Version.
	// Returns ErrChecklistConflict when the stored version has moved on.
	Update(ctx context.Context, c *Checklist) error

	// DeleteByTrip removes the checklist of a trip, if any.
	DeleteByTrip(ctx context.Context, userID, tripID string) error
}
